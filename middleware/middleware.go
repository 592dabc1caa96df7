package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/flalji123/commodify-backend/logging"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/services"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticate resolves the bearer token into a principal and stashes it
// in the request context. Handlers behind it can assume a valid user.
func Authenticate(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			principal, err := auth.ResolvePrincipal(r.Context(), tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: AUTH_INVALID_TOKEN, Description: Invalid token for request to %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the user placed there by Authenticate.
func PrincipalFromContext(ctx context.Context) (models.User, bool) {
	principal, ok := ctx.Value(principalKey).(models.User)
	return principal, ok
}
