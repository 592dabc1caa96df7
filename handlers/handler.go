package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/logging"
	"github.com/flalji123/commodify-backend/middleware"
	"github.com/flalji123/commodify-backend/models"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeOK is the delete response shape.
func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeError maps the error taxonomy onto HTTP statuses. Ownership misses
// arrive here already conflated into ErrNotFound, so nothing below ever
// answers 403.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrUnauthenticated), errors.Is(err, apperrors.ErrUnknownPrincipal):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: Unhandled error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// pathID extracts the named integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil {
		return 0, apperrors.ErrValidation
	}
	return id, nil
}

// principal pulls the authenticated user out of the request context. The
// auth middleware guarantees it is there for every protected route.
func principal(r *http.Request) (models.User, error) {
	user, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return models.User{}, apperrors.ErrUnauthenticated
	}
	return user, nil
}
