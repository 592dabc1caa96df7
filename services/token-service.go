package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flalji123/commodify-backend/apperrors"
)

// TokenService issues and verifies the bearer tokens. The subject claim
// carries the user id; tokens are good for seven days.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		Secret: []byte(secret),
		TTL:    7 * 24 * time.Hour,
		Now:    time.Now,
	}
}

func (s *TokenService) Issue(userID int64) (string, error) {
	now := s.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Verify returns the embedded user id, or ErrUnauthenticated for anything
// malformed, forged, or expired.
func (s *TokenService) Verify(tokenStr string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return s.Now() }))
	if err != nil || !token.Valid {
		return 0, apperrors.ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrUnauthenticated
	}
	return userID, nil
}
