package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/flalji123/commodify-backend/apperrors"
	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

type AuthService struct {
	Store  repositories.Store
	Tokens *TokenService
}

func NewAuthService(store repositories.Store, tokens *TokenService) *AuthService {
	return &AuthService{Store: store, Tokens: tokens}
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") || strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}
	return nil
}

// Register creates the user and returns a fresh token. Emails are unique
// and compared exactly as stored.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	if _, err := s.Store.GetUserByEmail(ctx, email); err == nil {
		return "", fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}

	user, err := s.Store.CreateUser(ctx, models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return "", err
	}
	return s.Tokens.Issue(user.ID)
}

// Login never says whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthenticated
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrUnauthenticated
	}
	return s.Tokens.Issue(user.ID)
}

// ResolvePrincipal turns a bearer token into exactly one user.
// ErrUnauthenticated covers every token problem; ErrUnknownPrincipal means
// the token was fine but its subject no longer exists.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (models.User, error) {
	userID, err := s.Tokens.Verify(token)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.Store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.User{}, apperrors.ErrUnknownPrincipal
		}
		return models.User{}, err
	}
	return user, nil
}
