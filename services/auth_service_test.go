package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flalji123/commodify-backend/apperrors"
)

func TestRegisterAndResolvePrincipal(t *testing.T) {
	t.Parallel()

	e := newEnv()
	token, err := e.auth.Register(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, err := e.auth.ResolvePrincipal(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolvePrincipal returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected alice@example.com, got %s", user.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	e := newEnv()
	if _, err := e.auth.Register(context.Background(), "bob@example.com", "password123"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := e.auth.Register(context.Background(), "bob@example.com", "different456")
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	t.Parallel()

	e := newEnv()
	if _, err := e.auth.Register(context.Background(), "no-at-sign", "password123"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad email, got %v", err)
	}
	if _, err := e.auth.Register(context.Background(), "ok@example.com", "short"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	e := newEnv()
	mustRegister(t, e, "carol@example.com")

	_, err := e.auth.Login(context.Background(), "carol@example.com", "wrongpassword")
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	e := newEnv()
	_, err := e.auth.Login(context.Background(), "ghost@example.com", "password123")
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolvePrincipalUnknownSubject(t *testing.T) {
	t.Parallel()

	e := newEnv()
	// A valid token whose subject was never registered.
	token, err := e.tokens.Issue(9999)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = e.auth.ResolvePrincipal(context.Background(), token)
	if !errors.Is(err, apperrors.ErrUnknownPrincipal) {
		t.Fatalf("expected ErrUnknownPrincipal, got %v", err)
	}
}
