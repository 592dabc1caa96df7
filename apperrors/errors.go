package apperrors

import "errors"

// Authentication errors
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUnknownPrincipal = errors.New("unknown principal")
)

// Resource errors. Ownership failures are reported as ErrNotFound so that
// a caller probing another user's ids cannot tell absence from denial.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("invalid request")
)
