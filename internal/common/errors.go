// Package common defines shared constants and sentinel errors used across
// the repository, service and transport layers. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential errors. Both are reported as unauthorized.
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")

	// Authorization errors.
	ErrNotOwner = errors.New("not owner")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")

	// Object storage is not configured.
	ErrStorageDisabled = errors.New("object storage disabled")
)

// ValidationError lists every rule an input violated. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Message string
	Reasons []string
}

func NewValidationError(message string, reasons ...string) *ValidationError {
	return &ValidationError{Message: message, Reasons: reasons}
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
