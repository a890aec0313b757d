package auth

import (
	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
)

// InvalidTokenError reports why a presented token was rejected. Its message
// is the underlying verification message; it matches
// common.ErrInvalidCredential and the cause with errors.Is.
type InvalidTokenError struct {
	Cause error
}

func (e *InvalidTokenError) Error() string {
	return e.Cause.Error()
}

func (e *InvalidTokenError) Unwrap() []error {
	return []error{common.ErrInvalidCredential, e.Cause}
}

// Verifier turns a raw header value into a caller Identity. The secret is
// fixed at construction.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Verifier{secret: s}
}

// Verify fails closed: an empty token is common.ErrMissingCredential and any
// other failure is an *InvalidTokenError.
func (v *Verifier) Verify(rawToken string) (models.Identity, error) {
	if rawToken == "" {
		return models.Identity{}, common.ErrMissingCredential
	}

	id, err := GetUserIDFromToken(rawToken, v.secret)
	if err != nil {
		return models.Identity{}, &InvalidTokenError{Cause: err}
	}

	return models.Identity{UserID: id}, nil
}
