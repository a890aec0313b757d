package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := NewValidationError("bad product", "price must be a positive number")

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrorNotFound))
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "bad", NewValidationError("bad").Error())
	assert.Equal(t, "bad: a; b", NewValidationError("bad", "a", "b").Error())
}

func TestValidationError_As(t *testing.T) {
	var ve *ValidationError
	err := fmt.Errorf("create: %w", NewValidationError("bad", "name is required"))

	if assert.True(t, errors.As(err, &ve)) {
		assert.Equal(t, []string{"name is required"}, ve.Reasons)
	}
}
