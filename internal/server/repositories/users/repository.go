// Package users declares the user store contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create stores a new user. A taken email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns common.ErrorNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when the id does not resolve.
	GetByID(ctx context.Context, id models.UserID) (*models.User, error)
}
