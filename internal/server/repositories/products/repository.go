// Package products declares the product store contract and its PostgreSQL
// implementation.
package products

import (
	"context"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
)

// Repository persists products. Read methods resolve Product.Seller.
// Every write touches a single record; nothing here is transactional.
type Repository interface {
	// List returns all products, newest first.
	List(ctx context.Context) ([]*models.Product, error)

	// Get returns common.ErrorNotFound when the id does not resolve.
	Get(ctx context.Context, id string) (*models.Product, error)

	// Create stores a product whose ID and CreatedAt are already assigned.
	Create(ctx context.Context, product *models.Product) error

	// UpdateStatus overwrites the status unconditionally (last write wins).
	// It returns common.ErrorNotFound when the product is gone.
	UpdateStatus(ctx context.Context, id string, status models.ProductStatus) error

	// Delete removes the product permanently. It returns
	// common.ErrorNotFound when there was nothing to delete.
	Delete(ctx context.Context, id string) error
}
