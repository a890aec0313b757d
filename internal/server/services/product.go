// Package services contains server-side business logic. This file implements
// ProductService, the product lifecycle: list, read, create, mark sold and
// delete. Mutations are checked against the recorded seller.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/logging"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/auth"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/products"
	"github.com/google/uuid"
)

const (
	msgMissingProductFields = "Please provide all required fields: name, description, price, image"
	msgInvalidPrice         = "Price must be a positive number"
)

// decimalNumber is plain decimal notation with an optional exponent. Hex
// floats, underscores and Inf/NaN spellings do not match.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// CreateProductInput is the unvalidated form of a new listing. Price keeps
// its textual form so both JSON numbers and numeric strings are accepted.
type CreateProductInput struct {
	Name        string
	Description string
	Price       string
	Image       string
}

type ProductService struct {
	repo products.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewProductService(repo products.Repository, log logging.Logger) *ProductService {
	return &ProductService{
		repo: repo,
		log:  log.With("module", "products"),
		now:  time.Now,
	}
}

// List returns every product, newest first.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return list, nil
}

// Get returns one product. Malformed ids are reported as not found.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	pid, err := models.ParseID(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	p, err := s.repo.Get(ctx, pid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error reading product: %w", err)
	}
	return p, nil
}

// Create validates in and stores it as an available product of the caller.
func (s *ProductService) Create(ctx context.Context, caller models.Identity, in CreateProductInput) (*models.Product, error) {
	price, err := validateProduct(in)
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Image:       strings.TrimSpace(in.Image),
		SellerID:    caller.UserID,
		Status:      models.ProductAvailable,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	s.log.Info(ctx, "product created", "id", p.ID, "seller", p.SellerID)

	stored, err := s.repo.Get(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("error reading created product: %w", err)
	}
	return stored, nil
}

// MarkSold sets the product's status to sold. Calling it again on a sold
// product succeeds.
func (s *ProductService) MarkSold(ctx context.Context, caller models.Identity, id string) (*models.Product, error) {
	p, err := s.ownedProduct(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, p.ID, models.ProductSold); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating product: %w", err)
	}
	s.log.Info(ctx, "product sold", "id", p.ID)

	p.Status = models.ProductSold
	return p, nil
}

// Delete removes the product permanently.
func (s *ProductService) Delete(ctx context.Context, caller models.Identity, id string) error {
	p, err := s.ownedProduct(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting product: %w", err)
	}
	s.log.Info(ctx, "product deleted", "id", p.ID)
	return nil
}

// ownedProduct loads the product and checks the caller is its seller. A
// missing product is reported before a foreign one.
func (s *ProductService) ownedProduct(ctx context.Context, caller models.Identity, id string) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p.SellerID, caller); err != nil {
		s.log.Warn(ctx, "mutation by non-owner rejected", "id", p.ID, "caller", caller.UserID)
		return nil, err
	}
	return p, nil
}

func validateProduct(in CreateProductInput) (float64, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"price", in.Price},
		{"image", in.Image},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name+" is required")
		}
	}
	if len(missing) > 0 {
		return 0, common.NewValidationError(msgMissingProductFields, missing...)
	}

	text := strings.TrimSpace(in.Price)
	if !decimalNumber.MatchString(text) {
		return 0, common.NewValidationError(msgInvalidPrice, "price must be a number greater than 0")
	}
	price, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, common.NewValidationError(msgInvalidPrice, "price must be a number greater than 0")
	}
	return price, nil
}
