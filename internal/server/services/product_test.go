package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/logging"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sellerID   models.UserID = "0b6c0f3e-9f61-4d8e-9a35-2f2b8f5f7c11"
	strangerID models.UserID = "7d2e9a41-3c5b-4f60-8a1e-5b9c0d2f4e63"
)

var errBoom = errors.New("boom")

var (
	seller   = models.Identity{UserID: sellerID}
	stranger = models.Identity{UserID: strangerID}
)

func newProductService(t *testing.T) (*ProductService, *memstore.Products) {
	t.Helper()
	u := memstore.NewUsers()
	u.Put(&models.User{ID: sellerID, Name: "Ann", Email: "ann@example.com", PasswordHash: "x"})
	repo := memstore.NewProducts(u)
	s := NewProductService(repo, logging.Nop{})
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s, repo
}

func validInput() CreateProductInput {
	return CreateProductInput{Name: "Lamp", Description: "Desk lamp", Price: "9.99", Image: "https://img/x.png"}
}

func TestProductService_CreateThenGet(t *testing.T) {
	s, _ := newProductService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, seller, validInput())
	require.NoError(t, err)
	assert.Equal(t, models.ProductAvailable, created.Status)
	assert.Equal(t, sellerID, created.SellerID)
	assert.Equal(t, 9.99, created.Price)
	require.NotNil(t, created.Seller)
	assert.Equal(t, "Ann", created.Seller.Name)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProductService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateProductInput)
		message string
		reasons int
	}{
		{"missing name", func(in *CreateProductInput) { in.Name = "" }, msgMissingProductFields, 1},
		{"blank description", func(in *CreateProductInput) { in.Description = "   " }, msgMissingProductFields, 1},
		{"everything missing", func(in *CreateProductInput) { *in = CreateProductInput{} }, msgMissingProductFields, 4},
		{"zero price", func(in *CreateProductInput) { in.Price = "0" }, msgInvalidPrice, 1},
		{"negative price", func(in *CreateProductInput) { in.Price = "-5" }, msgInvalidPrice, 1},
		{"not a number", func(in *CreateProductInput) { in.Price = "cheap" }, msgInvalidPrice, 1},
		{"NaN", func(in *CreateProductInput) { in.Price = "NaN" }, msgInvalidPrice, 1},
		{"infinity", func(in *CreateProductInput) { in.Price = "+Inf" }, msgInvalidPrice, 1},
		{"hex float", func(in *CreateProductInput) { in.Price = "0x1p3" }, msgInvalidPrice, 1},
		{"underscores", func(in *CreateProductInput) { in.Price = "1_000" }, msgInvalidPrice, 1},
		{"spelled infinity", func(in *CreateProductInput) { in.Price = "infinity" }, msgInvalidPrice, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newProductService(t)
			in := validInput()
			tt.mutate(&in)

			_, err := s.Create(context.Background(), seller, in)
			require.ErrorIs(t, err, common.ErrInvalidInput)

			var verr *common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
			assert.Len(t, verr.Reasons, tt.reasons)
			assert.Zero(t, repo.Writes(), "nothing may be persisted")
		})
	}
}

func TestProductService_Create_TrimsAndAcceptsPaddedPrice(t *testing.T) {
	s, _ := newProductService(t)
	in := CreateProductInput{Name: " Lamp ", Description: "d", Price: " 12 ", Image: "i"}

	p, err := s.Create(context.Background(), seller, in)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)
	assert.Equal(t, 12.0, p.Price)
}

func TestProductService_Create_DecimalPrices(t *testing.T) {
	for in, want := range map[string]float64{
		"9.99":  9.99,
		"10":    10,
		"10.":   10,
		".5":    0.5,
		"+3":    3,
		"1.5e2": 150,
	} {
		s, _ := newProductService(t)
		input := validInput()
		input.Price = in

		p, err := s.Create(context.Background(), seller, input)
		require.NoError(t, err, in)
		assert.Equal(t, want, p.Price, in)
	}
}

func TestProductService_Create_StoreError(t *testing.T) {
	s, repo := newProductService(t)
	repo.Err = errBoom

	_, err := s.Create(context.Background(), seller, validInput())
	assert.ErrorIs(t, err, errBoom)
}

func TestProductService_Get_NotFound(t *testing.T) {
	s, _ := newProductService(t)

	for _, id := range []string{"not-a-uuid", "", "5a0c7c1e-2f55-4c0e-9d44-6f1b8d2e7a31"} {
		_, err := s.Get(context.Background(), id)
		assert.ErrorIs(t, err, common.ErrorNotFound, id)
	}
}

func TestProductService_List_NewestFirst(t *testing.T) {
	s, _ := newProductService(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		p, err := s.Create(ctx, seller, validInput())
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestProductService_MarkSold(t *testing.T) {
	s, repo := newProductService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, seller, validInput())
	require.NoError(t, err)

	writes := repo.Writes()
	_, err = s.MarkSold(ctx, stranger, p.ID)
	require.ErrorIs(t, err, common.ErrNotOwner)
	assert.Equal(t, writes, repo.Writes())

	sold, err := s.MarkSold(ctx, seller, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductSold, sold.Status)

	// sold again is still fine
	_, err = s.MarkSold(ctx, seller, p.ID)
	require.NoError(t, err)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductSold, got.Status)
}

func TestProductService_MarkSold_ConcurrentOwnerCalls(t *testing.T) {
	s, _ := newProductService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, seller, validInput())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.MarkSold(ctx, seller, p.ID)
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductSold, got.Status)
}

func TestProductService_NotFoundBeforeOwnership(t *testing.T) {
	s, _ := newProductService(t)
	missing := "5a0c7c1e-2f55-4c0e-9d44-6f1b8d2e7a31"

	_, err := s.MarkSold(context.Background(), stranger, missing)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = s.Delete(context.Background(), stranger, missing)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProductService_Delete(t *testing.T) {
	s, repo := newProductService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, seller, validInput())
	require.NoError(t, err)

	writes := repo.Writes()
	require.ErrorIs(t, s.Delete(ctx, stranger, p.ID), common.ErrNotOwner)
	assert.Equal(t, writes, repo.Writes())

	require.NoError(t, s.Delete(ctx, seller, p.ID))
	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProductService_Delete_StoreError(t *testing.T) {
	s, repo := newProductService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, seller, validInput())
	require.NoError(t, err)

	// fail only the write
	s.repo = &failingWrites{Products: repo}
	err = s.Delete(ctx, seller, p.ID)
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

type failingWrites struct{ *memstore.Products }

func (f *failingWrites) Delete(context.Context, string) error { return errBoom }
func (f *failingWrites) UpdateStatus(context.Context, string, models.ProductStatus) error {
	return errBoom
}
