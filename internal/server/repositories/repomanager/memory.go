package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/products"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost
// on restart; it is meant for local runs and demos.
type MemoryRepositoryManager struct {
	users    *memstore.Users
	products *memstore.Products
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	u := memstore.NewUsers()
	return &MemoryRepositoryManager{users: u, products: memstore.NewProducts(u)}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Products() products.Repository {
	return m.products
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close(context.Context) error { return nil }
