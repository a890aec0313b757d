package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/docstore"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/products"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/users"
)

// MongoRepositoryManager vends MongoDB-backed repositories.
type MongoRepositoryManager struct {
	store *docstore.Store
}

func NewMongoRepositoryManager(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
	store, err := docstore.Connect(ctx, dsn, dbName)
	if err != nil {
		return nil, err
	}
	return &MongoRepositoryManager{store: store}, nil
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.store.Users()
}

func (m *MongoRepositoryManager) Products() products.Repository {
	return m.store.Products()
}

// RunMigrations has no schema to apply; it creates the indexes.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.store.EnsureIndexes(ctx)
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.store.Close(ctx)
}
