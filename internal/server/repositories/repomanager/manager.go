// Package repomanager selects the store backend for a DSN and vends the
// repositories bound to it.
package repomanager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/products"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/users"
)

// ErrUnsupportedDSN is returned by Open for a DSN whose scheme has no backend.
var ErrUnsupportedDSN = errors.New("unsupported database dsn")

type RepositoryManager interface {
	// RunMigrations brings the schema (or indexes) up to date.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Products() products.Repository
	Close(ctx context.Context) error
}

// seams for tests
var (
	openPostgres = NewPostgresRepositoryManager
	openMongo    = NewMongoRepositoryManager
)

// Open connects to the backend named by the DSN scheme: postgres:// and
// postgresql:// (or a key=value libpq string) go to PostgreSQL, mongodb://
// and mongodb+srv:// go to MongoDB, memory:// keeps data in process.
func Open(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
	switch {
	case strings.HasPrefix(dsn, "memory://"):
		return NewMemoryRepositoryManager(), nil
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return openMongo(ctx, dsn, dbName)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"),
		!strings.Contains(dsn, "://") && strings.Contains(dsn, "="):
		return openPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, scheme(dsn))
	}
}

// scheme keeps credentials out of error messages.
func scheme(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i]
	}
	return ""
}
