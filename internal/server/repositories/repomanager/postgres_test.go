package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/products"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*PostgresRepositoryManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return db, nil
	}
	t.Cleanup(func() { sqlOpen = orig })

	m, err := NewPostgresRepositoryManager(context.Background(), "postgres://x")
	require.NoError(t, err)
	return m.(*PostgresRepositoryManager), mock
}

func TestNewPostgresRepositoryManager_PingError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
	defer func() { sqlOpen = orig }()

	_, err = NewPostgresRepositoryManager(context.Background(), "postgres://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresRepositoryManager_OpenError(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad driver") }
	defer func() { sqlOpen = orig }()

	_, err := NewPostgresRepositoryManager(context.Background(), "postgres://x")
	assert.ErrorContains(t, err, "bad driver")
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	m, _ := newManager(t)

	var u users.Repository = m.Users()
	var p products.Repository = m.Products()
	assert.IsType(t, &users.PostgresRepository{}, u)
	assert.IsType(t, &products.PostgresRepository{}, p)
}

func TestRunMigrations_Success(t *testing.T) {
	m, _ := newManager(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if db != m.db {
			return errors.New("unexpected db")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	assert.NoError(t, m.RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	m, _ := newManager(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	assert.EqualError(t, m.RunMigrations(context.Background()), "boom")
}

func TestClose(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectClose()

	assert.NoError(t, m.Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
