// Package postgres persists the data room in PostgreSQL: the whole
// serialized document in a single JSONB row, blobs in a bytea table. It
// satisfies the same store interfaces as the localdisk backend, so the
// tree service never knows which one it is talking to.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for the store implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Documents string
	Blobs     string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Documents: fmt.Sprintf("%sdataroom_documents", prefix),
		Blobs:     fmt.Sprintf("%sdataroom_blobs", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool and verifies the
// connection. Pool sizing is conservative: the service is single-user and
// every operation is one short read or write.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the document and blob tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				room_key   TEXT PRIMARY KEY,
				doc        JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Documents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				data       BYTEA NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Blobs),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
