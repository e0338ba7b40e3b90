package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dataroom/internal/domain"
	"dataroom/internal/domain/repositories"
)

// PostgresBlobStore implements the BlobStore interface
type PostgresBlobStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBlobStore creates a blob store backed by the bytea table.
func NewBlobStore(config *RepositoryConfig) repositories.BlobStore {
	return &PostgresBlobStore{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Store writes a payload under the given content id.
func (s *PostgresBlobStore) Store(ctx context.Context, id string, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, data)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`, s.tables.Blobs)

	if _, err := s.pool.Exec(ctx, query, id, data); err != nil {
		return fmt.Errorf("store blob %s: %w", id, err)
	}
	return nil
}

// Get retrieves a payload.
func (s *PostgresBlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	query := fmt.Sprintf(`
		SELECT data
		FROM %s
		WHERE id = $1
	`, s.tables.Blobs)

	var data []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&data)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("blob %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get blob %s: %w", id, err)
	}
	return data, nil
}

// Delete releases a payload. Unknown ids are not an error.
func (s *PostgresBlobStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, s.tables.Blobs)

	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete blob %s: %w", id, err)
	}
	return nil
}

// Clear releases every payload.
func (s *PostgresBlobStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.tables.Blobs)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("clear blobs: %w", err)
	}
	return nil
}
