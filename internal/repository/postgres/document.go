package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
	"dataroom/internal/domain/repositories"
)

// DefaultRoomKey identifies the single data room document. The key exists
// so one database can host several rooms later without a schema change.
const DefaultRoomKey = "default"

// PostgresDocumentStore implements the DocumentStore interface
type PostgresDocumentStore struct {
	pool    *pgxpool.Pool
	tables  *TableNames
	roomKey string
}

// NewDocumentStore creates a document store for the default room key.
func NewDocumentStore(config *RepositoryConfig) repositories.DocumentStore {
	return &PostgresDocumentStore{
		pool:    config.Pool,
		tables:  config.Tables,
		roomKey: DefaultRoomKey,
	}
}

// Load reads and decodes the single document row.
func (s *PostgresDocumentStore) Load(ctx context.Context) (*dataroom.DataRoom, error) {
	query := fmt.Sprintf(`
		SELECT doc
		FROM %s
		WHERE room_key = $1
	`, s.tables.Documents)

	var data []byte
	err := s.pool.QueryRow(ctx, query, s.roomKey).Scan(&data)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("data room document: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load data room document: %w", err)
	}

	var room dataroom.DataRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("decode data room document: %w", err)
	}
	return &room, nil
}

// Save upserts the whole document in one statement.
func (s *PostgresDocumentStore) Save(ctx context.Context, room *dataroom.DataRoom) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("encode data room document: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (room_key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (room_key) DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = now()
	`, s.tables.Documents)

	if _, err := s.pool.Exec(ctx, query, s.roomKey, data); err != nil {
		return fmt.Errorf("save data room document: %w", err)
	}
	return nil
}
