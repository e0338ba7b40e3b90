package repositories

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// DocumentStore persists the data room as one whole serialized document.
// There is no partial update: callers load the full document, mutate it in
// memory, and save it back.
type DocumentStore interface {
	// Load retrieves and decodes the persisted document.
	// Returns domain.ErrNotFound if no document has ever been saved.
	Load(ctx context.Context) (*dataroom.DataRoom, error)

	// Save encodes and writes the whole document, replacing any previous one.
	Save(ctx context.Context, room *dataroom.DataRoom) error
}

// BlobStore is a key-value byte store for file payloads, independent of the
// metadata tree. Keys are generated content ids.
type BlobStore interface {
	// Store writes a payload under the given content id.
	Store(ctx context.Context, id string, data []byte) error

	// Get retrieves a payload. Returns domain.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) ([]byte, error)

	// Delete releases a payload. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Clear releases every payload.
	Clear(ctx context.Context) error
}
