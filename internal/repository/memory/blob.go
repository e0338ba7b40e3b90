package memory

import (
	"context"
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"dataroom/internal/domain"
	"dataroom/internal/domain/repositories"
)

// BlobStore keeps payloads in a concurrent map keyed by content id.
type BlobStore struct {
	blobs *xsync.Map[string, []byte]
}

// NewBlobStore creates an empty in-memory blob store.
func NewBlobStore() repositories.BlobStore {
	return &BlobStore{
		blobs: xsync.NewMap[string, []byte](),
	}
}

// Store writes a payload under the given content id.
func (s *BlobStore) Store(ctx context.Context, id string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs.Store(id, buf)
	return nil
}

// Get retrieves a copy of the payload.
func (s *BlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	data, ok := s.blobs.Load(id)
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", id, domain.ErrNotFound)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Delete releases a payload. Unknown ids are not an error.
func (s *BlobStore) Delete(ctx context.Context, id string) error {
	s.blobs.Delete(id)
	return nil
}

// Clear releases every payload.
func (s *BlobStore) Clear(ctx context.Context) error {
	s.blobs.Clear()
	return nil
}
