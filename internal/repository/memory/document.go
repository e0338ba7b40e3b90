package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
	"dataroom/internal/domain/repositories"
)

// DocumentStore keeps the room as serialized JSON in memory. Load
// re-decodes on every call, so callers always get an independent tree -
// the same reconstitute-on-read behavior the durable backends have.
type DocumentStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() repositories.DocumentStore {
	return &DocumentStore{}
}

// Load decodes the stored document.
func (s *DocumentStore) Load(ctx context.Context) (*dataroom.DataRoom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, fmt.Errorf("data room document: %w", domain.ErrNotFound)
	}

	var room dataroom.DataRoom
	if err := json.Unmarshal(s.data, &room); err != nil {
		return nil, fmt.Errorf("decode data room document: %w", err)
	}
	return &room, nil
}

// Save encodes and stores the whole document.
func (s *DocumentStore) Save(ctx context.Context, room *dataroom.DataRoom) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("encode data room document: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
