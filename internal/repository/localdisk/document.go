// Package localdisk persists the data room under a local directory: the
// metadata document as one JSON file, blobs as individual files keyed by
// content id. This is the browser-local-storage analog for a single-user
// deployment.
package localdisk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
	"dataroom/internal/domain/repositories"
)

const documentFile = "dataroom.json"

// DocumentStore stores the serialized document as a single JSON file.
type DocumentStore struct {
	path string
	mu   sync.Mutex
}

// NewDocumentStore creates the data directory if needed.
func NewDocumentStore(dir string) (repositories.DocumentStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &DocumentStore{path: filepath.Join(dir, documentFile)}, nil
}

// Load reads and decodes the document file.
func (s *DocumentStore) Load(ctx context.Context) (*dataroom.DataRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("data room document: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read data room document: %w", err)
	}

	var room dataroom.DataRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("decode data room document: %w", err)
	}
	return &room, nil
}

// Save writes the whole document atomically (temp file + rename), so a
// crash mid-write never leaves a truncated document behind.
func (s *DocumentStore) Save(ctx context.Context, room *dataroom.DataRoom) error {
	data, err := json.MarshalIndent(room, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data room document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write data room document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data room document: %w", err)
	}
	return nil
}
