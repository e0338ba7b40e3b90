package localdisk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dataroom/internal/domain"
	"dataroom/internal/domain/repositories"
)

// BlobStore stores each payload as a file named by its content id.
type BlobStore struct {
	dir string
}

// NewBlobStore creates the blob directory if needed.
func NewBlobStore(dir string) (repositories.BlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &BlobStore{dir: dir}, nil
}

// Store writes a payload under the given content id.
func (s *BlobStore) Store(ctx context.Context, id string, data []byte) error {
	path, err := s.blobPath(id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write blob %s: %w", id, err)
	}
	return nil
}

// Get retrieves a payload.
func (s *BlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	path, err := s.blobPath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read blob %s: %w", id, err)
	}
	return data, nil
}

// Delete releases a payload. Unknown ids are not an error.
func (s *BlobStore) Delete(ctx context.Context, id string) error {
	path, err := s.blobPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete blob %s: %w", id, err)
	}
	return nil
}

// Clear releases every payload.
func (s *BlobStore) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list blobs: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("delete blob %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// blobPath guards against ids escaping the blob directory. Content ids are
// generated uuids, so anything with a separator is rejected outright.
func (s *BlobStore) blobPath(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || id != filepath.Base(id) {
		return "", fmt.Errorf("invalid blob id %q", id)
	}
	return filepath.Join(s.dir, id), nil
}
