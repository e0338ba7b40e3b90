package localdisk

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
)

func testRoom() *dataroom.DataRoom {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &dataroom.DataRoom{
		ID:        "room-1",
		CreatedAt: now,
		UpdatedAt: now,
		RootFolder: &dataroom.Folder{
			Entity:   dataroom.Entity{ID: "root-1", Name: "Root", CreatedAt: now, UpdatedAt: now},
			Type:     dataroom.ItemTypeFolder,
			Children: dataroom.ChildList{},
		},
	}
}

func TestDocumentStore_LoadBeforeSave(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("load before save: error = %v, want ErrNotFound", err)
	}
}

func TestDocumentStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDocumentStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	room := testRoom()
	if err := store.Save(ctx, room); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != room.ID {
		t.Errorf("ID = %q, want %q", loaded.ID, room.ID)
	}
	if loaded.RootFolder == nil || loaded.RootFolder.Name != "Root" {
		t.Errorf("root folder = %+v, want Root", loaded.RootFolder)
	}

	if _, err := os.Stat(filepath.Join(dir, documentFile)); err != nil {
		t.Errorf("document file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, documentFile+".tmp")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind after save")
	}
}

func TestDocumentStore_SaveOverwrites(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	first := testRoom()
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := testRoom()
	second.TotalFiles = 7
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.TotalFiles != 7 {
		t.Errorf("TotalFiles = %d, want 7 (last write wins)", loaded.TotalFiles)
	}
}

func TestBlobStore(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	payload := []byte("blob payload")

	if err := store.Store(ctx, "blob-1", payload); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := store.Get(ctx, "blob-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get missing: error = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx, "blob-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "blob-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get after delete: error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "blob-1"); err != nil {
		t.Errorf("delete of unknown id: %v, want nil", err)
	}
}

func TestBlobStore_RejectsPathEscapes(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", `a\b`, ".."} {
		if err := store.Store(ctx, id, []byte("x")); err == nil {
			t.Errorf("Store(%q) accepted, want error", id)
		}
		if _, err := store.Get(ctx, id); err == nil {
			t.Errorf("Get(%q) accepted, want error", id)
		}
	}
}

func TestBlobStore_Clear(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Store(ctx, id, []byte(id)); err != nil {
			t.Fatalf("store %s: %v", id, err)
		}
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("blob %s survived clear", id)
		}
	}
}
