package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
)

func TestDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("load before save: error = %v, want ErrNotFound", err)
	}

	now := time.Now().UTC()
	room := &dataroom.DataRoom{
		ID:        "room-1",
		CreatedAt: now,
		UpdatedAt: now,
		RootFolder: &dataroom.Folder{
			Entity:   dataroom.Entity{ID: "root-1", Name: "Root", CreatedAt: now, UpdatedAt: now},
			Type:     dataroom.ItemTypeFolder,
			Children: dataroom.ChildList{},
		},
	}
	if err := store.Save(ctx, room); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != "room-1" || loaded.RootFolder.ID != "root-1" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestDocumentStore_LoadReturnsIndependentCopies(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	room := &dataroom.DataRoom{
		ID: "room-1",
		RootFolder: &dataroom.Folder{
			Entity:   dataroom.Entity{ID: "root-1", Name: "Root"},
			Type:     dataroom.ItemTypeFolder,
			Children: dataroom.ChildList{},
		},
	}
	if err := store.Save(ctx, room); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first.RootFolder.Name = "Mutated"

	second, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if second.RootFolder.Name != "Root" {
		t.Error("mutation of a loaded copy leaked into the store")
	}
}

func TestBlobStore(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()
	payload := []byte("payload")

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

	// Returned slice is a copy.
	got[0] = 'X'
	again, err := store.Get(ctx, "blob-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(again, payload) {
		t.Error("mutation of a returned payload leaked into the store")
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get missing: error = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx, "blob-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "blob-1"); err != nil {
		t.Errorf("delete of unknown id: %v, want nil", err)
	}
	if _, err := store.Get(ctx, "blob-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get after delete: error = %v, want ErrNotFound", err)
	}
}
