package dataroom

import (
	"encoding/json"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func sampleRoom() *DataRoom {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 3, 2, 12, 30, 0, 0, time.UTC)

	root := &Folder{
		Entity: Entity{ID: "root-1", Name: "Root", CreatedAt: created, UpdatedAt: updated},
		Type:   ItemTypeFolder,
	}
	legal := &Folder{
		Entity: Entity{ID: "folder-1", Name: "Legal", CreatedAt: created, UpdatedAt: updated, ParentID: strPtr("root-1")},
		Type:   ItemTypeFolder,
	}
	report := &File{
		Entity:     Entity{ID: "file-1", Name: "report.pdf", CreatedAt: created, UpdatedAt: updated, ParentID: strPtr("folder-1")},
		Type:       ItemTypeFile,
		FileType:   "pdf",
		Size:       2048,
		ContentRef: "blob-1",
	}
	legal.Children = ChildList{report}
	root.Children = ChildList{legal}

	return &DataRoom{
		ID:         "room-1",
		CreatedAt:  created,
		UpdatedAt:  updated,
		RootFolder: root,
		TotalFiles: 1,
		TotalSize:  2048,
	}
}

func TestDataRoom_JSONRoundTrip(t *testing.T) {
	original := sampleRoom()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded DataRoom
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.ID != original.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, original.ID)
	}
	if !decoded.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", decoded.CreatedAt, original.CreatedAt)
	}
	if decoded.TotalFiles != 1 || decoded.TotalSize != 2048 {
		t.Errorf("aggregates = (%d, %d), want (1, 2048)", decoded.TotalFiles, decoded.TotalSize)
	}

	if len(decoded.RootFolder.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(decoded.RootFolder.Children))
	}
	legal, ok := decoded.RootFolder.Children[0].(*Folder)
	if !ok {
		t.Fatalf("root child decoded as %T, want *Folder", decoded.RootFolder.Children[0])
	}
	if legal.Name != "Legal" {
		t.Errorf("folder name = %q, want %q", legal.Name, "Legal")
	}
	if legal.ParentID == nil || *legal.ParentID != "root-1" {
		t.Errorf("folder parentId = %v, want root-1", legal.ParentID)
	}
	if !legal.UpdatedAt.Equal(original.UpdatedAt) {
		t.Errorf("folder UpdatedAt = %v, want %v (dates must rehydrate, not stay strings)", legal.UpdatedAt, original.UpdatedAt)
	}

	if len(legal.Children) != 1 {
		t.Fatalf("folder children = %d, want 1", len(legal.Children))
	}
	report, ok := legal.Children[0].(*File)
	if !ok {
		t.Fatalf("folder child decoded as %T, want *File", legal.Children[0])
	}
	if report.FileType != "pdf" || report.Size != 2048 || report.ContentRef != "blob-1" {
		t.Errorf("file = %+v, want pdf/2048/blob-1", report)
	}
}

func TestChildList_PreservesInsertionOrder(t *testing.T) {
	now := time.Now().UTC()
	folder := &Folder{
		Entity: Entity{ID: "f", Name: "f", CreatedAt: now, UpdatedAt: now},
		Type:   ItemTypeFolder,
		Children: ChildList{
			&File{Entity: Entity{ID: "b", Name: "b.txt"}, Type: ItemTypeFile, FileType: "txt", Size: 1},
			&Folder{Entity: Entity{ID: "a", Name: "a"}, Type: ItemTypeFolder},
			&File{Entity: Entity{ID: "c", Name: "c.txt"}, Type: ItemTypeFile, FileType: "txt", Size: 1},
		},
	}

	data, err := json.Marshal(folder)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Folder
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"b", "a", "c"}
	if len(decoded.Children) != len(want) {
		t.Fatalf("children = %d, want %d", len(decoded.Children), len(want))
	}
	for i, id := range want {
		if decoded.Children[i].ItemID() != id {
			t.Errorf("child %d = %q, want %q", i, decoded.Children[i].ItemID(), id)
		}
	}
}

func TestChildList_UnknownTypeRejected(t *testing.T) {
	raw := `{"id":"f","name":"f","type":"folder","children":[{"id":"x","name":"x","type":"symlink"}]}`

	var decoded Folder
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		t.Fatal("expected error for unknown child type, got nil")
	}
}
