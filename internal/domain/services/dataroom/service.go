package dataroom

import (
	"context"

	models "dataroom/internal/domain/models/dataroom"
)

// Service is the sole authority over the data room hierarchy. Every
// structural query and mutation passes through it; it keeps the persisted
// document and the aggregate statistics consistent after each mutation.
//
// All methods except Initialize return domain.ErrUninitialized when no
// document has been persisted yet.
type Service interface {
	// Initialize returns the existing document or creates and persists a
	// fresh room with an empty root folder. Idempotent; never destroys
	// existing data.
	Initialize(ctx context.Context) (*models.DataRoom, error)

	// GetDataRoom fetches the persisted document without creating one.
	GetDataRoom(ctx context.Context) (*models.DataRoom, error)

	// CreateFolder appends a new folder to the identified parent
	// (root when ParentID is nil).
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder resolves a folder id via depth-first search from the root.
	GetFolder(ctx context.Context, folderID string) (*models.Folder, error)

	// RenameFolder renames a folder in place (id and parent unchanged).
	RenameFolder(ctx context.Context, folderID, newName string) (*models.Folder, error)

	// DeleteFolder removes a folder and its entire subtree, releasing the
	// blob entries of all descendant files.
	DeleteFolder(ctx context.Context, folderID string) error

	// UploadFile validates the payload against the supported-type table,
	// stores it in the blob store, and appends the file's metadata record
	// to the target parent.
	UploadFile(ctx context.Context, req *UploadFileRequest) (*models.File, error)

	// GetFile resolves a file id via depth-first search from the root.
	GetFile(ctx context.Context, fileID string) (*models.File, error)

	// GetFileContent fetches a file's payload through the blob store.
	GetFileContent(ctx context.Context, fileID string) ([]byte, error)

	// RenameFile renames a file in place. The extension must not change.
	RenameFile(ctx context.Context, fileID, newName string) (*models.File, error)

	// DeleteFile removes a file and releases its blob entry.
	DeleteFile(ctx context.Context, fileID string) error

	// ListChildren lists a folder's children in insertion order.
	// A nil folderID means the root folder's children.
	ListChildren(ctx context.Context, folderID *string) ([]models.Item, error)

	// Search returns items whose name contains the query
	// (case-insensitive), in pre-order traversal encounter order.
	Search(ctx context.Context, query string) ([]models.Item, error)

	// PathToItem returns the chain of items from the root folder to the
	// identified item, both inclusive. Unresolved ids yield an empty slice.
	PathToItem(ctx context.Context, itemID string) ([]models.Item, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"` // nil for root
}

// UploadFileRequest represents a file upload request
type UploadFileRequest struct {
	Name     string  `json:"name"`
	Data     []byte  `json:"-"`
	ParentID *string `json:"parentId,omitempty"` // nil for root
}
