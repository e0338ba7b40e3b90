package dataroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	"dataroom/internal/domain/repositories"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/filetype"
	"dataroom/internal/pathutil"
	"dataroom/internal/validation"
)

// RootFolderName is the display name of the implicit top-level folder.
const RootFolderName = "Root"

// treeService implements the Service interface. Every call independently
// loads the persisted document, mutates an in-memory copy, and saves the
// whole document back; interleaved callers are last-write-wins.
type treeService struct {
	docStore  repositories.DocumentStore
	blobStore repositories.BlobStore
	types     *filetype.Registry
	logger    *slog.Logger
}

// NewService creates the tree/metadata service.
func NewService(
	docStore repositories.DocumentStore,
	blobStore repositories.BlobStore,
	types *filetype.Registry,
	logger *slog.Logger,
) roomSvc.Service {
	return &treeService{
		docStore:  docStore,
		blobStore: blobStore,
		types:     types,
		logger:    logger,
	}
}

// Initialize loads the existing document or creates a fresh room with an
// empty root folder. Never destroys existing data.
func (s *treeService) Initialize(ctx context.Context) (*models.DataRoom, error) {
	room, err := s.docStore.Load(ctx)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load data room: %w", err)
	}

	now := time.Now()
	root := &models.Folder{
		Entity: models.Entity{
			ID:        uuid.New().String(),
			Name:      RootFolderName,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type:     models.ItemTypeFolder,
		Children: models.ChildList{},
	}
	room = &models.DataRoom{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		UpdatedAt:  now,
		RootFolder: root,
	}

	if err := s.docStore.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("persist initial data room: %w", err)
	}

	s.logger.Info("data room initialized",
		"id", room.ID,
		"root_folder_id", root.ID,
	)

	return room, nil
}

// GetDataRoom fetches the persisted document without creating one.
func (s *treeService) GetDataRoom(ctx context.Context) (*models.DataRoom, error) {
	room, err := s.docStore.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("data room: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load data room: %w", err)
	}
	return room, nil
}

// CreateFolder appends a new folder to the identified parent (root when
// ParentID is nil). Name and depth rules are enforced here, not left to
// the caller.
func (s *treeService) CreateFolder(ctx context.Context, req *roomSvc.CreateFolderRequest) (*models.Folder, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	parent, err := s.resolveParent(room, req.ParentID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := validation.FolderName(name, parent.Children, ""); err != nil {
		return nil, err
	}
	if err := validation.FolderDepth(&parent.ID, room.RootFolder); err != nil {
		return nil, &domain.ValidationError{Messages: []string{err.Error()}}
	}

	now := time.Now()
	folder := &models.Folder{
		Entity: models.Entity{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
			ParentID:  &parent.ID,
		},
		Type:     models.ItemTypeFolder,
		Children: models.ChildList{},
	}

	parent.Children = append(parent.Children, folder)
	parent.Touch(now)
	room.UpdatedAt = now

	if err := s.docStore.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("persist data room: %w", err)
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", parent.ID,
	)

	return folder, nil
}

// GetFolder resolves a folder id via depth-first search from the root.
func (s *treeService) GetFolder(ctx context.Context, folderID string) (*models.Folder, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	folder, ok := pathutil.FindByID(room.RootFolder, folderID).(*models.Folder)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "folder", ID: folderID}
	}
	return folder, nil
}

// RenameFolder renames a folder in place (id and parent unchanged).
func (s *treeService) RenameFolder(ctx context.Context, folderID, newName string) (*models.Folder, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	folder, ok := pathutil.FindByID(room.RootFolder, folderID).(*models.Folder)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "folder", ID: folderID}
	}

	parent := pathutil.ParentFolder(room.RootFolder, folder)
	var siblings []models.Item
	if parent != nil {
		siblings = parent.Children
	}

	name := strings.TrimSpace(newName)
	if err := validation.FolderName(name, siblings, folder.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	folder.Name = name
	folder.Touch(now)
	if parent != nil {
		parent.Touch(now)
	}
	room.UpdatedAt = now

	if err := s.docStore.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("persist data room: %w", err)
	}

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"name", folder.Name,
	)

	return folder, nil
}

// DeleteFolder removes a folder and its entire subtree, releasing the blob
// entries of every descendant file before the document is saved.
func (s *treeService) DeleteFolder(ctx context.Context, folderID string) error {
	room, err := s.load(ctx)
	if err != nil {
		return err
	}

	folder, ok := pathutil.FindByID(room.RootFolder, folderID).(*models.Folder)
	if !ok {
		return &domain.NotFoundError{Resource: "folder", ID: folderID}
	}
	if folder.ID == room.RootFolder.ID {
		return &domain.ValidationError{Messages: []string{"the root folder cannot be deleted"}}
	}

	parent := pathutil.ParentFolder(room.RootFolder, folder)
	if parent == nil || !removeChild(parent, folder.ID) {
		return &domain.NotFoundError{Resource: "folder", ID: folderID}
	}

	// Release descendant payloads. Failures are logged, not fatal:
	// an orphaned blob beats a dangling content reference.
	for _, ref := range collectContentRefs(folder) {
		if err := s.blobStore.Delete(ctx, ref); err != nil {
			s.logger.Warn("failed to release blob", "content_ref", ref, "error", err)
		}
	}

	now := time.Now()
	parent.Touch(now)
	room.UpdatedAt = now
	recount(room)

	if err := s.docStore.Save(ctx, room); err != nil {
		return fmt.Errorf("persist data room: %w", err)
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"parent_id", parent.ID,
	)

	return nil
}

// UploadFile validates the payload against the supported-type table, stores
// it in the blob store, and appends the file's metadata to the target
// parent. The blob is written first; a metadata failure afterwards leaves
// an orphaned blob (accepted, see the concurrency notes).
func (s *treeService) UploadFile(ctx context.Context, req *roomSvc.UploadFileRequest) (*models.File, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	parent, err := s.resolveParent(room, req.ParentID)
	if err != nil {
		return nil, err
	}

	if err := validation.FileNotEmpty(req.Data); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	ft, ok := s.types.ByExtension(name)
	if !ok {
		return nil, &domain.UnsupportedTypeError{
			Filename:  name,
			Extension: strings.ToLower(filepath.Ext(name)),
		}
	}

	size := int64(len(req.Data))
	if size > ft.MaxSize {
		return nil, &domain.TooLargeError{FileType: ft.Key, Size: size, MaxSize: ft.MaxSize}
	}

	if err := validation.FileName(name, parent.Children, "", ""); err != nil {
		return nil, err
	}

	contentID := uuid.New().String()
	if err := s.blobStore.Store(ctx, contentID, req.Data); err != nil {
		return nil, fmt.Errorf("store file content: %w", err)
	}

	now := time.Now()
	file := &models.File{
		Entity: models.Entity{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
			ParentID:  &parent.ID,
		},
		Type:       models.ItemTypeFile,
		FileType:   ft.Key,
		Size:       size,
		ContentRef: contentID,
	}

	parent.Children = append(parent.Children, file)
	parent.Touch(now)
	room.UpdatedAt = now
	recount(room)

	if err := s.docStore.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("persist data room: %w", err)
	}

	s.logger.Info("file uploaded",
		"id", file.ID,
		"name", file.Name,
		"file_type", file.FileType,
		"size", file.Size,
		"parent_id", parent.ID,
	)

	return file, nil
}

// GetFile resolves a file id via depth-first search from the root.
func (s *treeService) GetFile(ctx context.Context, fileID string) (*models.File, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	file, ok := pathutil.FindByID(room.RootFolder, fileID).(*models.File)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "file", ID: fileID}
	}
	return file, nil
}

// GetFileContent fetches a file's payload through the blob store.
func (s *treeService) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	file, err := s.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	data, err := s.blobStore.Get(ctx, file.ContentRef)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	return data, nil
}

// RenameFile renames a file in place. The extension must not change.
func (s *treeService) RenameFile(ctx context.Context, fileID, newName string) (*models.File, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	file, ok := pathutil.FindByID(room.RootFolder, fileID).(*models.File)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "file", ID: fileID}
	}

	parent := pathutil.ParentFolder(room.RootFolder, file)
	var siblings []models.Item
	if parent != nil {
		siblings = parent.Children
	}

	name := strings.TrimSpace(newName)
	if err := validation.FileName(name, siblings, file.ID, file.Name); err != nil {
		return nil, err
	}

	now := time.Now()
	file.Name = name
	file.Touch(now)
	if parent != nil {
		parent.Touch(now)
	}
	room.UpdatedAt = now

	if err := s.docStore.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("persist data room: %w", err)
	}

	s.logger.Info("file renamed",
		"id", file.ID,
		"name", file.Name,
	)

	return file, nil
}

// DeleteFile removes a file and releases its blob entry.
func (s *treeService) DeleteFile(ctx context.Context, fileID string) error {
	room, err := s.load(ctx)
	if err != nil {
		return err
	}

	file, ok := pathutil.FindByID(room.RootFolder, fileID).(*models.File)
	if !ok {
		return &domain.NotFoundError{Resource: "file", ID: fileID}
	}

	parent := pathutil.ParentFolder(room.RootFolder, file)
	if parent == nil || !removeChild(parent, file.ID) {
		return &domain.NotFoundError{Resource: "file", ID: fileID}
	}

	if file.ContentRef != "" {
		if err := s.blobStore.Delete(ctx, file.ContentRef); err != nil {
			s.logger.Warn("failed to release blob", "content_ref", file.ContentRef, "error", err)
		}
	}

	now := time.Now()
	parent.Touch(now)
	room.UpdatedAt = now
	recount(room)

	if err := s.docStore.Save(ctx, room); err != nil {
		return fmt.Errorf("persist data room: %w", err)
	}

	s.logger.Info("file deleted",
		"id", fileID,
		"name", file.Name,
		"parent_id", parent.ID,
	)

	return nil
}

// ListChildren lists a folder's children in insertion order. A nil folderID
// means the root folder's children.
func (s *treeService) ListChildren(ctx context.Context, folderID *string) ([]models.Item, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	folder, err := s.resolveParent(room, folderID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, len(folder.Children))
	copy(items, folder.Children)
	return items, nil
}

// Search returns items whose name contains the query (case-insensitive),
// in pre-order traversal encounter order.
func (s *treeService) Search(ctx context.Context, query string) ([]models.Item, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return searchTree(room.RootFolder, strings.ToLower(query)), nil
}

// PathToItem returns the chain of items from the root folder to the
// identified item, both inclusive. Unresolved ids yield an empty slice,
// not an error.
func (s *treeService) PathToItem(ctx context.Context, itemID string) ([]models.Item, error) {
	room, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	target := pathutil.FindByID(room.RootFolder, itemID)
	if target == nil {
		return []models.Item{}, nil
	}

	chain := []models.Item{target}
	current := target
	for current.ItemID() != room.RootFolder.ID {
		parentID := current.Parent()
		if parentID == nil {
			break
		}
		parent := pathutil.FindByID(room.RootFolder, *parentID)
		if parent == nil {
			break
		}
		chain = append([]models.Item{parent}, chain...)
		current = parent
	}

	return chain, nil
}

// load fetches the persisted document for an operation that requires one.
func (s *treeService) load(ctx context.Context) (*models.DataRoom, error) {
	room, err := s.docStore.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUninitialized
		}
		return nil, fmt.Errorf("load data room: %w", err)
	}
	return room, nil
}

// resolveParent maps an optional parent id to a folder in the tree.
func (s *treeService) resolveParent(room *models.DataRoom, parentID *string) (*models.Folder, error) {
	if parentID == nil || *parentID == "" {
		return room.RootFolder, nil
	}

	folder, ok := pathutil.FindByID(room.RootFolder, *parentID).(*models.Folder)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "folder", ID: *parentID}
	}
	return folder, nil
}
