// Package validation holds the pure, synchronous name and structure checks
// guarding the data room tree. UI collaborators run them on every keystroke
// for instant feedback; the tree service runs them again before mutating so
// the invariants hold regardless of the caller.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"dataroom/internal/config"
	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
)

// NonEmpty rejects names that are empty after trimming surrounding
// whitespace.
func NonEmpty(name string) error {
	return validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("name cannot be empty"),
	)
}

// NameLength rejects names longer than config.MaxNameLength characters.
func NameLength(name string) error {
	return validation.Validate(name,
		validation.RuneLength(0, config.MaxNameLength).
			Error(fmt.Sprintf("name cannot exceed %d characters", config.MaxNameLength)),
	)
}

// ASCIIOnly rejects names containing characters outside the printable
// ASCII range.
func ASCIIOnly(name string) error {
	return validation.Validate(name,
		is.PrintableASCII.Error("name must contain only printable ASCII characters"),
	)
}

// DuplicateName reports whether name collides case-insensitively with a
// sibling's name. The item being renamed is excluded via excludeID.
func DuplicateName(name string, siblings []models.Item, excludeID string) bool {
	for _, sibling := range siblings {
		if excludeID != "" && sibling.ItemID() == excludeID {
			continue
		}
		if strings.EqualFold(sibling.ItemName(), name) {
			return true
		}
	}
	return false
}

// ExtensionUnchanged rejects renames that would change the substring after
// the last dot (case-insensitively) - a rename can never change a file's
// type.
func ExtensionUnchanged(newName, originalName string) error {
	if !strings.EqualFold(extensionOf(newName), extensionOf(originalName)) {
		return fmt.Errorf("file extension cannot be changed")
	}
	return nil
}

func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// FolderDepth rejects creation under a parent already at or beyond
// config.MaxFolderDepth levels from the root (root = depth 0). A nil
// parentID means the root folder itself.
func FolderDepth(parentID *string, root *models.Folder) error {
	if root == nil {
		return fmt.Errorf("folder depth cannot be determined without a root folder")
	}
	if parentID == nil || *parentID == root.ID {
		return nil // root is depth 0
	}

	depth, found := folderDepth(root, *parentID, 0)
	if !found {
		return fmt.Errorf("parent folder %s not found", *parentID)
	}
	if depth >= config.MaxFolderDepth {
		return fmt.Errorf("maximum folder depth of %d exceeded", config.MaxFolderDepth)
	}
	return nil
}

// folderDepth finds the depth of the folder with the given id, depth-first.
func folderDepth(folder *models.Folder, id string, depth int) (int, bool) {
	if folder.ID == id {
		return depth, true
	}
	for _, child := range folder.Children {
		sub, ok := child.(*models.Folder)
		if !ok {
			continue
		}
		if d, found := folderDepth(sub, id, depth+1); found {
			return d, true
		}
	}
	return 0, false
}

// FolderName runs every folder-name rule and reports all violations at
// once. An empty name short-circuits: no other rule is worth reporting.
func FolderName(name string, siblings []models.Item, excludeID string) error {
	if err := NonEmpty(name); err != nil {
		return &domain.ValidationError{Messages: []string{err.Error()}}
	}

	var messages []string
	if err := NameLength(name); err != nil {
		messages = append(messages, err.Error())
	}
	if err := ASCIIOnly(name); err != nil {
		messages = append(messages, err.Error())
	}
	if DuplicateName(name, siblings, excludeID) {
		messages = append(messages, fmt.Sprintf("a folder named %q already exists in this location", name))
	}

	if len(messages) > 0 {
		return &domain.ValidationError{Messages: messages}
	}
	return nil
}

// FileName runs every file-name rule and reports all violations at once.
// When originalName is non-empty the rename must preserve its extension.
func FileName(name string, siblings []models.Item, excludeID, originalName string) error {
	if err := NonEmpty(name); err != nil {
		return &domain.ValidationError{Messages: []string{err.Error()}}
	}

	var messages []string
	if err := NameLength(name); err != nil {
		messages = append(messages, err.Error())
	}
	if err := ASCIIOnly(name); err != nil {
		messages = append(messages, err.Error())
	}
	if DuplicateName(name, siblings, excludeID) {
		messages = append(messages, fmt.Sprintf("a file named %q already exists in this location", name))
	}
	if originalName != "" {
		if err := ExtensionUnchanged(name, originalName); err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) > 0 {
		return &domain.ValidationError{Messages: messages}
	}
	return nil
}

// FileNotEmpty rejects zero-byte uploads.
func FileNotEmpty(data []byte) error {
	if len(data) == 0 {
		return &domain.ValidationError{Messages: []string{"file is empty"}}
	}
	return nil
}
