// Package pathutil converts between slash-delimited path strings and
// locations in the data room tree. Paths double as client-side routes, so
// segments are percent-encoded and file extensions are stripped (an
// extension in a route could be mistaken for a static-asset request by the
// hosting layer). All functions are pure.
package pathutil

import (
	"net/url"
	"regexp"
	"strings"

	models "dataroom/internal/domain/models/dataroom"
)

var extensionSuffix = regexp.MustCompile(`\.[A-Za-z0-9]+$`)

// StripExtension removes a trailing file-extension-like suffix from a
// single path segment.
func StripExtension(segment string) string {
	return extensionSuffix.ReplaceAllString(segment, "")
}

// Parse splits a path on "/", drops empty segments, percent-decodes each
// segment, and strips extension-like suffixes.
func Parse(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		decoded, err := url.PathUnescape(part)
		if err != nil {
			decoded = part
		}
		segments = append(segments, StripExtension(decoded))
	}
	return segments
}

// Build percent-encodes segments and joins them with "/". An empty segment
// list yields "/".
func Build(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	encoded := make([]string, len(segments))
	for i, segment := range segments {
		encoded[i] = url.PathEscape(segment)
	}
	return "/" + strings.Join(encoded, "/")
}

// FindByPath walks the parsed segments from the root. At each level a child
// is matched by exact name first, then by extension-stripped name - the
// fallback tolerates the stripping performed when the path was built.
// Returns nil when the path does not resolve.
func FindByPath(root *models.Folder, path string) models.Item {
	if root == nil {
		return nil
	}

	var current models.Item = root
	for _, segment := range Parse(path) {
		folder, ok := current.(*models.Folder)
		if !ok {
			return nil // path continues past a file
		}

		var next models.Item
		for _, child := range folder.Children {
			if child.ItemName() == segment {
				next = child
				break
			}
		}
		if next == nil {
			for _, child := range folder.Children {
				if StripExtension(child.ItemName()) == segment {
					next = child
					break
				}
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}

	return current
}

// ItemPath reconstructs an item's path by walking parent references up to
// the root. The root folder itself maps to "/".
func ItemPath(item models.Item, root *models.Folder) string {
	if root == nil || item == nil {
		return "/"
	}
	if item.ItemID() == root.ID {
		return "/"
	}

	var segments []string
	current := item
	for current != nil && current.ItemID() != root.ID {
		segments = append([]string{StripExtension(current.ItemName())}, segments...)
		parentID := current.Parent()
		if parentID == nil {
			break
		}
		current = FindByID(root, *parentID)
	}
	return Build(segments)
}

// FindByID resolves an item id via depth-first pre-order search.
// Returns nil when the id is not in the tree.
func FindByID(root *models.Folder, id string) models.Item {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if child.ItemID() == id {
			return child
		}
		if folder, ok := child.(*models.Folder); ok {
			if found := FindByID(folder, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// ParentFolder resolves the folder containing the given item. Returns nil
// for the root folder or when the parent reference does not resolve.
func ParentFolder(root *models.Folder, item models.Item) *models.Folder {
	if item == nil || item.Parent() == nil {
		return nil
	}
	parent, _ := FindByID(root, *item.Parent()).(*models.Folder)
	return parent
}
