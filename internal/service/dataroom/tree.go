package dataroom

import (
	"strings"

	models "dataroom/internal/domain/models/dataroom"
)

// removeChild detaches the child with the given id from parent, preserving
// the order of the remaining children.
func removeChild(parent *models.Folder, id string) bool {
	for i, child := range parent.Children {
		if child.ItemID() == id {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return true
		}
	}
	return false
}

// collectContentRefs gathers the blob references of every file in the
// subtree rooted at folder, so a cascading delete can release them all.
func collectContentRefs(folder *models.Folder) []string {
	var refs []string
	for _, child := range folder.Children {
		switch item := child.(type) {
		case *models.File:
			if item.ContentRef != "" {
				refs = append(refs, item.ContentRef)
			}
		case *models.Folder:
			refs = append(refs, collectContentRefs(item)...)
		}
	}
	return refs
}

// recount recomputes the room's aggregate statistics by a full post-order
// traversal. Chosen over incremental bookkeeping for correctness at the
// small tree sizes a data room sees.
func recount(room *models.DataRoom) {
	files, size := countFolder(room.RootFolder)
	room.TotalFiles = files
	room.TotalSize = size
}

func countFolder(folder *models.Folder) (files int, size int64) {
	for _, child := range folder.Children {
		switch item := child.(type) {
		case *models.File:
			files++
			size += item.Size
		case *models.Folder:
			subFiles, subSize := countFolder(item)
			files += subFiles
			size += subSize
		}
	}
	return files, size
}

// searchTree collects items whose name contains the query
// (case-insensitive), in pre-order encounter order, root inclusive.
func searchTree(folder *models.Folder, query string) []models.Item {
	var matches []models.Item
	if strings.Contains(strings.ToLower(folder.Name), query) {
		matches = append(matches, folder)
	}
	for _, child := range folder.Children {
		switch item := child.(type) {
		case *models.Folder:
			matches = append(matches, searchTree(item, query)...)
		default:
			if strings.Contains(strings.ToLower(child.ItemName()), query) {
				matches = append(matches, child)
			}
		}
	}
	return matches
}
