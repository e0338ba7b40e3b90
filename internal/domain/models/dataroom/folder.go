package dataroom

import (
	"encoding/json"
	"fmt"
)

// Folder is an interior item owning an ordered list of children
// (insertion order, not sorted).
type Folder struct {
	Entity
	Type     ItemType  `json:"type"` // always "folder"
	Children ChildList `json:"children"`
}

func (f *Folder) ItemType() ItemType { return ItemTypeFolder }

// ChildList is an ordered, heterogeneous sequence of files and folders.
// JSON decoding dispatches on each element's "type" discriminator.
type ChildList []Item

func (c *ChildList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	items := make(ChildList, 0, len(raws))
	for i, raw := range raws {
		var probe struct {
			Type ItemType `json:"type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}

		switch probe.Type {
		case ItemTypeFolder:
			var folder Folder
			if err := json.Unmarshal(raw, &folder); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
			items = append(items, &folder)
		case ItemTypeFile:
			var file File
			if err := json.Unmarshal(raw, &file); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
			items = append(items, &file)
		default:
			return fmt.Errorf("child %d: unknown item type %q", i, probe.Type)
		}
	}

	*c = items
	return nil
}
