package dataroom

// File is a leaf item. The binary payload is not stored inline; ContentRef
// keys into the blob store.
type File struct {
	Entity
	Type       ItemType `json:"type"` // always "file"
	FileType   string   `json:"fileType"`
	Size       int64    `json:"size"`
	ContentRef string   `json:"contentRef"`
}

func (f *File) ItemType() ItemType { return ItemTypeFile }
