package dataroom

import (
	"time"
)

// DataRoom is the persisted document: one root folder plus whole-tree
// aggregates. TotalFiles and TotalSize are derived state, recomputed by a
// full recount after every mutation that adds or removes a file.
type DataRoom struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	RootFolder *Folder   `json:"rootFolder"`
	TotalFiles int       `json:"totalFiles"`
	TotalSize  int64     `json:"totalSize"`
}
