package dataroom

import (
	"time"
)

// ItemType discriminates tree items in the persisted document.
type ItemType string

const (
	ItemTypeFile   ItemType = "file"
	ItemTypeFolder ItemType = "folder"
)

// Entity carries the fields shared by every tree item. ParentID is a
// denormalized back-reference used only for path reconstruction; ownership
// lives in the parent folder's children list.
type Entity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ParentID  *string   `json:"parentId"`
}

// Item is the read-only view shared by files and folders.
type Item interface {
	ItemID() string
	ItemName() string
	ItemType() ItemType
	Created() time.Time
	Updated() time.Time
	Parent() *string
}

func (e *Entity) ItemID() string     { return e.ID }
func (e *Entity) ItemName() string   { return e.Name }
func (e *Entity) Created() time.Time { return e.CreatedAt }
func (e *Entity) Updated() time.Time { return e.UpdatedAt }
func (e *Entity) Parent() *string    { return e.ParentID }

// Touch bumps the entity's modification timestamp.
func (e *Entity) Touch(now time.Time) { e.UpdatedAt = now }
