package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrValidation      = errors.New("validation failed")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrUninitialized   = errors.New("data room not initialized")
)

// NotFoundError reports an id that did not resolve to a resource of the
// expected kind (a file id passed where a folder is required also ends up
// here).
type NotFoundError struct {
	Resource string // folder, file, item
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Resource, e.ID)
}

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError accumulates every violated rule so callers can surface
// all of them at once instead of fixing inputs one rejection at a time.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnsupportedTypeError indicates an upload whose extension matches no entry
// in the supported-type registry.
type UnsupportedTypeError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("file %q has no extension", e.Filename)
	}
	return fmt.Sprintf("file type %q is not supported", e.Extension)
}

// Is allows errors.Is() to match against ErrUnsupportedType
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// TooLargeError indicates an upload exceeding its matched type's size ceiling.
type TooLargeError struct {
	FileType string // registry key (pdf, jpeg, ...)
	Size     int64
	MaxSize  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s file of %d bytes exceeds maximum of %d bytes", e.FileType, e.Size, e.MaxSize)
}

// Is allows errors.Is() to match against ErrTooLarge
func (e *TooLargeError) Is(target error) bool {
	return target == ErrTooLarge
}
