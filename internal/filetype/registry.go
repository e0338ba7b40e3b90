package filetype

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/filetypes.yaml
var configFiles embed.FS

// FileType describes one entry of the supported-type table: how uploads
// with a given extension are classified, displayed, and size-limited.
type FileType struct {
	Key         string `yaml:"key"`
	MimeType    string `yaml:"mime"`
	Extension   string `yaml:"extension"`
	MaxSize     int64  `yaml:"maxSize"` // bytes
	DisplayName string `yaml:"displayName"`
}

// Registry holds the supported file types in declaration order.
type Registry struct {
	types []FileType
	byKey map[string]*FileType
	byExt map[string]*FileType
}

// NewRegistry loads the embedded supported-type table.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/filetypes.yaml")
	if err != nil {
		return nil, fmt.Errorf("read filetypes.yaml: %w", err)
	}

	var doc struct {
		Types []FileType `yaml:"types"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal filetypes.yaml: %w", err)
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("filetypes.yaml defines no types")
	}

	r := &Registry{
		types: doc.Types,
		byKey: make(map[string]*FileType, len(doc.Types)),
		byExt: make(map[string]*FileType, len(doc.Types)),
	}
	for i := range r.types {
		ft := &r.types[i]
		r.byKey[ft.Key] = ft
		r.byExt[strings.ToLower(ft.Extension)] = ft
	}

	return r, nil
}

// ByKey returns the file type registered under the given key.
func (r *Registry) ByKey(key string) (*FileType, bool) {
	ft, ok := r.byKey[key]
	return ft, ok
}

// ByExtension matches a file name's extension (case-insensitive) against
// the table.
func (r *Registry) ByExtension(filename string) (*FileType, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return nil, false
	}
	ft, ok := r.byExt[ext]
	return ft, ok
}

// All returns the supported types in declaration order.
func (r *Registry) All() []FileType {
	return r.types
}
