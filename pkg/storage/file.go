package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// File stores each key as <root>/<key>.json.
type File struct {
	Root string // e.g., ~/.local/share/dayplan
}

// NewFile creates a file backend rooted at the given directory, creating the
// directory if it doesn't exist.
func NewFile(root string) (*File, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &File{Root: root}, nil
}

// Path returns the on-disk path for a key.
func (f *File) Path(key string) string {
	return filepath.Join(f.Root, key+".json")
}

// Load implements Backend.
func (f *File) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path(key), err)
	}
	return data, nil
}

// Save implements Backend.
func (f *File) Save(key string, value []byte) error {
	if err := os.WriteFile(f.Path(key), value, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path(key), err)
	}
	return nil
}

// Close implements Backend.
func (f *File) Close() error {
	return nil
}
