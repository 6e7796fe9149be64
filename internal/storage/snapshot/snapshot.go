// Package snapshot persists store state as a JSON file with atomic
// replacement, the engine's durability model for metadata-sized data.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File is a JSON snapshot on disk.
type File struct {
	path string
}

// New returns a snapshot file under dir. The directory is created on the
// first save.
func New(dir, name string) *File {
	return &File{path: filepath.Join(dir, name)}
}

// Path returns the snapshot file path.
func (f *File) Path() string {
	return f.path
}

// Load unmarshals the snapshot into v. A missing file returns an error
// satisfying os.IsNotExist, which callers treat as an empty store.
func (f *File) Load(v interface{}) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot %s: %w", f.path, err)
	}
	return nil
}

// Save marshals v and atomically replaces the snapshot: write to a temp
// file, then rename.
func (f *File) Save(v interface{}) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmpFile := f.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	if err := os.Rename(tmpFile, f.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}

	return nil
}
