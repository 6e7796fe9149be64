// Package storage lays out the on-disk data directory shared by the
// metadata snapshots and the per-collection document databases.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SubDirectories defines the storage subdirectories
	DirMetadata  = "metadata"
	DirDocuments = "documents"
)

// Paths holds all storage directory paths
type Paths struct {
	BaseDir      string
	MetadataDir  string
	DocumentsDir string
}

// InitDirectories creates and validates all storage directories
func InitDirectories(baseDir string) (*Paths, error) {
	baseDir = filepath.Clean(baseDir)

	paths := &Paths{
		BaseDir:      baseDir,
		MetadataDir:  filepath.Join(baseDir, DirMetadata),
		DocumentsDir: filepath.Join(baseDir, DirDocuments),
	}

	dirs := []string{
		paths.BaseDir,
		paths.MetadataDir,
		paths.DocumentsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	for _, dir := range dirs {
		if err := validateDirectory(dir); err != nil {
			return nil, fmt.Errorf("directory validation failed for %s: %w", dir, err)
		}
	}

	return paths, nil
}

// validateDirectory checks if a directory exists and is writable
func validateDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory: %s", path)
	}

	// Check write permissions by attempting to create a temp file
	testFile := filepath.Join(path, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
