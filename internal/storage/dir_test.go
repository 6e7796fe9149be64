package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	paths, err := InitDirectories(tmpDir)
	require.NoError(t, err)
	assert.NotNil(t, paths)

	// Verify all directories were created
	assert.DirExists(t, paths.BaseDir)
	assert.DirExists(t, paths.MetadataDir)
	assert.DirExists(t, paths.DocumentsDir)
}

func TestInitDirectories_Nested(t *testing.T) {
	tmpDir := t.TempDir()
	base := filepath.Join(tmpDir, "var", "lib", "schemacraft")

	paths, err := InitDirectories(base)
	require.NoError(t, err)
	assert.DirExists(t, paths.MetadataDir)
}

func TestInitDirectories_NotADirectory(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := InitDirectories(file)
	assert.Error(t, err)
}
