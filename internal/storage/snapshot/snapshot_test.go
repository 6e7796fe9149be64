package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveAndLoad(t *testing.T) {
	f := New(t.TempDir(), "state.json")

	saved := map[string]*record{
		"a": {Name: "alpha", Count: 1},
		"b": {Name: "beta", Count: 2},
	}
	require.NoError(t, f.Save(saved))

	loaded := map[string]*record{}
	require.NoError(t, f.Load(&loaded))
	assert.Equal(t, saved, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	f := New(t.TempDir(), "missing.json")

	err := f.Load(&map[string]*record{})
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "meta")
	f := New(dir, "state.json")

	require.NoError(t, f.Save(map[string]string{"k": "v"}))
	assert.FileExists(t, f.Path())
}

func TestSave_ReplacesAtomically(t *testing.T) {
	f := New(t.TempDir(), "state.json")

	require.NoError(t, f.Save(map[string]int{"v": 1}))
	require.NoError(t, f.Save(map[string]int{"v": 2}))

	loaded := map[string]int{}
	require.NoError(t, f.Load(&loaded))
	assert.Equal(t, 2, loaded["v"])

	// No temp file left behind
	_, err := os.Stat(f.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	f := New(dir, "state.json")
	require.NoError(t, os.WriteFile(f.Path(), []byte("{not json"), 0o600))

	err := f.Load(&map[string]string{})
	assert.Error(t, err)
	assert.False(t, os.IsNotExist(err))
}
