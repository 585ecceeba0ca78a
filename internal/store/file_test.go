package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSeedsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.yaml")
	seed := Tree{"Explorer/FolderDescriptions/{id}": {"Name": "Music"}}

	f, err := NewFile(path, seed)
	require.NoError(t, err)

	// Reads come from the seed without touching the disk.
	name, err := f.Read("Explorer/FolderDescriptions/{id}", "Name")
	require.NoError(t, err)
	assert.Equal(t, "Music", name)
	ok, err := f.HasPath("Explorer/FolderDescriptions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoFileExists(t, path)
	assert.NoDirExists(t, filepath.Dir(path))

	require.NoError(t, f.Write("Explorer/FolderDescriptions/{id}/PropertyBag", "ThisPCPolicy", "Hide"))
	require.NoError(t, f.CreatePath("Explorer/MyComputer/NameSpace/{ns}"))

	// A second handle sees what the first one wrote.
	g, err := NewFile(path, nil)
	require.NoError(t, err)
	v, err := g.Read("Explorer/FolderDescriptions/{id}/PropertyBag", "ThisPCPolicy")
	require.NoError(t, err)
	assert.Equal(t, "Hide", v)
	name, err = g.Read("Explorer/FolderDescriptions/{id}", "Name")
	require.NoError(t, err)
	assert.Equal(t, "Music", name, "the seed was written with the first change")

	require.NoError(t, g.DeletePath("Explorer/MyComputer/NameSpace/{ns}"))
	ok, err = f.HasPath("Explorer/MyComputer/NameSpace/{ns}")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileReadOnlyIsPermissionDenied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yaml")
	f, err := NewFile(path, Tree{"Explorer/FolderDescriptions": {}})
	require.NoError(t, err)
	require.NoError(t, f.CreatePath("Explorer/FolderDescriptions"))
	require.NoError(t, os.Chmod(path, 0o444))

	err = f.Write("Explorer/FolderDescriptions/{id}/PropertyBag", "ThisPCPolicy", "Show")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	ok, err := f.HasPath("Explorer/FolderDescriptions")
	require.NoError(t, err)
	assert.True(t, ok, "reads still work")
}

func TestFileCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keys: [not, a, map"), 0o644))

	f, err := NewFile(path, nil)
	require.NoError(t, err)
	_, err = f.Read("a", "b")
	require.Error(t, err)
	assert.Equal(t, KindStore, KindOf(err))
}

func TestFileSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.yaml")
	f, err := NewFile(path, nil)
	require.NoError(t, err)

	for _, v := range []string{"Show", "Hide", "Show"} {
		require.NoError(t, f.Write("Explorer/FolderDescriptions/{id}/PropertyBag", "ThisPCPolicy", v))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.yaml", entries[0].Name())

	v, err := f.Read("Explorer/FolderDescriptions/{id}/PropertyBag", "ThisPCPolicy")
	require.NoError(t, err)
	assert.Equal(t, "Show", v)
}
