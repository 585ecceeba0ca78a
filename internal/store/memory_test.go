package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadMissing(t *testing.T) {
	m := NewMemory()

	_, err := m.Read("Explorer/FolderDescriptions/{x}/PropertyBag", "ThisPCPolicy")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	require.NoError(t, m.CreatePath("a/b"))
	_, err = m.Read("a/b", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryWriteCreatesAncestors(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Write("Explorer/FolderDescriptions/{id}/PropertyBag", "ThisPCPolicy", "Hide"))

	for _, p := range []string{"Explorer", "Explorer/FolderDescriptions", "Explorer/FolderDescriptions/{id}"} {
		ok, err := m.HasPath(p)
		require.NoError(t, err)
		assert.True(t, ok, p)
	}
	v, err := m.Read(`explorer\folderdescriptions\{ID}\propertybag`, "thispcpolicy")
	require.NoError(t, err)
	assert.Equal(t, "Hide", v)
}

func TestMemoryCreateDeleteIdempotent(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreatePath("Explorer/MyComputer/NameSpace/{ns}"))
	require.NoError(t, m.CreatePath("Explorer/MyComputer/NameSpace/{ns}"))

	ok, _ := m.HasPath("Explorer/MyComputer/NameSpace/{NS}")
	assert.True(t, ok)

	require.NoError(t, m.DeletePath("Explorer/MyComputer/NameSpace/{ns}"))
	require.NoError(t, m.DeletePath("Explorer/MyComputer/NameSpace/{ns}"))

	ok, _ = m.HasPath("Explorer/MyComputer/NameSpace/{ns}")
	assert.False(t, ok)
	ok, _ = m.HasPath("Explorer/MyComputer/NameSpace")
	assert.True(t, ok, "parent stays in place")
}

func TestMemoryDeleteRefusesSubkeys(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreatePath("a/b/c"))

	err := m.DeletePath("a/b")
	require.Error(t, err)
	assert.Equal(t, KindStore, KindOf(err))
}

func TestMemorySnapshotRoundTrip(t *testing.T) {
	src := Tree{
		"Explorer/FolderDescriptions/{id}":             {"Name": "Desktop"},
		"Explorer/FolderDescriptions/{id}/PropertyBag": {"ThisPCPolicy": "Show"},
	}
	m := NewMemoryFrom(src)
	snap := m.Snapshot()

	assert.Equal(t, "Desktop", snap["Explorer/FolderDescriptions/{id}"]["Name"])
	assert.Equal(t, "Show", snap["Explorer/FolderDescriptions/{id}/PropertyBag"]["ThisPCPolicy"])
	assert.Contains(t, m.Paths(), "Explorer")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindPermissionDenied, KindOf(fmt.Errorf("wrap: %w", ErrPermissionDenied)))
	assert.Equal(t, KindNotFound, KindOf(ErrNotFound))
	assert.Equal(t, KindStore, KindOf(errors.New("disk on fire")))

	err := newError("write", "a", "b", KindPermissionDenied, errors.New("access is denied"))
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "write a:b: access is denied", err.Error())
	assert.Equal(t, "permission denied", KindPermissionDenied.String())
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a/b/c", Clean(`\a\\b/c/`))
	assert.Equal(t, "", Clean("/"))
}
