package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thispc/internal/folders"
	"thispc/internal/policy"
)

func id(t *testing.T, alias string) string {
	t.Helper()
	it, ok := folders.Lookup(alias)
	require.True(t, ok)
	return it.ID
}

func TestParse(t *testing.T) {
	flags, err := Parse([]byte(`
folders:
  3d-objects: hide
  Desktop: Hidden
  "{a0c69a99-21c8-4671-8703-7934162fcf1d}": show
`))
	require.NoError(t, err)
	require.NoError(t, flags.Validate(folders.List()))

	assert.False(t, flags[folders.CompanionID])
	assert.False(t, flags[id(t, "desktop")])
	assert.True(t, flags[id(t, "music")])
	assert.True(t, flags[id(t, "videos")], "unlisted folders are shown")
}

func TestParseEmpty(t *testing.T) {
	flags, err := Parse(nil)
	require.NoError(t, err)
	assert.True(t, flags.Equal(policy.AllShown()))
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unknown folder": "folders:\n  recycle-bin: hide\n",
		"bad value":      "folders:\n  music: maybe\n",
		"not a mapping":  "folders: [music]\n",
		"bad yaml":       "folders: {music: hide\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsFolderListedTwice(t *testing.T) {
	cases := map[string]string{
		"alias case":   "folders:\n  desktop: hide\n  Desktop: show\n",
		"alias and id": "folders:\n  music: hide\n  \"{A0C69A99-21C8-4671-8703-7934162FCF1D}\": hide\n",
		"id no braces": "folders:\n  videos: show\n  documents: hide\n  35286a68-3c57-41a1-bbb1-0eae73d76c95: hide\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "listed twice")
		})
	}

	_, err := Parse([]byte("folders:\n  desktop: hide\n  Desktop: show\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3: desktop listed twice")
}

func TestMarshalOrderAndRoundTrip(t *testing.T) {
	flags := policy.AllShown()
	flags[id(t, "pictures")] = false

	b, err := Marshal(flags)
	require.NoError(t, err)
	assert.Equal(t, `folders:
  3d-objects: show
  desktop: show
  documents: show
  downloads: show
  music: show
  pictures: hide
  videos: show
`, string(b))

	path := filepath.Join(t.TempDir(), "p", "profile.yaml")
	require.NoError(t, Write(path, flags))
	got, err := Read(path)
	require.NoError(t, err)
	assert.True(t, flags.Equal(got))
}
