package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("photos", "b.jpg", strings.NewReader("two")))
	require.NoError(t, store.Save("photos", "a.jpg", strings.NewReader("one")))

	names, err := store.List("photos")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, names, "listing is sorted")

	require.NoError(t, store.Delete("photos", "a.jpg"))
	names, err = store.List("photos")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg"}, names)
}

func TestLocalStoreMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	names, err := store.List("nothing-here")
	require.NoError(t, err)
	assert.Empty(t, names, "a missing directory lists as empty")

	assert.ErrorIs(t, store.Delete("photos", "ghost.jpg"), ErrNotFound)
}

func TestLocalStoreFlattensPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	require.NoError(t, store.Save("../escape", "../../evil.jpg", strings.NewReader("x")))

	_, err = os.Stat(filepath.Join(root, "escape", "evil.jpg"))
	assert.NoError(t, err, "traversal segments are stripped to base names")
	_, err = os.Stat(filepath.Join(filepath.Dir(root), "evil.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestAllowedImageExt(t *testing.T) {
	assert.True(t, AllowedImageExt("photo.JPG"))
	assert.True(t, AllowedImageExt("photo.webp"))
	assert.False(t, AllowedImageExt("archive.zip"))
	assert.False(t, AllowedImageExt("noext"))
}
