package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVIDS2/Astris-Blog/internal/storage"
)

func newBannerService(t *testing.T) (*BannerService, storage.FileStore) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return NewBannerService(store), store
}

func TestBannerUploadAndList(t *testing.T) {
	svc, _ := newBannerService(t)

	require.NoError(t, svc.Upload("desktop", "wide.jpg", strings.NewReader("img")))
	require.NoError(t, svc.Upload("mobile", "tall.png", strings.NewReader("img")))

	list, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/desktop-banner/wide.jpg"}, list.Desktop)
	assert.Equal(t, []string{"/uploads/mobile-banner/tall.png"}, list.Mobile)
}

func TestBannerUploadValidation(t *testing.T) {
	svc, _ := newBannerService(t)

	err := svc.Upload("tablet", "a.jpg", strings.NewReader("img"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Upload("desktop", "script.sh", strings.NewReader("#!"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBannerDelete(t *testing.T) {
	svc, _ := newBannerService(t)

	require.NoError(t, svc.Upload("desktop", "wide.jpg", strings.NewReader("img")))
	require.NoError(t, svc.Delete("desktop", "wide.jpg"))
	assert.ErrorIs(t, svc.Delete("desktop", "wide.jpg"), storage.ErrNotFound)
	assert.ErrorIs(t, svc.Delete("tablet", "wide.jpg"), ErrInvalidInput)
}

func TestSaveUploadGeneratesURL(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	url, err := SaveUpload(store, ".png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/photos/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	names, err := store.List("photos")
	require.NoError(t, err)
	assert.Len(t, names, 1)

	_, err = SaveUpload(store, ".exe", strings.NewReader("bin"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
