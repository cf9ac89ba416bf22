package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

func TestAlbumListWithPhotoCounts(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAlbumService(gdb, 0)
	ctx := context.Background()

	album, err := svc.Create(ctx, CreateAlbumInput{Name: "Trips"})
	require.NoError(t, err)
	hidden := false
	_, err = svc.Create(ctx, CreateAlbumInput{Name: "Private", IsVisible: &hidden})
	require.NoError(t, err)

	_, err = svc.AddPhoto(ctx, CreatePhotoInput{AlbumID: album.ID, URL: "/uploads/photos/a.jpg"})
	require.NoError(t, err)
	_, err = svc.AddPhoto(ctx, CreatePhotoInput{AlbumID: album.ID, URL: "/uploads/photos/b.jpg"})
	require.NoError(t, err)

	public, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Trips", public[0].Name)
	assert.Equal(t, 2, public[0].PhotoCount)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddPhotoRequiresAlbum(t *testing.T) {
	svc := NewAlbumService(newTestDB(t), 0)
	_, err := svc.AddPhoto(context.Background(), CreatePhotoInput{AlbumID: 999, URL: "/x.jpg"})
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}

func TestAlbumUpdateSparse(t *testing.T) {
	svc := NewAlbumService(newTestDB(t), 0)
	ctx := context.Background()

	album, err := svc.Create(ctx, CreateAlbumInput{Name: "Trips", SortOrder: 3})
	require.NoError(t, err)

	name := "Travel"
	updated, err := svc.Update(ctx, album.ID, UpdateAlbumInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Travel", updated.Name)
	assert.Equal(t, 3, updated.SortOrder)

	_, err = svc.Update(ctx, 999, UpdateAlbumInput{Name: &name})
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}

func TestAlbumDeleteCascadesPhotos(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAlbumService(gdb, 0)
	ctx := context.Background()

	album, err := svc.Create(ctx, CreateAlbumInput{Name: "Trips"})
	require.NoError(t, err)
	_, err = svc.AddPhoto(ctx, CreatePhotoInput{AlbumID: album.ID, URL: "/a.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, album.ID))

	var count int64
	require.NoError(t, gdb.Model(&models.Photo{}).Where("album_id = ?", album.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, svc.Delete(ctx, album.ID), ErrAlbumNotFound)
}

func TestPhotoUpdateAndDelete(t *testing.T) {
	svc := NewAlbumService(newTestDB(t), 0)
	ctx := context.Background()

	album, err := svc.Create(ctx, CreateAlbumInput{Name: "Trips"})
	require.NoError(t, err)
	photo, err := svc.AddPhoto(ctx, CreatePhotoInput{AlbumID: album.ID, URL: "/a.jpg"})
	require.NoError(t, err)

	title := "Sunset"
	updated, err := svc.UpdatePhoto(ctx, photo.ID, UpdatePhotoInput{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "Sunset", *updated.Title)

	require.NoError(t, svc.DeletePhoto(ctx, photo.ID))
	assert.ErrorIs(t, svc.DeletePhoto(ctx, photo.ID), ErrPhotoNotFound)
}
