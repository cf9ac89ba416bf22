package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

type AlbumService struct {
	albums  *repository.AlbumRepository
	timeout time.Duration
}

func NewAlbumService(gdb *gorm.DB, timeout time.Duration) *AlbumService {
	return &AlbumService{albums: repository.NewAlbumRepository(gdb), timeout: timeout}
}

type AlbumItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Cover       *string   `json:"cover"`
	SortOrder   int       `json:"sort_order"`
	IsVisible   bool      `json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	PhotoCount  int       `json:"photo_count"`
}

type CreateAlbumInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Cover       *string `json:"cover"`
	SortOrder   int     `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

type UpdateAlbumInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Cover       *string `json:"cover"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

type CreatePhotoInput struct {
	AlbumID     uint    `json:"album_id"`
	URL         string  `json:"url"`
	Thumbnail   *string `json:"thumbnail"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order"`
}

type UpdatePhotoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

func (s *AlbumService) list(ctx context.Context, visibleOnly bool) ([]AlbumItem, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	var albums []models.Album
	var err error
	if visibleOnly {
		albums, err = s.albums.ListVisible(ctx)
	} else {
		albums, err = s.albums.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(albums))
	for _, a := range albums {
		ids = append(ids, a.ID)
	}
	counts, err := s.albums.PhotoCountByAlbum(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]AlbumItem, 0, len(albums))
	for _, a := range albums {
		items = append(items, AlbumItem{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Cover:       a.Cover,
			SortOrder:   a.SortOrder,
			IsVisible:   a.IsVisible,
			CreatedAt:   a.CreatedAt,
			PhotoCount:  counts[a.ID],
		})
	}
	return items, nil
}

func (s *AlbumService) ListVisible(ctx context.Context) ([]AlbumItem, error) {
	return s.list(ctx, true)
}

func (s *AlbumService) ListAll(ctx context.Context) ([]AlbumItem, error) {
	return s.list(ctx, false)
}

func (s *AlbumService) Create(ctx context.Context, in CreateAlbumInput) (*models.Album, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	album := &models.Album{
		Name:        in.Name,
		Description: in.Description,
		Cover:       in.Cover,
		SortOrder:   in.SortOrder,
		IsVisible:   true,
	}
	if in.IsVisible != nil {
		album.IsVisible = *in.IsVisible
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *AlbumService) Update(ctx context.Context, id uint, in UpdateAlbumInput) (*models.Album, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.albums.GetByID(ctx, id); err != nil {
		return nil, notFoundOr(err, ErrAlbumNotFound)
	}
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Cover != nil {
		fields["cover"] = *in.Cover
	}
	if in.SortOrder != nil {
		fields["sort_order"] = *in.SortOrder
	}
	if in.IsVisible != nil {
		fields["is_visible"] = *in.IsVisible
	}
	if err := s.albums.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.albums.GetByID(ctx, id)
}

// Delete removes the album together with its photos.
func (s *AlbumService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	album, err := s.albums.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrAlbumNotFound)
	}
	return s.albums.Delete(ctx, album)
}

func (s *AlbumService) ListPhotos(ctx context.Context, albumID uint) ([]models.Photo, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.albums.GetByID(ctx, albumID); err != nil {
		return nil, notFoundOr(err, ErrAlbumNotFound)
	}
	return s.albums.ListPhotos(ctx, albumID)
}

func (s *AlbumService) AddPhoto(ctx context.Context, in CreatePhotoInput) (*models.Photo, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.albums.GetByID(ctx, in.AlbumID); err != nil {
		return nil, notFoundOr(err, ErrAlbumNotFound)
	}
	photo := &models.Photo{
		AlbumID:     in.AlbumID,
		URL:         in.URL,
		Thumbnail:   in.Thumbnail,
		Title:       in.Title,
		Description: in.Description,
		SortOrder:   in.SortOrder,
	}
	if err := s.albums.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *AlbumService) UpdatePhoto(ctx context.Context, id uint, in UpdatePhotoInput) (*models.Photo, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.albums.GetPhotoByID(ctx, id); err != nil {
		return nil, notFoundOr(err, ErrPhotoNotFound)
	}
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.SortOrder != nil {
		fields["sort_order"] = *in.SortOrder
	}
	if err := s.albums.UpdatePhotoFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.albums.GetPhotoByID(ctx, id)
}

func (s *AlbumService) DeletePhoto(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	photo, err := s.albums.GetPhotoByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrPhotoNotFound)
	}
	return s.albums.DeletePhoto(ctx, photo)
}
