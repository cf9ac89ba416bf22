package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

type AlbumRepository struct{ db *gorm.DB }

func NewAlbumRepository(db *gorm.DB) *AlbumRepository { return &AlbumRepository{db: db} }

func (r *AlbumRepository) ListVisible(ctx context.Context) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.WithContext(ctx).
		Where("is_visible = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *AlbumRepository) ListAll(ctx context.Context) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&albums).Error
	if err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *AlbumRepository) GetByID(ctx context.Context, id uint) (*models.Album, error) {
	var a models.Album
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlbumRepository) Create(ctx context.Context, a *models.Album) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AlbumRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Album{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the album and its photos in one transaction; the album owns
// its photos.
func (r *AlbumRepository) Delete(ctx context.Context, a *models.Album) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", a.ID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(a).Error
	})
}

// PhotoCountByAlbum maps album id to its photo count in one grouped query.
func (r *AlbumRepository) PhotoCountByAlbum(ctx context.Context, albumIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(albumIDs))
	if len(albumIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		AlbumID uint
		N       int
	}
	err := r.db.WithContext(ctx).Model(&models.Photo{}).
		Select("album_id, COUNT(*) AS n").
		Where("album_id IN ?", albumIDs).
		Group("album_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AlbumID] = row.N
	}
	return counts, nil
}

func (r *AlbumRepository) ListPhotos(ctx context.Context, albumID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("sort_order ASC, id ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *AlbumRepository) GetPhotoByID(ctx context.Context, id uint) (*models.Photo, error) {
	var p models.Photo
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AlbumRepository) CreatePhoto(ctx context.Context, p *models.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *AlbumRepository) UpdatePhotoFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Photo{}).Where("id = ?", id).Updates(fields).Error
}

func (r *AlbumRepository) DeletePhoto(ctx context.Context, p *models.Photo) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
