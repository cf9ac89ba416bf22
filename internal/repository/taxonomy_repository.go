package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

// TaxonomyRepository covers categories and tags; both are small flat tables
// queried the same way.
type TaxonomyRepository struct{ db *gorm.DB }

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository { return &TaxonomyRepository{db: db} }

func (r *TaxonomyRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// PublishedCountByCategory maps category id to its number of published posts.
func (r *TaxonomyRepository) PublishedCountByCategory(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		CategoryID uint
		N          int
	}
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("category_id, COUNT(*) AS n").
		Where("is_published = ? AND category_id IS NOT NULL", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.N
	}
	return counts, nil
}

func (r *TaxonomyRepository) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *TaxonomyRepository) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *TaxonomyRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *TaxonomyRepository) DeleteCategory(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Delete(c).Error
}

func (r *TaxonomyRepository) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}

func (r *TaxonomyRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// PublishedCountByTag maps tag id to its number of published posts.
func (r *TaxonomyRepository) PublishedCountByTag(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		TagID uint
		N     int
	}
	err := r.db.WithContext(ctx).Table("post_tags").
		Select("post_tags.tag_id, COUNT(*) AS n").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("posts.is_published = ?", true).
		Group("post_tags.tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.TagID] = row.N
	}
	return counts, nil
}

func (r *TaxonomyRepository) GetTagByID(ctx context.Context, id uint) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaxonomyRepository) GetTagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TaxonomyRepository) TagSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *TaxonomyRepository) CreateTag(ctx context.Context, t *models.Tag) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaxonomyRepository) DeleteTag(ctx context.Context, t *models.Tag) error {
	return r.db.WithContext(ctx).Delete(t).Error
}

func (r *TaxonomyRepository) CountTags(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&n).Error
	return n, err
}
