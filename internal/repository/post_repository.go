package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

func preloadTagsByName(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }

// publishedQuery builds the shared predicate for listing and counting so the
// total always reflects the same filter as the page of results.
func (r *PostRepository) publishedQuery(ctx context.Context, categorySlug, tagSlug string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("posts.is_published = ?", true)
	if categorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if tagSlug != "" {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}
	return q
}

// ListPublished returns one page of published posts, pinned first then newest
// first, with the total count under the same predicate.
func (r *PostRepository) ListPublished(ctx context.Context, page, pageSize int, categorySlug, tagSlug string) ([]models.Post, int64, error) {
	var total int64
	if err := r.publishedQuery(ctx, categorySlug, tagSlug).Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.publishedQuery(ctx, categorySlug, tagSlug).
		Preload("Category").
		Preload("Tags", preloadTagsByName).
		Order("posts.is_pinned DESC, posts.created_at DESC, posts.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags", preloadTagsByName).
		Preload("Author").
		Where("slug = ? AND is_published = ?", slug, true).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug resolves any post, published or not.
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags", preloadTagsByName).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

// BumpViewCount persists a read-modify-write view counter increment based on
// the value already loaded into post. Concurrent readers can lose updates;
// the counter is best-effort. UpdateColumn keeps updated_at untouched.
func (r *PostRepository) BumpViewCount(ctx context.Context, post *models.Post) error {
	post.ViewCount++
	return r.db.WithContext(ctx).Model(post).UpdateColumn("view_count", post.ViewCount).Error
}

// SearchPublished matches the keyword case-insensitively as a substring of
// title, summary, or content, ranking title matches before the rest and
// newer posts before older within each group.
func (r *PostRepository) SearchPublished(ctx context.Context, keyword string, limit int) ([]models.Post, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Preload("Category").
		Preload("Tags", preloadTagsByName).
		Where("is_published = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern, pattern).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "(LOWER(title) LIKE ?) DESC, created_at DESC, id DESC",
			Vars:               []interface{}{pattern},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAll returns every post, drafts included, newest first. Admin use.
func (r *PostRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags", preloadTagsByName).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, tx *gorm.DB, post *models.Post) error {
	return tx.WithContext(ctx).Create(post).Error
}

// UpdateFields applies a sparse column update; unset fields stay untouched.
func (r *PostRepository) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PostRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, post *models.Post, tags []models.Tag) error {
	return tx.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *PostRepository) Delete(ctx context.Context, tx *gorm.DB, post *models.Post) error {
	if err := tx.WithContext(ctx).Model(post).Association("Tags").Clear(); err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(post).Error
}

// CountPublished and SumViews feed the public stats endpoint.
func (r *PostRepository) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("is_published = ?", true).Count(&n).Error
	return n, err
}

func (r *PostRepository) SumViews(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("is_published = ?", true).
		Select("SUM(view_count)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

// ListByIDs fetches bare posts for the given ids, without relations.
func (r *PostRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
