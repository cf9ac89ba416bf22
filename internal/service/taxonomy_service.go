package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

// TaxonomyService serves categories and tags with published-post counts.
// The public lists are cached in Redis and invalidated on every admin write
// that can change them.
type TaxonomyService struct {
	taxonomy *repository.TaxonomyRepository
	cache    Cache
	timeout  time.Duration
}

func NewTaxonomyService(gdb *gorm.DB, cache Cache, timeout time.Duration) *TaxonomyService {
	return &TaxonomyService{
		taxonomy: repository.NewTaxonomyRepository(gdb),
		cache:    cache,
		timeout:  timeout,
	}
}

type CategoryItem struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	PostCount   int     `json:"post_count"`
}

type TagItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"post_count"`
}

type CreateCategoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

type CreateTagInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]CategoryItem, error) {
	var cached []CategoryItem
	if s.cache != nil {
		if found, err := s.cache.GetJSON(ctx, cacheKeyCategories, &cached); err == nil && found {
			return cached, nil
		}
	}

	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	categories, err := s.taxonomy.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.taxonomy.PublishedCountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, CategoryItem{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			PostCount:   counts[c.ID],
		})
	}
	s.fill(ctx, cacheKeyCategories, items)
	return items, nil
}

func (s *TaxonomyService) ListTags(ctx context.Context) ([]TagItem, error) {
	var cached []TagItem
	if s.cache != nil {
		if found, err := s.cache.GetJSON(ctx, cacheKeyTags, &cached); err == nil && found {
			return cached, nil
		}
	}

	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	tags, err := s.taxonomy.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.taxonomy.PublishedCountByTag(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]TagItem, 0, len(tags))
	for _, t := range tags {
		items = append(items, TagItem{ID: t.ID, Name: t.Name, Slug: t.Slug, PostCount: counts[t.ID]})
	}
	s.fill(ctx, cacheKeyTags, items)
	return items, nil
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*CategoryItem, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	taken, err := s.taxonomy.CategorySlugExists(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategorySlugTaken
	}
	category := &models.Category{Name: in.Name, Slug: in.Slug, Description: in.Description}
	if err := s.taxonomy.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.drop(ctx, cacheKeyCategories)
	return &CategoryItem{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}, nil
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	category, err := s.taxonomy.GetCategoryByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrCategoryNotFound)
	}
	if err := s.taxonomy.DeleteCategory(ctx, category); err != nil {
		return err
	}
	s.drop(ctx, cacheKeyCategories, cacheKeyStats)
	return nil
}

func (s *TaxonomyService) CreateTag(ctx context.Context, in CreateTagInput) (*TagItem, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	taken, err := s.taxonomy.TagSlugExists(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTagSlugTaken
	}
	tag := &models.Tag{Name: in.Name, Slug: in.Slug}
	if err := s.taxonomy.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	s.drop(ctx, cacheKeyTags)
	return &TagItem{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}, nil
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	tag, err := s.taxonomy.GetTagByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrTagNotFound)
	}
	if err := s.taxonomy.DeleteTag(ctx, tag); err != nil {
		return err
	}
	s.drop(ctx, cacheKeyTags, cacheKeyStats)
	return nil
}

func (s *TaxonomyService) fill(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		log.Printf("cache fill failed for %s: %v", key, err)
	}
}

func (s *TaxonomyService) drop(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}
