package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

// StatsService aggregates the public site counters, cached in Redis and
// invalidated by the writing services.
type StatsService struct {
	posts    *repository.PostRepository
	comments *repository.CommentRepository
	taxonomy *repository.TaxonomyRepository
	cache    Cache
	timeout  time.Duration
}

func NewStatsService(gdb *gorm.DB, cache Cache, timeout time.Duration) *StatsService {
	return &StatsService{
		posts:    repository.NewPostRepository(gdb),
		comments: repository.NewCommentRepository(gdb),
		taxonomy: repository.NewTaxonomyRepository(gdb),
		cache:    cache,
		timeout:  timeout,
	}
}

type SiteStats struct {
	Posts      int64 `json:"posts"`
	Categories int64 `json:"categories"`
	Tags       int64 `json:"tags"`
	Comments   int64 `json:"comments"`
	Views      int64 `json:"views"`
}

func (s *StatsService) Stats(ctx context.Context) (*SiteStats, error) {
	var cached SiteStats
	if s.cache != nil {
		if found, err := s.cache.GetJSON(ctx, cacheKeyStats, &cached); err == nil && found {
			return &cached, nil
		}
	}

	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	var stats SiteStats
	var err error
	if stats.Posts, err = s.posts.CountPublished(ctx); err != nil {
		return nil, err
	}
	if stats.Categories, err = s.taxonomy.CountCategories(ctx); err != nil {
		return nil, err
	}
	if stats.Tags, err = s.taxonomy.CountTags(ctx); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.comments.CountApproved(ctx); err != nil {
		return nil, err
	}
	if stats.Views, err = s.posts.SumViews(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyStats, &stats); err != nil {
			log.Printf("cache fill failed for %s: %v", cacheKeyStats, err)
		}
	}
	return &stats, nil
}
