package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

// Cache is the slice of the Redis client the services consume. A nil Cache
// disables caching without changing behavior.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	Del(ctx context.Context, keys ...string) error
}

// PostIndex mirrors posts into the search index backing the related-posts
// endpoint. A nil PostIndex disables the mirror.
type PostIndex interface {
	IndexPost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	FindRelated(ctx context.Context, postID uint, tags []string, limit int) ([]map[string]interface{}, error)
}

// Cache keys invalidated by admin writes.
const (
	cacheKeyCategories = "categories"
	cacheKeyTags       = "tags"
	cacheKeyStats      = "stats"
)

// notFoundOr translates a gorm missing-row error into the caller's
// entity-specific sentinel and passes everything else through.
func notFoundOr(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// opCtx bounds a store operation. A zero timeout leaves the caller's context
// untouched.
func opCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
