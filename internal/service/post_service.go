package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

type PostService struct {
	gdb      *gorm.DB
	posts    *repository.PostRepository
	comments *repository.CommentRepository
	taxonomy *repository.TaxonomyRepository
	cache    Cache
	index    PostIndex
	timeout  time.Duration
}

func NewPostService(gdb *gorm.DB, cache Cache, index PostIndex, timeout time.Duration) *PostService {
	return &PostService{
		gdb:      gdb,
		posts:    repository.NewPostRepository(gdb),
		comments: repository.NewCommentRepository(gdb),
		taxonomy: repository.NewTaxonomyRepository(gdb),
		cache:    cache,
		index:    index,
		timeout:  timeout,
	}
}

// PostListItem is one row of the public listing; content is omitted.
type PostListItem struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	Summary      *string          `json:"summary"`
	CoverImage   *string          `json:"cover_image"`
	IsPublished  bool             `json:"is_published"`
	IsPinned     bool             `json:"is_pinned"`
	ViewCount    int              `json:"view_count"`
	CreatedAt    time.Time        `json:"created_at"`
	Category     *models.Category `json:"category"`
	Tags         []models.Tag     `json:"tags"`
	CommentCount int              `json:"comment_count"`
}

type PostPage struct {
	Items      []PostListItem `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// PostDetail is a full post plus its comment count (approved-only on the
// public surface, all comments on the admin surface).
type PostDetail struct {
	*models.Post
	CommentCount int `json:"comment_count"`
}

type CreatePostInput struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Content     string  `json:"content"`
	Summary     *string `json:"summary"`
	CoverImage  *string `json:"cover_image"`
	IsPublished bool    `json:"is_published"`
	IsPinned    bool    `json:"is_pinned"`
	CategoryID  *uint   `json:"category_id"`
	TagIDs      []uint  `json:"tag_ids"`
}

// UpdatePostInput is a sparse patch: nil fields are left untouched. The
// nullable columns clear on an explicit zero value: category_id 0 detaches
// the category, an empty summary or cover_image stores NULL.
type UpdatePostInput struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Content     *string `json:"content"`
	Summary     *string `json:"summary"`
	CoverImage  *string `json:"cover_image"`
	IsPublished *bool   `json:"is_published"`
	IsPinned    *bool   `json:"is_pinned"`
	CategoryID  *uint   `json:"category_id"`
	TagIDs      *[]uint `json:"tag_ids"`
}

// ListPublished returns one page of published posts. page starts at 1,
// pageSize is capped at 500; both are rejected out of range before any store
// access.
func (s *PostService) ListPublished(ctx context.Context, page, pageSize int, categorySlug, tagSlug string) (*PostPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrInvalidInput)
	}
	if pageSize < 1 || pageSize > 500 {
		return nil, fmt.Errorf("%w: page_size must be between 1 and 500", ErrInvalidInput)
	}
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	posts, total, err := s.posts.ListPublished(ctx, page, pageSize, categorySlug, tagSlug)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := s.comments.ApprovedCountByPost(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]PostListItem, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		items = append(items, PostListItem{
			ID:           p.ID,
			Title:        p.Title,
			Slug:         p.Slug,
			Summary:      p.Summary,
			CoverImage:   p.CoverImage,
			IsPublished:  p.IsPublished,
			IsPinned:     p.IsPinned,
			ViewCount:    p.ViewCount,
			CreatedAt:    p.CreatedAt,
			Category:     p.Category,
			Tags:         p.Tags,
			CommentCount: counts[p.ID],
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &PostPage{Items: items, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}, nil
}

// GetPublished resolves a published post by slug and bumps its view counter
// before returning. Unpublished and missing slugs are both reported as not
// found.
func (s *PostService) GetPublished(ctx context.Context, slug string) (*PostDetail, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	post, err := s.posts.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, ErrPostNotFound)
	}
	if err := s.posts.BumpViewCount(ctx, post); err != nil {
		return nil, err
	}
	counts, err := s.comments.ApprovedCountByPost(ctx, []uint{post.ID})
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, CommentCount: counts[post.ID]}, nil
}

// Related returns published posts sharing tags with the given post, from the
// search index mirror. Without an index the list is empty.
func (s *PostService) Related(ctx context.Context, slug string, limit int) ([]map[string]interface{}, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	post, err := s.posts.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, ErrPostNotFound)
	}
	if s.index == nil {
		return []map[string]interface{}{}, nil
	}
	tagNames := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tagNames = append(tagNames, t.Name)
	}
	return s.index.FindRelated(ctx, post.ID, tagNames, limit)
}

// ListAll returns every post including drafts, newest first, with total
// (not approved-only) comment counts. Admin surface.
func (s *PostService) ListAll(ctx context.Context) ([]PostDetail, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := s.comments.CountByPost(ctx, ids)
	if err != nil {
		return nil, err
	}
	details := make([]PostDetail, 0, len(posts))
	for i := range posts {
		p := posts[i]
		details = append(details, PostDetail{Post: &p, CommentCount: counts[p.ID]})
	}
	return details, nil
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput, authorID uint) (*PostDetail, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	taken, err := s.posts.SlugExists(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPostSlugTaken
	}
	tags, err := s.taxonomy.GetTagsByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		Summary:     in.Summary,
		CoverImage:  in.CoverImage,
		IsPublished: in.IsPublished,
		IsPinned:    in.IsPinned,
		CategoryID:  in.CategoryID,
		AuthorID:    authorID,
		Tags:        tags,
	}
	if err := s.gdb.Transaction(func(tx *gorm.DB) error {
		return s.posts.Create(ctx, tx, post)
	}); err != nil {
		return nil, err
	}

	created, err := s.posts.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, created)
	s.invalidate(ctx)
	return &PostDetail{Post: created, CommentCount: 0}, nil
}

func (s *PostService) Update(ctx context.Context, id uint, in UpdatePostInput) (*PostDetail, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPostNotFound)
	}

	if in.Slug != nil && *in.Slug != post.Slug {
		taken, err := s.posts.SlugExists(ctx, *in.Slug)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPostSlugTaken
		}
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Slug != nil {
		fields["slug"] = *in.Slug
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if in.Summary != nil {
		fields["summary"] = nullableString(*in.Summary)
	}
	if in.CoverImage != nil {
		fields["cover_image"] = nullableString(*in.CoverImage)
	}
	if in.IsPublished != nil {
		fields["is_published"] = *in.IsPublished
	}
	if in.IsPinned != nil {
		fields["is_pinned"] = *in.IsPinned
	}
	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			fields["category_id"] = nil
		} else {
			fields["category_id"] = *in.CategoryID
		}
	}

	var tags []models.Tag
	if in.TagIDs != nil {
		tags, err = s.taxonomy.GetTagsByIDs(ctx, *in.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.gdb.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.UpdateFields(ctx, tx, id, fields); err != nil {
			return err
		}
		if in.TagIDs != nil {
			if err := s.posts.ReplaceTags(ctx, tx, post, tags); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	updated, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.comments.CountByPost(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, updated)
	s.invalidate(ctx)
	return &PostDetail{Post: updated, CommentCount: counts[id]}, nil
}

// Delete removes a post and, in the same transaction, every comment on it;
// the post owns its comments.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrPostNotFound)
	}
	if err := s.gdb.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.DeleteByPost(ctx, tx, id); err != nil {
			return err
		}
		return s.posts.Delete(ctx, tx, post)
	}); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.DeletePost(ctx, id); err != nil {
			log.Printf("search index delete failed for post %d: %v", id, err)
		}
	}
	s.invalidate(ctx)
	return nil
}

// nullableString maps an empty patch value to NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (s *PostService) mirror(ctx context.Context, post *models.Post) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexPost(ctx, post); err != nil {
		log.Printf("search index update failed for post %d: %v", post.ID, err)
	}
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKeyStats, cacheKeyCategories, cacheKeyTags); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}
