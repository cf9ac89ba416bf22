package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

// CommentService validates comment targets, enforces the moderation gate,
// and assembles approved reply trees.
type CommentService struct {
	posts    *repository.PostRepository
	comments *repository.CommentRepository
	timeout  time.Duration
}

func NewCommentService(gdb *gorm.DB, timeout time.Duration) *CommentService {
	return &CommentService{
		posts:    repository.NewPostRepository(gdb),
		comments: repository.NewCommentRepository(gdb),
		timeout:  timeout,
	}
}

type CreateCommentInput struct {
	PostID   uint    `json:"post_id"`
	Nickname string  `json:"nickname"`
	Content  string  `json:"content"`
	Email    *string `json:"email"`
	Website  *string `json:"website"`
	ParentID *uint   `json:"parent_id"`
}

// CommentNode is one node of the assembled thread.
type CommentNode struct {
	ID         uint           `json:"id"`
	Nickname   string         `json:"nickname"`
	Email      *string        `json:"email"`
	Website    *string        `json:"website"`
	Content    string         `json:"content"`
	IsApproved bool           `json:"is_approved"`
	CreatedAt  time.Time      `json:"created_at"`
	PostID     uint           `json:"post_id"`
	ParentID   *uint          `json:"parent_id"`
	Replies    []*CommentNode `json:"replies"`
}

// ModerationItem is one row of the admin moderation list, carrying the
// owning post's title and slug.
type ModerationItem struct {
	ID         uint      `json:"id"`
	Nickname   string    `json:"nickname"`
	Email      *string   `json:"email"`
	Website    *string   `json:"website"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	PostID     uint      `json:"post_id"`
	PostTitle  string    `json:"post_title"`
	PostSlug   *string   `json:"post_slug"`
	ParentID   *uint     `json:"parent_id"`
}

// Create stores a new comment. The target post must exist, and so must the
// parent comment when one is named. The moderation gate cannot be bypassed:
// the stored comment is always unapproved regardless of caller input.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.posts.GetByID(ctx, in.PostID); err != nil {
		return nil, notFoundOr(err, ErrPostNotFound)
	}
	if in.ParentID != nil {
		if _, err := s.comments.GetByID(ctx, *in.ParentID); err != nil {
			return nil, notFoundOr(err, ErrParentCommentNotFound)
		}
	}

	comment := &models.Comment{
		Nickname:   in.Nickname,
		Email:      in.Email,
		Website:    in.Website,
		Content:    in.Content,
		PostID:     in.PostID,
		ParentID:   in.ParentID,
		IsApproved: false,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ApprovedThread returns the approved comment tree of a post resolved by
// slug. The post is looked up among all posts, published or not. Top-level
// comments come newest first; replies at every nested level come oldest
// first.
func (s *CommentService) ApprovedThread(ctx context.Context, slug string) ([]*CommentNode, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, ErrPostNotFound)
	}

	// One flat fetch, oldest first; the tree is assembled in memory instead
	// of one query per node.
	comments, err := s.comments.ListApprovedByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return assembleThread(comments), nil
}

// assembleThread keys the flat, oldest-first comment list by parent id and
// stitches the nodes together. Children inherit the oldest-first input
// order; the top level is reversed to newest first.
func assembleThread(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	children := make(map[uint][]*CommentNode)
	var roots []*CommentNode

	for i := range comments {
		c := &comments[i]
		nodes[c.ID] = &CommentNode{
			ID:         c.ID,
			Nickname:   c.Nickname,
			Email:      c.Email,
			Website:    c.Website,
			Content:    c.Content,
			IsApproved: c.IsApproved,
			CreatedAt:  c.CreatedAt,
			PostID:     c.PostID,
			ParentID:   c.ParentID,
			Replies:    []*CommentNode{},
		}
	}
	for i := range comments {
		c := &comments[i]
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], node)
	}
	for parentID, kids := range children {
		if parent, ok := nodes[parentID]; ok {
			parent.Replies = kids
		}
		// A parent outside the approved set hides its subtree, matching the
		// per-level recursive fetch this replaces.
	}

	sort.SliceStable(roots, func(i, j int) bool {
		if roots[i].CreatedAt.Equal(roots[j].CreatedAt) {
			return roots[i].ID > roots[j].ID
		}
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	if roots == nil {
		roots = []*CommentNode{}
	}
	return roots
}

// ListAll returns every comment newest first for the moderation view,
// optionally filtered by approval state.
func (s *CommentService) ListAll(ctx context.Context, approved *bool) ([]ModerationItem, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	comments, err := s.comments.ListAll(ctx, approved)
	if err != nil {
		return nil, err
	}

	idSet := make(map[uint]struct{})
	var ids []uint
	for _, c := range comments {
		if _, seen := idSet[c.PostID]; !seen {
			idSet[c.PostID] = struct{}{}
			ids = append(ids, c.PostID)
		}
	}
	posts, err := s.posts.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Post, len(posts))
	for i := range posts {
		byID[posts[i].ID] = &posts[i]
	}

	items := make([]ModerationItem, 0, len(comments))
	for _, c := range comments {
		item := ModerationItem{
			ID:         c.ID,
			Nickname:   c.Nickname,
			Email:      c.Email,
			Website:    c.Website,
			Content:    c.Content,
			IsApproved: c.IsApproved,
			CreatedAt:  c.CreatedAt,
			PostID:     c.PostID,
			PostTitle:  "deleted post",
			ParentID:   c.ParentID,
		}
		if p, ok := byID[c.PostID]; ok {
			item.PostTitle = p.Title
			item.PostSlug = &p.Slug
		}
		items = append(items, item)
	}
	return items, nil
}

// Approve marks a comment as moderated. Approving an already approved
// comment succeeds and changes nothing.
func (s *CommentService) Approve(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.comments.GetByID(ctx, id); err != nil {
		return notFoundOr(err, ErrCommentNotFound)
	}
	return s.comments.SetApproved(ctx, id)
}

// Delete removes a single comment. Its replies are intentionally left in
// place, pointing at the removed parent; they stay hidden from threads.
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrCommentNotFound)
	}
	return s.comments.Delete(ctx, comment)
}
