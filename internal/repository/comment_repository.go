package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

type CommentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) *CommentRepository { return &CommentRepository{db: db} }

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListApprovedByPost returns every approved comment of a post in one query,
// oldest first. The thread tree is assembled in memory by the service.
func (r *CommentRepository) ListApprovedByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND is_approved = ?", postID, true).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListAll returns all comments newest first, optionally filtered by approval
// state. Admin moderation view.
func (r *CommentRepository) ListAll(ctx context.Context, approved *bool) ([]models.Comment, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).Order("created_at DESC, id DESC")
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}
	var comments []models.Comment
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) SetApproved(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).
		Update("is_approved", true).Error
}

// Delete removes a single comment. Replies keep their parent_id and become
// orphans; they are already invisible unless re-parented by hand.
func (r *CommentRepository) Delete(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Delete(c).Error
}

// DeleteByPost removes every comment of a post; used inside the post
// deletion transaction since the post owns its comments.
func (r *CommentRepository) DeleteByPost(ctx context.Context, tx *gorm.DB, postID uint) error {
	return tx.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}

// ApprovedCountByPost returns the approved-comment count per post id for the
// given posts in a single grouped query.
func (r *CommentRepository) ApprovedCountByPost(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	return r.countByPost(ctx, postIDs, true)
}

// CountByPost counts all comments per post, moderated or not. Admin use.
func (r *CommentRepository) CountByPost(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	return r.countByPost(ctx, postIDs, false)
}

func (r *CommentRepository) countByPost(ctx context.Context, postIDs []uint, approvedOnly bool) (map[uint]int, error) {
	counts := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		N      int
	}
	q := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	if err := q.Group("post_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}

func (r *CommentRepository) CountApproved(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("is_approved = ?", true).Count(&n).Error
	return n, err
}
