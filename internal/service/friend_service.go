package service

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

type FriendService struct {
	friends *repository.FriendRepository
	timeout time.Duration
}

func NewFriendService(gdb *gorm.DB, timeout time.Duration) *FriendService {
	return &FriendService{friends: repository.NewFriendRepository(gdb), timeout: timeout}
}

// FriendInput covers both create and full update; the admin UI always
// sends the whole record. A missing is_visible means visible.
type FriendInput struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Avatar      *string  `json:"avatar"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	SortOrder   int      `json:"sort_order"`
	IsVisible   *bool    `json:"is_visible"`
}

func (in FriendInput) visible() bool {
	return in.IsVisible == nil || *in.IsVisible
}

func (s *FriendService) ListVisible(ctx context.Context) ([]models.Friend, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return s.friends.ListVisible(ctx)
}

func (s *FriendService) ListAll(ctx context.Context) ([]models.Friend, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return s.friends.ListAll(ctx)
}

func (s *FriendService) Create(ctx context.Context, in FriendInput) (*models.Friend, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	friend := &models.Friend{
		Name:        in.Name,
		URL:         in.URL,
		Avatar:      in.Avatar,
		Description: in.Description,
		Tags:        pq.StringArray(in.Tags),
		SortOrder:   in.SortOrder,
		IsVisible:   in.visible(),
	}
	if err := s.friends.Create(ctx, friend); err != nil {
		return nil, err
	}
	return friend, nil
}

func (s *FriendService) Update(ctx context.Context, id uint, in FriendInput) (*models.Friend, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	friend, err := s.friends.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrFriendNotFound)
	}
	friend.Name = in.Name
	friend.URL = in.URL
	friend.Avatar = in.Avatar
	friend.Description = in.Description
	friend.Tags = pq.StringArray(in.Tags)
	friend.SortOrder = in.SortOrder
	friend.IsVisible = in.visible()
	if err := s.friends.Update(ctx, friend); err != nil {
		return nil, err
	}
	return friend, nil
}

func (s *FriendService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	friend, err := s.friends.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrFriendNotFound)
	}
	return s.friends.Delete(ctx, friend)
}
