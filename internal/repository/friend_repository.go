package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

type FriendRepository struct{ db *gorm.DB }

func NewFriendRepository(db *gorm.DB) *FriendRepository { return &FriendRepository{db: db} }

func (r *FriendRepository) ListVisible(ctx context.Context) ([]models.Friend, error) {
	var friends []models.Friend
	err := r.db.WithContext(ctx).
		Where("is_visible = ?", true).
		Order("sort_order ASC, created_at DESC, id DESC").
		Find(&friends).Error
	if err != nil {
		return nil, err
	}
	return friends, nil
}

func (r *FriendRepository) ListAll(ctx context.Context) ([]models.Friend, error) {
	var friends []models.Friend
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, created_at DESC, id DESC").
		Find(&friends).Error
	if err != nil {
		return nil, err
	}
	return friends, nil
}

func (r *FriendRepository) GetByID(ctx context.Context, id uint) (*models.Friend, error) {
	var f models.Friend
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendRepository) Create(ctx context.Context, f *models.Friend) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FriendRepository) Update(ctx context.Context, f *models.Friend) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FriendRepository) Delete(ctx context.Context, f *models.Friend) error {
	return r.db.WithContext(ctx).Delete(f).Error
}
