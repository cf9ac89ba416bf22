package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

type ToolRepository struct{ db *gorm.DB }

func NewToolRepository(db *gorm.DB) *ToolRepository { return &ToolRepository{db: db} }

func (r *ToolRepository) ListVisible(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.db.WithContext(ctx).
		Where("is_visible = ?", true).
		Order("category ASC, sort_order ASC, id ASC").
		Find(&tools).Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

func (r *ToolRepository) ListAll(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.db.WithContext(ctx).
		Order("category ASC, sort_order ASC, id ASC").
		Find(&tools).Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

func (r *ToolRepository) GetByID(ctx context.Context, id uint) (*models.Tool, error) {
	var t models.Tool
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ToolRepository) Create(ctx context.Context, t *models.Tool) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ToolRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Tool{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ToolRepository) Delete(ctx context.Context, t *models.Tool) error {
	return r.db.WithContext(ctx).Delete(t).Error
}
