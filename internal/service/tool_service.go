package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

type ToolService struct {
	tools   *repository.ToolRepository
	timeout time.Duration
}

func NewToolService(gdb *gorm.DB, timeout time.Duration) *ToolService {
	return &ToolService{tools: repository.NewToolRepository(gdb), timeout: timeout}
}

type CreateToolInput struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Category    string  `json:"category"`
	SortOrder   int     `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

// UpdateToolInput is a sparse patch; nil fields stay untouched.
type UpdateToolInput struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Category    *string `json:"category"`
	SortOrder   *int    `json:"sort_order"`
	IsVisible   *bool   `json:"is_visible"`
}

// ListGrouped returns the visible tools grouped by category for the public
// tools page. Group order follows category name order.
func (s *ToolService) ListGrouped(ctx context.Context) (map[string][]models.Tool, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	tools, err := s.tools.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.Tool)
	for _, t := range tools {
		grouped[t.Category] = append(grouped[t.Category], t)
	}
	return grouped, nil
}

func (s *ToolService) ListAll(ctx context.Context) ([]models.Tool, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return s.tools.ListAll(ctx)
}

func (s *ToolService) Create(ctx context.Context, in CreateToolInput) (*models.Tool, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	tool := &models.Tool{
		Name:        in.Name,
		URL:         in.URL,
		Description: in.Description,
		Icon:        in.Icon,
		Category:    in.Category,
		SortOrder:   in.SortOrder,
		IsVisible:   true,
	}
	if tool.Category == "" {
		tool.Category = "misc"
	}
	if in.IsVisible != nil {
		tool.IsVisible = *in.IsVisible
	}
	if err := s.tools.Create(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

func (s *ToolService) Update(ctx context.Context, id uint, in UpdateToolInput) (*models.Tool, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.tools.GetByID(ctx, id); err != nil {
		return nil, notFoundOr(err, ErrToolNotFound)
	}
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.URL != nil {
		fields["url"] = *in.URL
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Icon != nil {
		fields["icon"] = *in.Icon
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.SortOrder != nil {
		fields["sort_order"] = *in.SortOrder
	}
	if in.IsVisible != nil {
		fields["is_visible"] = *in.IsVisible
	}
	if err := s.tools.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.tools.GetByID(ctx, id)
}

func (s *ToolService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	tool, err := s.tools.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrToolNotFound)
	}
	return s.tools.Delete(ctx, tool)
}
