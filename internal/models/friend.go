package models

import (
	"time"

	"github.com/lib/pq"
)

// Friend is a blogroll link.
type Friend struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	URL         string         `gorm:"type:varchar(500);not null" json:"url"`
	Avatar      *string        `gorm:"type:varchar(500)" json:"avatar"`
	Description *string        `gorm:"type:varchar(500)" json:"description"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`
	IsVisible   bool           `gorm:"not null" json:"is_visible"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
