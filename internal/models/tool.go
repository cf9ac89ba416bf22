package models

import "time"

// Tool is a bookmarked utility shown on the tools page, grouped by category.
type Tool struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	URL         string    `gorm:"type:varchar(500);not null" json:"url"`
	Description *string   `gorm:"type:varchar(500)" json:"description"`
	Icon        *string   `gorm:"type:varchar(255)" json:"icon"`
	Category    string    `gorm:"type:varchar(50);not null;default:'misc'" json:"category"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	IsVisible   bool      `gorm:"not null" json:"is_visible"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
