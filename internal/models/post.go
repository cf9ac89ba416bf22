package models

import "time"

// Post is a blog article. Only rows with IsPublished are visible through the
// public listing and search endpoints; the unique slug is the public handle.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Summary     *string   `gorm:"type:varchar(500)" json:"summary"`
	CoverImage  *string   `gorm:"type:varchar(255)" json:"cover_image"`
	IsPublished bool      `gorm:"not null;default:false;index" json:"is_published"`
	IsPinned    bool      `gorm:"not null;default:false" json:"is_pinned"`
	ViewCount   int       `gorm:"not null;default:0" json:"view_count"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	AuthorID   uint      `gorm:"not null" json:"author_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category"`
	Author     *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags       []Tag     `gorm:"many2many:post_tags" json:"tags"`
}
