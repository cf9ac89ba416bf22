package models

import "time"

// Album is a photo album; deleting an album removes its photos.
type Album struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description *string   `gorm:"type:varchar(500)" json:"description"`
	Cover       *string   `gorm:"type:varchar(500)" json:"cover"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	IsVisible   bool      `gorm:"not null" json:"is_visible"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Photos []Photo `gorm:"foreignKey:AlbumID" json:"photos,omitempty"`
}

// Photo is a single image inside an album.
type Photo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	URL         string    `gorm:"type:varchar(500);not null" json:"url"`
	Thumbnail   *string   `gorm:"type:varchar(500)" json:"thumbnail"`
	Title       *string   `gorm:"type:varchar(200)" json:"title"`
	Description *string   `gorm:"type:varchar(500)" json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	AlbumID uint `gorm:"not null;index" json:"album_id"`
}
