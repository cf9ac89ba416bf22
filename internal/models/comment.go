package models

import "time"

// Comment is a reader comment on a post. ParentID forms a self-referential
// reply tree; a parent must already exist before a child can reference it.
// New comments start unapproved and stay hidden until moderated.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Nickname   string    `gorm:"type:varchar(50);not null" json:"nickname"`
	Email      *string   `gorm:"type:varchar(100)" json:"email"`
	Website    *string   `gorm:"type:varchar(200)" json:"website"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"not null;default:false;index" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	PostID   uint  `gorm:"not null;index" json:"post_id"`
	ParentID *uint `gorm:"index" json:"parent_id"`
}
