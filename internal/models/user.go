package models

import "time"

// User is the blog admin account. The blog is single-admin; rows beyond the
// bootstrapped one only exist if created by hand.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Email        *string   `gorm:"type:varchar(100)" json:"email"`
	Avatar       *string   `gorm:"type:varchar(255)" json:"avatar"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
