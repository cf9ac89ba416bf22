package models

// Category groups posts; a post belongs to at most one category.
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Slug        string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Description *string `gorm:"type:varchar(200)" json:"description"`
}
