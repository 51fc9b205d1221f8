package model

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3B82F6"

// Category is a user-owned label attachable to tasks.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Name      string
	Color     string `gorm:"size:7;default:'#3B82F6'"`
	CreatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
