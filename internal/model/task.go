package model

import "time"

// Task priorities. Anything outside this set is rejected at the service layer.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is one of the three allowed values.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a single to-do item owned by one user.
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"index"`
	CategoryID  *uint `gorm:"index"`
	Category    *Category
	Title       string
	Description string
	Completed   bool   `gorm:"default:false"`
	Priority    string `gorm:"size:20;default:medium"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
