package model

import "time"

// User is a registered account. The password is stored only as a bcrypt hash.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
	Tasks        []Task     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Categories   []Category `gorm:"foreignKey:UserID"`
}
