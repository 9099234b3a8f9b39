package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}

// Expert is the first tier of display-name resolution, keyed by email.
type Expert struct {
	gorm.Model
	Email string `gorm:"unique;not null"`
	Name  string
}

// Profile is the fallback tier, keyed by user id.
type Profile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex"`
	Name   string
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
