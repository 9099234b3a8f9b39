package models

import "gorm.io/gorm"

type Resource struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Description  string
	FileURL      string `gorm:"not null"`
	ThumbnailURL *string
	UserID       uint `gorm:"index"`
}
