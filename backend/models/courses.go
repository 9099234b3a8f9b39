package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	UserID      uint `gorm:"index"`
	Chapters    []Chapter
	Ratings     []CourseRating
}

// Chapter content is written once at generation time; order among a
// course's chapters is carried explicitly by OrderIndex.
type Chapter struct {
	gorm.Model
	CourseID   uint   `gorm:"uniqueIndex:idx_course_order"`
	Title      string `gorm:"not null"`
	Content    string `gorm:"type:text"`
	OrderIndex int    `gorm:"uniqueIndex:idx_course_order"`
}

// One rating row per (course, user); submitting again overwrites.
type CourseRating struct {
	gorm.Model
	CourseID uint `gorm:"uniqueIndex:idx_course_user"`
	UserID   uint `gorm:"uniqueIndex:idx_course_user"`
	Rating   int  `gorm:"not null"`
}
