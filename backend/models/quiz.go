package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizHistory is write-once: a completed quiz attempt with the full
// question snapshot (answer key included) and the user's answers.
type QuizHistory struct {
	gorm.Model
	UserID         uint `gorm:"index"`
	Topic          string
	Score          int
	TotalQuestions int
	Questions      datatypes.JSON
	Answers        datatypes.JSON
}
