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
	Role         string `gorm:"default:student"` // student, instructor, admin
	DisplayName  string
}

// ActivityRecord is one timestamped learning event (currently only lesson
// completions). The streak and engagement reducers consume these.
type ActivityRecord struct {
	gorm.Model
	UserID     uint `gorm:"index"`
	CourseID   uint
	Kind       string // "lesson_completed"
	OccurredAt time.Time
}

type LoginHistory struct {
	gorm.Model
	UserID    uint `gorm:"index"`
	LoginTime time.Time
}
