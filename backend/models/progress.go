package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type Enrollment struct {
	gorm.Model
	UserID         uint `gorm:"uniqueIndex:idx_enrollment_user_course"`
	CourseID       uint `gorm:"uniqueIndex:idx_enrollment_user_course"`
	Status         string
	Progress       int // 0-100
	Sessions       int
	EnrolledAt     time.Time
	LastAccessedAt time.Time
	CompletedAt    *time.Time
}

// LessonProgress is the atomic completion record; upserted on completion,
// never deleted.
type LessonProgress struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex:idx_lesson_progress_key"`
	CourseID         uint   `gorm:"uniqueIndex:idx_lesson_progress_key"`
	ModuleID         string `gorm:"uniqueIndex:idx_lesson_progress_key"`
	LessonID         string `gorm:"uniqueIndex:idx_lesson_progress_key"`
	Completed        bool
	CompletedAt      *time.Time
	TimeSpentMinutes float64
}

// ModuleProgress is a materialized view, fully recomputed on every lesson
// completion for its module. It is never a source of truth.
type ModuleProgress struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex:idx_module_progress_key"`
	CourseID         uint   `gorm:"uniqueIndex:idx_module_progress_key"`
	ModuleID         string `gorm:"uniqueIndex:idx_module_progress_key"`
	LessonsCompleted int
	TotalLessons     int
	Completed        bool
}
