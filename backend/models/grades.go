package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GradeAssignment    = "assignment"
	GradeQuiz          = "quiz"
	GradeExam          = "exam"
	GradeParticipation = "participation"
)

type Grade struct {
	gorm.Model
	StudentID    uint `gorm:"index"`
	CourseID     uint `gorm:"index"`
	AssignmentID *uint
	Type         string
	Points       float64
	MaxPoints    float64
	Percentage   int    // round(points/maxPoints*100), set on create
	LetterGrade  string // derived from Percentage, set on create
	Feedback     string
	GradedAt     time.Time
	GradedBy     uint
	Published    bool
}

const (
	AssignmentOverdue  = "overdue"
	AssignmentDueToday = "due_today"
	AssignmentDueSoon  = "due_soon"
	AssignmentUpcoming = "upcoming"
)

// Assignment due status is computed against the clock at read time, never
// stored.
type Assignment struct {
	gorm.Model
	CourseID  uint `gorm:"index"`
	Title     string
	Type      string
	DueAt     time.Time
	MaxPoints float64
	Published bool
}
