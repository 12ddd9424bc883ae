package models

import "gorm.io/gorm"

const (
	NotificationDueSoon     = "due_soon"
	NotificationGradePosted = "grade_posted"
)

type Notification struct {
	gorm.Model
	UserID       uint `gorm:"index"`
	Type         string
	Title        string
	Body         string
	AssignmentID *uint
	Read         bool
}
