package services

import (
	"log"

	"learnhub/backend/analytics"
	"learnhub/backend/models"
	"learnhub/backend/store"
)

type GradeService struct {
	Store  store.Store
	Logger *log.Logger
}

func NewGradeService(st store.Store, logger *log.Logger) *GradeService {
	return &GradeService{Store: st, Logger: logger}
}

type GradeInput struct {
	StudentID    uint    `json:"student_id" validate:"required"`
	CourseID     uint    `json:"course_id" validate:"required"`
	AssignmentID *uint   `json:"assignment_id"`
	Type         string  `json:"type" validate:"required,oneof=assignment quiz exam participation"`
	Points       float64 `json:"points" validate:"gte=0"`
	MaxPoints    float64 `json:"max_points" validate:"gt=0"`
	Feedback     string  `json:"feedback"`
	Published    bool    `json:"published"`
}

// AddGrade derives percentage and letter at write time; grades are immutable
// afterwards apart from publish/feedback edits.
func (s *GradeService) AddGrade(gradedBy uint, in GradeInput) (Result, *models.Grade) {
	if _, err := s.Store.GetCourse(in.CourseID); err != nil {
		return fail("Course not found"), nil
	}
	student, err := s.Store.GetUser(in.StudentID)
	if err != nil {
		return fail("Student not found"), nil
	}
	if _, err := s.Store.GetEnrollment(student.ID, in.CourseID); err != nil {
		return fail("Student is not enrolled in this course"), nil
	}
	if in.AssignmentID != nil {
		if _, err := s.Store.GetAssignment(*in.AssignmentID); err != nil {
			return fail("Assignment not found"), nil
		}
	}

	pct := analytics.Percentage(in.Points, in.MaxPoints)
	grade := &models.Grade{
		StudentID:    in.StudentID,
		CourseID:     in.CourseID,
		AssignmentID: in.AssignmentID,
		Type:         in.Type,
		Points:       in.Points,
		MaxPoints:    in.MaxPoints,
		Percentage:   pct,
		LetterGrade:  analytics.LetterGrade(float64(pct)),
		Feedback:     in.Feedback,
		GradedAt:     s.Store.Now(),
		GradedBy:     gradedBy,
		Published:    in.Published,
	}
	if err := s.Store.CreateGrade(grade); err != nil {
		s.Logger.Printf("add grade %d/%d: %v", in.StudentID, in.CourseID, err)
		return fail("Could not save grade"), nil
	}
	return ok("Grade recorded"), grade
}

// studentGrades fetches with the fetch-failure policy the analytics layer
// expects: on error, log and reduce over the empty list.
func (s *GradeService) studentGrades(studentID uint) []models.Grade {
	grades, err := s.Store.ListGradesByStudent(studentID)
	if err != nil {
		s.Logger.Printf("grades for student %d: %v", studentID, err)
		return nil
	}
	return grades
}

func (s *GradeService) studentCourseGrades(studentID, courseID uint) []models.Grade {
	grades, err := s.Store.ListGradesByStudentCourse(studentID, courseID)
	if err != nil {
		s.Logger.Printf("grades for student %d course %d: %v", studentID, courseID, err)
		return nil
	}
	return grades
}

func (s *GradeService) MyGrades(studentID uint) []models.Grade {
	return s.studentGrades(studentID)
}

func (s *GradeService) CourseStats(studentID, courseID uint) analytics.GradeStats {
	return analytics.CourseStats(s.studentCourseGrades(studentID, courseID))
}

func (s *GradeService) OverallGPA(studentID uint) float64 {
	return analytics.OverallGPA(s.studentGrades(studentID))
}

func (s *GradeService) Distribution(studentID uint) analytics.Distribution {
	return analytics.GradeDistribution(s.studentGrades(studentID))
}

func (s *GradeService) Trend(studentID, courseID uint) string {
	return analytics.Trend(s.studentCourseGrades(studentID, courseID))
}
