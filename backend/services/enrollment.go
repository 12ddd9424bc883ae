package services

import (
	"errors"
	"log"

	"learnhub/backend/models"
	"learnhub/backend/store"
)

type EnrollmentService struct {
	Store  store.Store
	Logger *log.Logger
}

func NewEnrollmentService(st store.Store, logger *log.Logger) *EnrollmentService {
	return &EnrollmentService{Store: st, Logger: logger}
}

// Enroll creates an active enrollment after a duplicate pre-check. The
// course's student count is recounted from enrollments rather than blindly
// incremented, so enroll and drop stay consistent.
func (s *EnrollmentService) Enroll(userID, courseID uint) Result {
	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		return fail("Course not found")
	}
	if course.Status != models.CourseStatusPublished {
		return fail("Course is not open for enrollment")
	}

	if _, err := s.Store.GetEnrollment(userID, courseID); err == nil {
		return fail("Already enrolled in this course")
	} else if !errors.Is(err, store.ErrNotFound) {
		s.Logger.Printf("enroll %d/%d: pre-check: %v", userID, courseID, err)
		return fail("Could not check enrollment")
	}

	now := s.Store.Now()
	enrollment := &models.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		Status:         models.EnrollmentActive,
		EnrolledAt:     now,
		LastAccessedAt: now,
	}
	if err := s.Store.CreateEnrollment(enrollment); err != nil {
		s.Logger.Printf("enroll %d/%d: create: %v", userID, courseID, err)
		return fail("Could not enroll")
	}

	s.refreshStudentCount(course)
	return ok("Enrolled")
}

// Drop marks the enrollment dropped. Progress records are kept; only the
// enrollment status changes.
func (s *EnrollmentService) Drop(userID, courseID uint) Result {
	enrollment, err := s.Store.GetEnrollment(userID, courseID)
	if err != nil {
		return fail("Not enrolled in this course")
	}
	if enrollment.Status == models.EnrollmentDropped {
		return ok("Already dropped")
	}

	enrollment.Status = models.EnrollmentDropped
	if err := s.Store.SaveEnrollment(enrollment); err != nil {
		s.Logger.Printf("drop %d/%d: %v", userID, courseID, err)
		return fail("Could not drop course")
	}

	if course, err := s.Store.GetCourse(courseID); err == nil {
		s.refreshStudentCount(course)
	}
	return ok("Dropped")
}

func (s *EnrollmentService) refreshStudentCount(course *models.Course) {
	n, err := s.Store.CountActiveEnrollments(course.ID)
	if err != nil {
		s.Logger.Printf("student count for course %d: %v", course.ID, err)
		return
	}
	course.StudentCount = int(n)
	if err := s.Store.SaveCourse(course); err != nil {
		s.Logger.Printf("student count for course %d: save: %v", course.ID, err)
	}
}
