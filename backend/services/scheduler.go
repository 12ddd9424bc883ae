package services

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"learnhub/backend/models"
	"learnhub/backend/store"
)

// ReminderScheduler runs the daily assignment-reminder job: every published
// assignment due within the next 48 hours produces one due_soon notification
// per actively-enrolled student who does not have one yet.
type ReminderScheduler struct {
	Store  store.Store
	Logger *log.Logger
	cron   *cron.Cron
}

func NewReminderScheduler(st store.Store, logger *log.Logger) *ReminderScheduler {
	return &ReminderScheduler{Store: st, Logger: logger}
}

func (s *ReminderScheduler) Start(spec string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.Logger.Printf("reminder scheduler started (%s)", spec)
	return nil
}

func (s *ReminderScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce is a single scan; exported so it can be triggered directly in
// tests and from an admin endpoint.
func (s *ReminderScheduler) RunOnce() {
	now := s.Store.Now()
	assignments, err := s.Store.ListAssignmentsDueBetween(now, now.Add(48*time.Hour))
	if err != nil {
		s.Logger.Printf("reminder scan: %v", err)
		return
	}

	for _, a := range assignments {
		enrollments, err := s.Store.ListActiveEnrollmentsByCourse(a.CourseID)
		if err != nil {
			s.Logger.Printf("reminder scan: enrollments for course %d: %v", a.CourseID, err)
			continue
		}
		for _, e := range enrollments {
			sent, err := s.Store.HasAssignmentReminder(e.UserID, a.ID)
			if err != nil || sent {
				continue
			}
			assignmentID := a.ID
			err = s.Store.CreateNotification(&models.Notification{
				UserID:       e.UserID,
				Type:         models.NotificationDueSoon,
				Title:        "Assignment due soon",
				Body:         fmt.Sprintf("%q is due %s.", a.Title, a.DueAt.Format("Jan 2 15:04")),
				AssignmentID: &assignmentID,
			})
			if err != nil {
				s.Logger.Printf("reminder for user %d assignment %d: %v", e.UserID, a.ID, err)
			}
		}
	}
}
