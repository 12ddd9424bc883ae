package services

import (
	"fmt"
	"log"
	"sync"

	"learnhub/backend/models"
	"learnhub/backend/store"
)

// NotificationService writes user notifications. It also runs a watcher on
// the grades collection so that publishing a grade fans out a notification
// without the grading path knowing about notifications at all.
type NotificationService struct {
	Store  store.Store
	Logger *log.Logger

	stopOnce    sync.Once
	unsubscribe func()
	done        chan struct{}
}

func NewNotificationService(st store.Store, logger *log.Logger) *NotificationService {
	return &NotificationService{Store: st, Logger: logger}
}

// StartGradeWatcher subscribes to grade change events. Stop must be called
// on shutdown; the subscription teardown runs exactly once.
func (s *NotificationService) StartGradeWatcher() {
	events, unsubscribe := s.Store.Watch(store.Grades)
	s.unsubscribe = unsubscribe
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for ev := range events {
			if ev.Action != store.ActionCreated {
				continue
			}
			s.notifyGradePosted(ev.UserID, ev.CourseID)
		}
	}()
}

func (s *NotificationService) Stop() {
	s.stopOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
			<-s.done
		}
	})
}

func (s *NotificationService) notifyGradePosted(studentID, courseID uint) {
	course, err := s.Store.GetCourse(courseID)
	title := "A new grade was posted"
	body := "You have a new grade."
	if err == nil {
		body = fmt.Sprintf("You have a new grade in %s.", course.Title)
	}

	err = s.Store.CreateNotification(&models.Notification{
		UserID: studentID,
		Type:   models.NotificationGradePosted,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		s.Logger.Printf("grade notification for user %d: %v", studentID, err)
	}
}

func (s *NotificationService) List(userID uint) []models.Notification {
	list, err := s.Store.ListNotifications(userID)
	if err != nil {
		s.Logger.Printf("notifications for user %d: %v", userID, err)
		return nil
	}
	return list
}

func (s *NotificationService) MarkRead(userID, id uint) Result {
	if err := s.Store.MarkNotificationRead(userID, id); err != nil {
		return fail("Notification not found")
	}
	return ok("Marked as read")
}
