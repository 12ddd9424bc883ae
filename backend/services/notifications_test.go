package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
)

func waitForNotifications(t *testing.T, svc *NotificationService, userID uint, want int) []models.Notification {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		list := svc.List(userID)
		if len(list) >= want {
			return list
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d notifications for user %d", want, userID)
	return nil
}

func TestGradeWatcherNotifies(t *testing.T) {
	st := newTestStore(t)
	svc := NewNotificationService(st, testLogger())
	grades := NewGradeService(st, testLogger())
	course := seedCourse(t, st)
	ada := seedUser(t, st, "ada")
	enroll(t, st, ada.ID, course.ID)

	svc.StartGradeWatcher()
	defer svc.Stop()

	res, _ := grades.AddGrade(1, GradeInput{
		StudentID: ada.ID, CourseID: course.ID,
		Type: models.GradeQuiz, Points: 9, MaxPoints: 10,
	})
	require.True(t, res.Success)

	list := waitForNotifications(t, svc, ada.ID, 1)
	assert.Equal(t, models.NotificationGradePosted, list[0].Type)
	assert.Contains(t, list[0].Body, course.Title)
	assert.False(t, list[0].Read)
}

func TestMarkRead(t *testing.T) {
	st := newTestStore(t)
	svc := NewNotificationService(st, testLogger())
	ada := seedUser(t, st, "ada")

	require.NoError(t, st.CreateNotification(&models.Notification{
		UserID: ada.ID, Type: models.NotificationGradePosted, Title: "t", Body: "b",
	}))
	list := svc.List(ada.ID)
	require.Len(t, list, 1)

	assert.True(t, svc.MarkRead(ada.ID, list[0].ID).Success)
	assert.True(t, svc.List(ada.ID)[0].Read)

	// someone else's notification stays untouchable
	assert.False(t, svc.MarkRead(9999, list[0].ID).Success)
}

func TestReminderScheduler(t *testing.T) {
	st := newTestStore(t)
	scheduler := NewReminderScheduler(st, testLogger())
	course := seedCourse(t, st)
	ada := seedUser(t, st, "ada")
	bob := seedUser(t, st, "bob")
	enroll(t, st, ada.ID, course.ID)
	enroll(t, st, bob.ID, course.ID)

	due := &models.Assignment{
		CourseID: course.ID, Title: "Essay", Type: models.GradeAssignment,
		DueAt: st.Now().Add(24 * time.Hour), MaxPoints: 100, Published: true,
	}
	require.NoError(t, st.CreateAssignment(due))

	farOut := &models.Assignment{
		CourseID: course.ID, Title: "Final", Type: models.GradeExam,
		DueAt: st.Now().AddDate(0, 1, 0), MaxPoints: 100, Published: true,
	}
	require.NoError(t, st.CreateAssignment(farOut))

	scheduler.RunOnce()

	adaList, err := st.ListNotifications(ada.ID)
	require.NoError(t, err)
	require.Len(t, adaList, 1)
	assert.Equal(t, models.NotificationDueSoon, adaList[0].Type)
	assert.Contains(t, adaList[0].Body, "Essay")

	bobList, err := st.ListNotifications(bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobList, 1)

	// a second scan must not duplicate reminders
	scheduler.RunOnce()
	adaList, err = st.ListNotifications(ada.ID)
	require.NoError(t, err)
	assert.Len(t, adaList, 1)
}
