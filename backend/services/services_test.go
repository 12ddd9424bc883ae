package services

import (
	"io"
	"log"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub/backend/models"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := utils.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewGormStore(db)
}

// seedCourse creates a published two-module course with two lessons each.
func seedCourse(t *testing.T, st store.Store) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:  "Go from scratch",
		Status: models.CourseStatusPublished,
		Level:  models.LevelBeginner,
		Content: models.CourseContent{Modules: []models.CourseModule{
			{ID: "m1", Title: "Basics", Lessons: []models.CourseLesson{
				{ID: "l1", Title: "Syntax"},
				{ID: "l2", Title: "Types"},
			}},
			{ID: "m2", Title: "Concurrency", Lessons: []models.CourseLesson{
				{ID: "l3", Title: "Goroutines"},
				{ID: "l4", Title: "Channels"},
			}},
		}},
	}
	if err := st.CreateCourse(course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func seedUser(t *testing.T, st store.Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@test.local", PasswordHash: "x"}
	if err := st.CreateUser(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func enroll(t *testing.T, st store.Store, userID, courseID uint) {
	t.Helper()
	now := st.Now()
	err := st.CreateEnrollment(&models.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		Status:         models.EnrollmentActive,
		EnrolledAt:     now,
		LastAccessedAt: now,
	})
	if err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}
