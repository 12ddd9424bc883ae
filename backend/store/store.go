package store

import (
	"errors"
	"time"

	"learnhub/backend/models"
)

// ErrNotFound is returned by Get* methods when no row matches.
var ErrNotFound = errors.New("record not found")

// Collection names used for change events and watches.
const (
	Courses        = "courses"
	Users          = "users"
	Enrollments    = "enrollments"
	LessonProgress = "lesson_progress"
	ModuleProgress = "module_progress"
	Grades         = "grades"
	Assignments    = "assignments"
	Notifications  = "notifications"
	Activity       = "activity"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Event describes a committed write. Events carry keys only, never document
// bodies; watchers re-read what they need.
type Event struct {
	Collection string
	Action     string
	UserID     uint
	CourseID   uint
	ID         uint
}

type CourseFilter struct {
	Status   string
	Category string
	Level    string
	Title    string // substring match
}

// Store is the data-access facade. Everything above it (services, analytics,
// controllers) is backend-agnostic; the aggregation core itself never touches
// this interface, it only sees already-fetched slices.
type Store interface {
	// users
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(u *models.User) error
	SaveUser(u *models.User) error
	RecordLogin(userID uint) error

	// courses
	GetCourse(id uint) (*models.Course, error)
	SearchCourses(f CourseFilter) ([]models.Course, error)
	CreateCourse(c *models.Course) error
	SaveCourse(c *models.Course) error

	// enrollments
	GetEnrollment(userID, courseID uint) (*models.Enrollment, error)
	ListEnrollmentsByUser(userID uint) ([]models.Enrollment, error)
	ListActiveEnrollmentsByCourse(courseID uint) ([]models.Enrollment, error)
	CountActiveEnrollments(courseID uint) (int64, error)
	CreateEnrollment(e *models.Enrollment) error
	SaveEnrollment(e *models.Enrollment) error

	// lesson / module progress
	GetLessonProgress(userID, courseID uint, moduleID, lessonID string) (*models.LessonProgress, error)
	ListLessonProgress(userID, courseID uint) ([]models.LessonProgress, error)
	UpsertLessonProgress(lp *models.LessonProgress) error
	ListModuleProgress(userID, courseID uint) ([]models.ModuleProgress, error)
	UpsertModuleProgress(mp *models.ModuleProgress) error

	// grades and assignments
	ListGradesByStudent(studentID uint) ([]models.Grade, error)
	ListGradesByStudentCourse(studentID, courseID uint) ([]models.Grade, error)
	ListGradesByCourse(courseID uint) ([]models.Grade, error)
	CreateGrade(g *models.Grade) error
	GetAssignment(id uint) (*models.Assignment, error)
	ListAssignmentsByCourse(courseID uint) ([]models.Assignment, error)
	ListAssignmentsDueBetween(from, to time.Time) ([]models.Assignment, error)
	CreateAssignment(a *models.Assignment) error

	// notifications
	ListNotifications(userID uint) ([]models.Notification, error)
	CreateNotification(n *models.Notification) error
	MarkNotificationRead(userID, id uint) error
	HasAssignmentReminder(userID, assignmentID uint) (bool, error)

	// activity
	ListActivity(userID uint) ([]models.ActivityRecord, error)
	AppendActivity(a *models.ActivityRecord) error

	// Watch returns a channel of change events for one collection and a
	// teardown func. The teardown must be invoked exactly once when the
	// consumer is done; after that the channel is closed.
	Watch(collection string) (<-chan Event, func())

	// Now is the write-time marker used for ordering timestamps.
	Now() time.Time
}
