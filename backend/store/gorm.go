package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/backend/models"
)

// GormStore implements Store over a gorm-managed database.
type GormStore struct {
	db  *gorm.DB
	bus *bus
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, bus: newBus()}
}

func wrapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// users

func (s *GormStore) GetUser(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(u *models.User) error {
	if err := s.db.Create(u).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Users, Action: ActionCreated, UserID: u.ID, ID: u.ID})
	return nil
}

func (s *GormStore) SaveUser(u *models.User) error {
	if err := s.db.Save(u).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Users, Action: ActionUpdated, UserID: u.ID, ID: u.ID})
	return nil
}

func (s *GormStore) RecordLogin(userID uint) error {
	return s.db.Create(&models.LoginHistory{UserID: userID, LoginTime: s.Now()}).Error
}

// courses

func (s *GormStore) GetCourse(id uint) (*models.Course, error) {
	var c models.Course
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &c, nil
}

func (s *GormStore) SearchCourses(f CourseFilter) ([]models.Course, error) {
	q := s.db.Model(&models.Course{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	if f.Title != "" {
		q = q.Where("title LIKE ?", "%"+f.Title+"%")
	}
	var courses []models.Course
	if err := q.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *GormStore) CreateCourse(c *models.Course) error {
	if err := s.db.Create(c).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Courses, Action: ActionCreated, CourseID: c.ID, ID: c.ID})
	return nil
}

func (s *GormStore) SaveCourse(c *models.Course) error {
	if err := s.db.Save(c).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Courses, Action: ActionUpdated, CourseID: c.ID, ID: c.ID})
	return nil
}

// enrollments

func (s *GormStore) GetEnrollment(userID, courseID uint) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &e, nil
}

func (s *GormStore) ListEnrollmentsByUser(userID uint) ([]models.Enrollment, error) {
	var list []models.Enrollment
	if err := s.db.Where("user_id = ?", userID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) ListActiveEnrollmentsByCourse(courseID uint) ([]models.Enrollment, error) {
	var list []models.Enrollment
	err := s.db.Where("course_id = ? AND status = ?", courseID, models.EnrollmentActive).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CountActiveEnrollments(courseID uint) (int64, error) {
	var n int64
	err := s.db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status IN ?", courseID, []string{models.EnrollmentActive, models.EnrollmentCompleted}).
		Count(&n).Error
	return n, err
}

func (s *GormStore) CreateEnrollment(e *models.Enrollment) error {
	if err := s.db.Create(e).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Enrollments, Action: ActionCreated, UserID: e.UserID, CourseID: e.CourseID, ID: e.ID})
	return nil
}

func (s *GormStore) SaveEnrollment(e *models.Enrollment) error {
	if err := s.db.Save(e).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Enrollments, Action: ActionUpdated, UserID: e.UserID, CourseID: e.CourseID, ID: e.ID})
	return nil
}

// lesson / module progress

func (s *GormStore) GetLessonProgress(userID, courseID uint, moduleID, lessonID string) (*models.LessonProgress, error) {
	var lp models.LessonProgress
	err := s.db.Where("user_id = ? AND course_id = ? AND module_id = ? AND lesson_id = ?",
		userID, courseID, moduleID, lessonID).First(&lp).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &lp, nil
}

func (s *GormStore) ListLessonProgress(userID, courseID uint) ([]models.LessonProgress, error) {
	var list []models.LessonProgress
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) UpsertLessonProgress(lp *models.LessonProgress) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "module_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "completed_at", "time_spent_minutes", "updated_at",
		}),
	}).Create(lp).Error
	if err != nil {
		return err
	}
	s.bus.publish(Event{Collection: LessonProgress, Action: ActionUpdated, UserID: lp.UserID, CourseID: lp.CourseID, ID: lp.ID})
	return nil
}

func (s *GormStore) ListModuleProgress(userID, courseID uint) ([]models.ModuleProgress, error) {
	var list []models.ModuleProgress
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) UpsertModuleProgress(mp *models.ModuleProgress) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"lessons_completed", "total_lessons", "completed", "updated_at",
		}),
	}).Create(mp).Error
	if err != nil {
		return err
	}
	s.bus.publish(Event{Collection: ModuleProgress, Action: ActionUpdated, UserID: mp.UserID, CourseID: mp.CourseID, ID: mp.ID})
	return nil
}

// grades and assignments

func (s *GormStore) ListGradesByStudent(studentID uint) ([]models.Grade, error) {
	var list []models.Grade
	if err := s.db.Where("student_id = ?", studentID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) ListGradesByStudentCourse(studentID, courseID uint) ([]models.Grade, error) {
	var list []models.Grade
	err := s.db.Where("student_id = ? AND course_id = ?", studentID, courseID).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) ListGradesByCourse(courseID uint) ([]models.Grade, error) {
	var list []models.Grade
	if err := s.db.Where("course_id = ?", courseID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreateGrade(g *models.Grade) error {
	if err := s.db.Create(g).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Grades, Action: ActionCreated, UserID: g.StudentID, CourseID: g.CourseID, ID: g.ID})
	return nil
}

func (s *GormStore) GetAssignment(id uint) (*models.Assignment, error) {
	var a models.Assignment
	if err := s.db.First(&a, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &a, nil
}

func (s *GormStore) ListAssignmentsByCourse(courseID uint) ([]models.Assignment, error) {
	var list []models.Assignment
	err := s.db.Where("course_id = ?", courseID).Order("due_at ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) ListAssignmentsDueBetween(from, to time.Time) ([]models.Assignment, error) {
	var list []models.Assignment
	err := s.db.Where("published = ? AND due_at BETWEEN ? AND ?", true, from, to).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreateAssignment(a *models.Assignment) error {
	if err := s.db.Create(a).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Assignments, Action: ActionCreated, CourseID: a.CourseID, ID: a.ID})
	return nil
}

// notifications

func (s *GormStore) ListNotifications(userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreateNotification(n *models.Notification) error {
	if err := s.db.Create(n).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Notifications, Action: ActionCreated, UserID: n.UserID, ID: n.ID})
	return nil
}

func (s *GormStore) MarkNotificationRead(userID, id uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.bus.publish(Event{Collection: Notifications, Action: ActionUpdated, UserID: userID, ID: id})
	return nil
}

func (s *GormStore) HasAssignmentReminder(userID, assignmentID uint) (bool, error) {
	var n int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND assignment_id = ? AND type = ?", userID, assignmentID, models.NotificationDueSoon).
		Count(&n).Error
	return n > 0, err
}

// activity

func (s *GormStore) ListActivity(userID uint) ([]models.ActivityRecord, error) {
	var list []models.ActivityRecord
	err := s.db.Where("user_id = ?", userID).Order("occurred_at ASC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) AppendActivity(a *models.ActivityRecord) error {
	if err := s.db.Create(a).Error; err != nil {
		return err
	}
	s.bus.publish(Event{Collection: Activity, Action: ActionCreated, UserID: a.UserID, CourseID: a.CourseID, ID: a.ID})
	return nil
}

func (s *GormStore) Watch(collection string) (<-chan Event, func()) {
	return s.bus.subscribe(collection)
}

func (s *GormStore) Now() time.Time {
	return time.Now().UTC()
}
