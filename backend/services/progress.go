package services

import (
	"fmt"
	"log"
	"math"
	"sync"

	"learnhub/backend/models"
	"learnhub/backend/store"
)

// Result is what every mutating service entry point hands back to the
// handler layer: a success flag and a human-readable message, never a raw
// error.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(message string) Result   { return Result{Success: true, Message: message} }
func fail(message string) Result { return Result{Success: false, Message: message} }

// ProgressService is the progress aggregator. Rollups are always full
// recomputations from the set of distinct completed lessons, never
// incremental counters: recomputation is idempotent and self-heals under
// duplicate or out-of-order completion events.
type ProgressService struct {
	Store  store.Store
	Logger *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressService(st store.Store, logger *log.Logger) *ProgressService {
	return &ProgressService{Store: st, Logger: logger, locks: make(map[string]*sync.Mutex)}
}

// userCourseLock serializes the read-compute-write recompute cycle per
// (user, course). Two completion events for the same course arriving
// concurrently would otherwise interleave their recomputes and the last
// writer could persist a view missing the other's completion.
func (s *ProgressService) userCourseLock(userID, courseID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d/%d", userID, courseID)
	l, okl := s.locks[key]
	if !okl {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// MarkLessonComplete upserts the lesson completion record and re-derives the
// module and course aggregates. Idempotent: an already-completed lesson is a
// no-op success.
func (s *ProgressService) MarkLessonComplete(userID, courseID uint, moduleID, lessonID string, minutesSpent float64) Result {
	lock := s.userCourseLock(userID, courseID)
	lock.Lock()
	defer lock.Unlock()

	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		s.Logger.Printf("mark lesson complete: course %d: %v", courseID, err)
		return fail("Course not found")
	}
	module := course.Content.FindModule(moduleID)
	if module == nil {
		return fail("Module not found in course")
	}
	if !moduleHasLesson(*module, lessonID) {
		return fail("Lesson not found in module")
	}

	enrollment, err := s.Store.GetEnrollment(userID, courseID)
	if err != nil {
		s.Logger.Printf("mark lesson complete: enrollment %d/%d: %v", userID, courseID, err)
		return fail("Not enrolled in this course")
	}

	now := s.Store.Now()

	existing, err := s.Store.GetLessonProgress(userID, courseID, moduleID, lessonID)
	if err == nil && existing.Completed {
		return ok("Lesson already completed")
	}

	lp := &models.LessonProgress{
		UserID:           userID,
		CourseID:         courseID,
		ModuleID:         moduleID,
		LessonID:         lessonID,
		Completed:        true,
		CompletedAt:      &now,
		TimeSpentMinutes: minutesSpent,
	}
	if existing != nil {
		lp.ID = existing.ID
		lp.TimeSpentMinutes += existing.TimeSpentMinutes
	}
	if err := s.Store.UpsertLessonProgress(lp); err != nil {
		s.Logger.Printf("mark lesson complete: upsert: %v", err)
		return fail("Could not save lesson progress")
	}

	if err := s.Store.AppendActivity(&models.ActivityRecord{
		UserID:     userID,
		CourseID:   courseID,
		Kind:       "lesson_completed",
		OccurredAt: now,
	}); err != nil {
		s.Logger.Printf("mark lesson complete: activity: %v", err)
	}

	enrollment.Sessions++

	if err := s.recomputeModuleProgress(userID, course, moduleID); err != nil {
		s.Logger.Printf("recompute module progress %d/%d/%s: %v", userID, courseID, moduleID, err)
		return fail("Could not update module progress")
	}
	if err := s.recomputeCourseProgress(course, enrollment); err != nil {
		s.Logger.Printf("recompute course progress %d/%d: %v", userID, courseID, err)
		return fail("Could not update course progress")
	}
	return ok("Lesson completed")
}

func moduleHasLesson(m models.CourseModule, lessonID string) bool {
	for _, l := range m.Lessons {
		if l.ID == lessonID {
			return true
		}
	}
	return false
}

// recomputeModuleProgress re-derives one module's rollup. The authoritative
// lesson count lives on the course document, not on progress records.
func (s *ProgressService) recomputeModuleProgress(userID uint, course *models.Course, moduleID string) error {
	module := course.Content.FindModule(moduleID)
	if module == nil {
		return fmt.Errorf("module %s not in course %d", moduleID, course.ID)
	}
	totalLessons := len(module.Lessons)

	all, err := s.Store.ListLessonProgress(userID, course.ID)
	if err != nil {
		return err
	}
	completed := 0
	for _, lp := range all {
		if lp.ModuleID == moduleID && lp.Completed {
			completed++
		}
	}

	return s.Store.UpsertModuleProgress(&models.ModuleProgress{
		UserID:           userID,
		CourseID:         course.ID,
		ModuleID:         moduleID,
		LessonsCompleted: completed,
		TotalLessons:     totalLessons,
		Completed:        totalLessons > 0 && completed >= totalLessons,
	})
}

// recomputeCourseProgress re-derives the enrollment's overall percentage and
// flips the enrollment to completed exactly when it reaches 100.
func (s *ProgressService) recomputeCourseProgress(course *models.Course, enrollment *models.Enrollment) error {
	totalLessons := course.Content.TotalLessons()

	all, err := s.Store.ListLessonProgress(enrollment.UserID, course.ID)
	if err != nil {
		return err
	}
	completed := 0
	for _, lp := range all {
		if lp.Completed {
			completed++
		}
	}

	overall := 0
	if totalLessons > 0 {
		overall = int(math.Round(float64(completed) / float64(totalLessons) * 100))
	}

	now := s.Store.Now()
	enrollment.Progress = overall
	enrollment.LastAccessedAt = now
	if overall >= 100 && enrollment.Status != models.EnrollmentCompleted {
		enrollment.Status = models.EnrollmentCompleted
		enrollment.CompletedAt = &now
	}
	return s.Store.SaveEnrollment(enrollment)
}

// CourseProgress is the read accessor for one enrollment's derived state.
type CourseProgress struct {
	Enrollment models.Enrollment       `json:"enrollment"`
	Modules    []models.ModuleProgress `json:"modules"`
	Lessons    []models.LessonProgress `json:"lessons"`
}

func (s *ProgressService) CourseProgress(userID, courseID uint) (*CourseProgress, error) {
	enrollment, err := s.Store.GetEnrollment(userID, courseID)
	if err != nil {
		return nil, err
	}
	modules, err := s.Store.ListModuleProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.Store.ListLessonProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	return &CourseProgress{Enrollment: *enrollment, Modules: modules, Lessons: lessons}, nil
}
