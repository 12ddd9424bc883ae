package services

import (
	"log"

	"learnhub/backend/analytics"
	"learnhub/backend/content"
	"learnhub/backend/models"
	"learnhub/backend/store"
)

type CourseService struct {
	Store  store.Store
	Logger *log.Logger
	Grades *GradeService
}

func NewCourseService(st store.Store, logger *log.Logger, grades *GradeService) *CourseService {
	return &CourseService{Store: st, Logger: logger, Grades: grades}
}

type CourseInput struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

func (s *CourseService) Create(authorID uint, in CourseInput) (Result, *models.Course) {
	course := &models.Course{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Level:       in.Level,
		Status:      models.CourseStatusDraft,
		AuthorID:    authorID,
	}
	if course.Level == "" {
		course.Level = models.LevelBeginner
	}
	if err := s.Store.CreateCourse(course); err != nil {
		s.Logger.Printf("create course: %v", err)
		return fail("Could not create course"), nil
	}
	return ok("Course created"), course
}

func (s *CourseService) UpdateInfo(courseID uint, in CourseInput) (Result, *models.Course) {
	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		return fail("Course not found"), nil
	}
	course.Title = in.Title
	course.Description = in.Description
	course.Category = in.Category
	if in.Level != "" {
		course.Level = in.Level
	}
	if err := s.Store.SaveCourse(course); err != nil {
		s.Logger.Printf("update course %d: %v", courseID, err)
		return fail("Could not update course"), nil
	}
	return ok("Course updated"), course
}

// UpdateStatus moves a course between draft/under_review/published. The
// transitions are deliberately free-form; there is no state machine.
func (s *CourseService) UpdateStatus(courseID uint, status string) (Result, *models.Course) {
	switch status {
	case models.CourseStatusDraft, models.CourseStatusUnderReview, models.CourseStatusPublished:
	default:
		return fail("Unknown course status"), nil
	}
	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		return fail("Course not found"), nil
	}
	if status == models.CourseStatusPublished {
		if problems := content.Validate(course.Content); len(problems) > 0 {
			return fail("Course content is not valid for publishing"), nil
		}
	}
	course.Status = status
	if err := s.Store.SaveCourse(course); err != nil {
		s.Logger.Printf("update course status %d: %v", courseID, err)
		return fail("Could not update course"), nil
	}
	return ok("Course status updated"), course
}

// EditContent loads the course, applies one pure tree operation, and saves
// the result. On any failure the stored tree is untouched; the tree is only
// replaced wholesale on a confirmed save.
func (s *CourseService) EditContent(courseID uint, edit func(models.CourseContent) models.CourseContent) (Result, *models.Course) {
	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		return fail("Course not found"), nil
	}
	course.Content = edit(course.Content)
	if err := s.Store.SaveCourse(course); err != nil {
		s.Logger.Printf("edit course content %d: %v", courseID, err)
		return fail("Could not save course content"), nil
	}
	return ok("Course content updated"), course
}

// SubmitModuleQuiz scores a module-level quiz and feeds the result into the
// grade pipeline as a quiz grade: one point per question whose chosen option
// is marked correct.
func (s *CourseService) SubmitModuleQuiz(userID, courseID uint, moduleID string, answers map[string]string) (Result, *models.Grade) {
	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		return fail("Course not found"), nil
	}
	module := course.Content.FindModule(moduleID)
	if module == nil {
		return fail("Module not found in course"), nil
	}
	if len(module.Questions) == 0 {
		return fail("Module has no quiz"), nil
	}
	if _, err := s.Store.GetEnrollment(userID, courseID); err != nil {
		return fail("Not enrolled in this course"), nil
	}

	correct := 0
	for _, q := range module.Questions {
		chosen, answered := answers[q.ID]
		if !answered {
			continue
		}
		for _, o := range q.Options {
			if o.ID == chosen && o.IsCorrect {
				correct++
				break
			}
		}
	}

	points := float64(correct)
	maxPoints := float64(len(module.Questions))
	pct := analytics.Percentage(points, maxPoints)
	grade := &models.Grade{
		StudentID:   userID,
		CourseID:    courseID,
		Type:        models.GradeQuiz,
		Points:      points,
		MaxPoints:   maxPoints,
		Percentage:  pct,
		LetterGrade: analytics.LetterGrade(float64(pct)),
		GradedAt:    s.Store.Now(),
		Published:   true,
	}
	if err := s.Store.CreateGrade(grade); err != nil {
		s.Logger.Printf("quiz grade %d/%d: %v", userID, courseID, err)
		return fail("Could not record quiz result"), nil
	}
	return ok("Quiz submitted"), grade
}
