package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/content"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

type CoursesController struct {
	Store       store.Store
	Cfg         *config.Config
	Courses     *services.CourseService
	Enrollments *services.EnrollmentService
}

func NewCoursesController(st store.Store, cfg *config.Config, courses *services.CourseService, enrollments *services.EnrollmentService) *CoursesController {
	return &CoursesController{Store: st, Cfg: cfg, Courses: courses, Enrollments: enrollments}
}

func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func serviceResult(c *fiber.Ctx, res services.Result, data interface{}) error {
	if !res.Success {
		return utils.BadRequest(c, res.Message)
	}
	return utils.SuccessMessage(c, res.Message, data)
}

func (cc *CoursesController) GetMyCourses(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	enrollments, err := cc.Store.ListEnrollmentsByUser(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load courses")
	}

	result := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		course, err := cc.Store.GetCourse(e.CourseID)
		if err != nil {
			continue
		}
		result = append(result, fiber.Map{
			"id":            course.ID,
			"title":         course.Title,
			"category":      course.Category,
			"level":         course.Level,
			"status":        e.Status,
			"progress":      e.Progress,
			"total_lessons": course.Content.TotalLessons(),
			"last_accessed": e.LastAccessedAt,
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *CoursesController) GetAvailableCourses(c *fiber.Ctx) error {
	courses, err := cc.Store.SearchCourses(store.CourseFilter{
		Status:   models.CourseStatusPublished,
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Title:    c.Query("q"),
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not search courses")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":            course.ID,
			"title":         course.Title,
			"description":   course.Description,
			"category":      course.Category,
			"level":         course.Level,
			"student_count": course.StudentCount,
			"total_lessons": course.Content.TotalLessons(),
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, err := cc.Store.GetCourse(courseID)
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	return serviceResult(c, cc.Enrollments.Enroll(middleware.UserID(c), courseID), nil)
}

func (cc *CoursesController) Drop(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	return serviceResult(c, cc.Enrollments.Drop(middleware.UserID(c), courseID), nil)
}

type QuizSubmission struct {
	Answers map[string]string `json:"answers" validate:"required"` // questionID -> optionID
}

func (cc *CoursesController) SubmitModuleQuiz(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	var in QuizSubmission
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	res, grade := cc.Courses.SubmitModuleQuiz(middleware.UserID(c), courseID, c.Params("moduleId"), in.Answers)
	return serviceResult(c, res, grade)
}

// authoring

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var in services.CourseInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	res, course := cc.Courses.Create(middleware.UserID(c), in)
	return serviceResult(c, res, course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	var in services.CourseInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	res, course := cc.Courses.UpdateInfo(courseID, in)
	return serviceResult(c, res, course)
}

func (cc *CoursesController) UpdateCourseStatus(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	res, course := cc.Courses.UpdateStatus(courseID, in.Status)
	return serviceResult(c, res, course)
}

// content tree edits; each endpoint applies one immutable tree operation
// and persists the result wholesale on success

type titleInput struct {
	Title string `json:"title" validate:"required"`
}

func (cc *CoursesController) editContent(c *fiber.Ctx, edit func(models.CourseContent) models.CourseContent) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	res, course := cc.Courses.EditContent(courseID, edit)
	if !res.Success {
		return utils.BadRequest(c, res.Message)
	}
	return utils.SuccessMessage(c, res.Message, course.Content)
}

func (cc *CoursesController) AddModule(c *fiber.Ctx) error {
	var in titleInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.AddModule(t, models.CourseModule{Title: in.Title})
	})
}

func (cc *CoursesController) RenameModule(c *fiber.Ctx) error {
	var in titleInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	moduleID := c.Params("moduleId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.RenameModule(t, moduleID, in.Title)
	})
}

func (cc *CoursesController) RemoveModule(c *fiber.Ctx) error {
	moduleID := c.Params("moduleId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.RemoveModule(t, moduleID)
	})
}

func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	var in titleInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	moduleID := c.Params("moduleId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.AddLesson(t, moduleID, models.CourseLesson{Title: in.Title})
	})
}

func (cc *CoursesController) RenameLesson(c *fiber.Ctx) error {
	var in titleInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	moduleID, lessonID := c.Params("moduleId"), c.Params("lessonId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.RenameLesson(t, moduleID, lessonID, in.Title)
	})
}

func (cc *CoursesController) RemoveLesson(c *fiber.Ctx) error {
	moduleID, lessonID := c.Params("moduleId"), c.Params("lessonId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.RemoveLesson(t, moduleID, lessonID)
	})
}

func (cc *CoursesController) AddBlock(c *fiber.Ctx) error {
	var in models.ContentBlock
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	moduleID, lessonID := c.Params("moduleId"), c.Params("lessonId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.AddBlock(t, moduleID, lessonID, in)
	})
}

func (cc *CoursesController) UpdateBlock(c *fiber.Ctx) error {
	var in models.ContentBlock
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	in.ID = c.Params("blockId")
	moduleID, lessonID := c.Params("moduleId"), c.Params("lessonId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.UpdateBlock(t, moduleID, lessonID, in)
	})
}

func (cc *CoursesController) RemoveBlock(c *fiber.Ctx) error {
	moduleID, lessonID, blockID := c.Params("moduleId"), c.Params("lessonId"), c.Params("blockId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.RemoveBlock(t, moduleID, lessonID, blockID)
	})
}

func (cc *CoursesController) AddModuleQuestion(c *fiber.Ctx) error {
	var in models.QuizQuestion
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	for i := range in.Options {
		if in.Options[i].ID == "" {
			in.Options[i].ID = content.NewID()
		}
	}
	moduleID := c.Params("moduleId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.AddModuleQuestion(t, moduleID, in)
	})
}

func (cc *CoursesController) UpdateModuleQuestion(c *fiber.Ctx) error {
	var in models.QuizQuestion
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	in.ID = c.Params("questionId")
	moduleID := c.Params("moduleId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.UpdateModuleQuestion(t, moduleID, in)
	})
}

func (cc *CoursesController) RemoveModuleQuestion(c *fiber.Ctx) error {
	moduleID, questionID := c.Params("moduleId"), c.Params("questionId")
	return cc.editContent(c, func(t models.CourseContent) models.CourseContent {
		return content.RemoveModuleQuestion(t, moduleID, questionID)
	})
}
