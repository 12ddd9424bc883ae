package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

type GradesController struct {
	Store  store.Store
	Cfg    *config.Config
	Grades *services.GradeService
}

func NewGradesController(st store.Store, cfg *config.Config, grades *services.GradeService) *GradesController {
	return &GradesController{Store: st, Cfg: cfg, Grades: grades}
}

func (gc *GradesController) AddGrade(c *fiber.Ctx) error {
	var in services.GradeInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	res, grade := gc.Grades.AddGrade(middleware.UserID(c), in)
	return serviceResult(c, res, grade)
}

func (gc *GradesController) GetMyGrades(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, gc.Grades.MyGrades(middleware.UserID(c)))
}

func (gc *GradesController) GetCourseStats(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	userID := middleware.UserID(c)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"stats": gc.Grades.CourseStats(userID, courseID),
		"trend": gc.Grades.Trend(userID, courseID),
	})
}

func (gc *GradesController) GetOverview(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"gpa":          gc.Grades.OverallGPA(userID),
		"distribution": gc.Grades.Distribution(userID),
	})
}
