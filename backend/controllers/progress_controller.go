package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

type ProgressController struct {
	Store    store.Store
	Cfg      *config.Config
	Progress *services.ProgressService
	Insights *services.InsightsService
}

func NewProgressController(st store.Store, cfg *config.Config, progress *services.ProgressService, insights *services.InsightsService) *ProgressController {
	return &ProgressController{Store: st, Cfg: cfg, Progress: progress, Insights: insights}
}

type CompleteLessonInput struct {
	ModuleID     string  `json:"module_id" validate:"required"`
	LessonID     string  `json:"lesson_id" validate:"required"`
	MinutesSpent float64 `json:"minutes_spent" validate:"gte=0"`
}

// CompleteLesson godoc
// @Summary Mark a lesson complete
// @Description Upserts the lesson completion and re-derives module and course progress
// @Tags progress
// @Accept json
// @Produce json
// @Router /courses/{id}/lessons/complete [post]
func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	var in CompleteLessonInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	res := pc.Progress.MarkLessonComplete(middleware.UserID(c), courseID, in.ModuleID, in.LessonID, in.MinutesSpent)
	if !res.Success {
		return utils.BadRequest(c, res.Message)
	}

	progress, err := pc.Progress.CourseProgress(middleware.UserID(c), courseID)
	if err != nil {
		return utils.SuccessMessage(c, res.Message, nil)
	}
	return utils.SuccessMessage(c, res.Message, progress)
}

// GetCourseProgress godoc
// @Summary Get course progress
// @Description Returns the enrollment plus module and lesson rollups for one course
// @Tags progress
// @Produce json
// @Router /courses/{id}/progress [get]
func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	progress, err := pc.Progress.CourseProgress(middleware.UserID(c), courseID)
	if err != nil {
		return utils.NotFound(c, "Not enrolled in this course")
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

func (pc *ProgressController) GetEngagement(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, pc.Insights.Engagement(middleware.UserID(c)))
}
