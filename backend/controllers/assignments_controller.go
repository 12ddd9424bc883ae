package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/analytics"
	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

type AssignmentsController struct {
	Store store.Store
	Cfg   *config.Config
}

func NewAssignmentsController(st store.Store, cfg *config.Config) *AssignmentsController {
	return &AssignmentsController{Store: st, Cfg: cfg}
}

type AssignmentInput struct {
	Title     string    `json:"title" validate:"required,min=3"`
	Type      string    `json:"type" validate:"required,oneof=assignment quiz exam participation"`
	DueAt     time.Time `json:"due_at" validate:"required"`
	MaxPoints float64   `json:"max_points" validate:"gt=0"`
	Published bool      `json:"published"`
}

func (ac *AssignmentsController) CreateAssignment(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	var in AssignmentInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}
	if _, err := ac.Store.GetCourse(courseID); err != nil {
		return utils.NotFound(c, "Course not found")
	}

	assignment := models.Assignment{
		CourseID:  courseID,
		Title:     in.Title,
		Type:      in.Type,
		DueAt:     in.DueAt,
		MaxPoints: in.MaxPoints,
		Published: in.Published,
	}
	if err := ac.Store.CreateAssignment(&assignment); err != nil {
		return utils.InternalServerError(c, "Could not create assignment")
	}
	return utils.SuccessMessage(c, "Assignment created", assignment)
}

// ListAssignments returns the course's assignments with their due status
// computed against the current clock.
func (ac *AssignmentsController) ListAssignments(c *fiber.Ctx) error {
	courseID, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid course ID")
	}
	assignments, err := ac.Store.ListAssignmentsByCourse(courseID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load assignments")
	}

	now := ac.Store.Now()
	result := make([]fiber.Map, 0, len(assignments))
	for _, a := range assignments {
		if !a.Published {
			continue
		}
		result = append(result, fiber.Map{
			"id":         a.ID,
			"title":      a.Title,
			"type":       a.Type,
			"due_at":     a.DueAt,
			"max_points": a.MaxPoints,
			"status":     analytics.AssignmentStatus(a.DueAt, now),
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}
