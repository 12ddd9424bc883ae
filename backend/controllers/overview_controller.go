package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

// OverviewController serves the dashboard summary: everything here is
// derived on read from current state, nothing is cached or stored.
type OverviewController struct {
	Store         store.Store
	Cfg           *config.Config
	Insights      *services.InsightsService
	Grades        *services.GradeService
	Notifications *services.NotificationService
}

func NewOverviewController(st store.Store, cfg *config.Config, insights *services.InsightsService, grades *services.GradeService, notifications *services.NotificationService) *OverviewController {
	return &OverviewController{Store: st, Cfg: cfg, Insights: insights, Grades: grades, Notifications: notifications}
}

func (oc *OverviewController) GetOverview(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	agg := oc.Insights.Aggregates(userID)
	unread := 0
	for _, n := range oc.Notifications.List(userID) {
		if !n.Read {
			unread++
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"enrolled_courses":  agg.EnrolledCourses,
		"completed_courses": agg.CompletedCourses,
		"lessons_completed": agg.LessonsCompleted,
		"hours_spent":       agg.HoursSpent,
		"streak_days":       agg.StreakDays,
		"gpa":               agg.GPA,
		"engagement":        oc.Insights.Engagement(userID),
		"distribution":      oc.Grades.Distribution(userID),
		"unread_notifications": unread,
	})
}

func (oc *OverviewController) GetAchievements(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, oc.Insights.Achievements(middleware.UserID(c)))
}

func (oc *OverviewController) GetGoals(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, oc.Insights.Goals(middleware.UserID(c)))
}
