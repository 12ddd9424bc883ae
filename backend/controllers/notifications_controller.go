package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

type NotificationsController struct {
	Store         store.Store
	Cfg           *config.Config
	Notifications *services.NotificationService
}

func NewNotificationsController(st store.Store, cfg *config.Config, notifications *services.NotificationService) *NotificationsController {
	return &NotificationsController{Store: st, Cfg: cfg, Notifications: notifications}
}

func (nc *NotificationsController) List(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, nc.Notifications.List(middleware.UserID(c)))
}

func (nc *NotificationsController) MarkRead(c *fiber.Ctx) error {
	id, okID := parseID(c, "id")
	if !okID {
		return utils.BadRequest(c, "Invalid notification ID")
	}
	res := nc.Notifications.MarkRead(middleware.UserID(c), id)
	if !res.Success {
		return utils.NotFound(c, res.Message)
	}
	return utils.SuccessMessage(c, res.Message, nil)
}
