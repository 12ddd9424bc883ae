package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

type UserController struct {
	Store store.Store
	Cfg   *config.Config
}

func NewUserController(st store.Store, cfg *config.Config) *UserController {
	return &UserController{Store: st, Cfg: cfg}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.Store.GetUser(middleware.UserID(c))
	if err != nil {
		return utils.NotFound(c, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"role":         user.Role,
	})
}

type ProfileInput struct {
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"display_name"`
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var in ProfileInput
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(in); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	user, err := uc.Store.GetUser(middleware.UserID(c))
	if err != nil {
		return utils.NotFound(c, "User not found")
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.DisplayName != "" {
		user.DisplayName = in.DisplayName
	}
	if err := uc.Store.SaveUser(user); err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}
	return utils.SuccessMessage(c, "Profile updated", nil)
}
