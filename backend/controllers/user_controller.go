package controllers

import (
	"errors"

	"learnify/backend/config"
	"learnify/backend/models"
	"learnify/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

const (
	IdentityExpert  = "expert"
	IdentityStudent = "student"
	IdentityUnknown = "unknown"
)

// GetIdentity resolves the display name for the current session as a
// tagged variant: expert record by email first, profile record by user id
// second, unknown (empty name) when neither exists. Unknown is a value,
// not an error.
func (uc *UserController) GetIdentity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var expert models.Expert
	err = uc.DB.Where("email = ?", user.Email).First(&expert).Error
	if err == nil {
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"kind": IdentityExpert,
			"name": expert.Name,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	var profile models.Profile
	err = uc.DB.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"kind": IdentityStudent,
			"name": profile.Name,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"kind": IdentityUnknown,
		"name": "",
	})
}
