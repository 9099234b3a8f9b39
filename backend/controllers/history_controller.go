package controllers

import (
	"encoding/json"

	"learnify/backend/config"
	"learnify/backend/models"
	"learnify/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HistoryController is read-only: quiz history rows are written once by
// quiz submission and never mutated here.
type HistoryController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHistoryController(db *gorm.DB, cfg *config.Config) *HistoryController {
	return &HistoryController{DB: db, Cfg: cfg}
}

func (hc *HistoryController) GetHistory(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var history []models.QuizHistory
	if err := hc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&history).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(history))
	for _, entry := range history {
		result = append(result, fiber.Map{
			"id":              entry.ID,
			"topic":           entry.Topic,
			"score":           entry.Score,
			"total_questions": entry.TotalQuestions,
			"created_at":      entry.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// GetHistoryEntry returns the stored question/answer snapshot for the
// detail view.
func (hc *HistoryController) GetHistoryEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entryID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid history ID")
	}

	var entry models.QuizHistory
	if err := hc.DB.Where("user_id = ?", userID).First(&entry, entryID).Error; err != nil {
		return utils.NotFound(c, "History entry not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":              entry.ID,
		"topic":           entry.Topic,
		"score":           entry.Score,
		"total_questions": entry.TotalQuestions,
		"questions":       json.RawMessage(entry.Questions),
		"answers":         json.RawMessage(entry.Answers),
		"created_at":      entry.CreatedAt,
	})
}
