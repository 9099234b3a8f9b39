package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"learnify/backend/config"
	"learnify/backend/models"
	"learnify/backend/services"
	"learnify/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Generator *services.Generator
	Handoff   services.HandoffStore
	Log       *log.Logger
}

func NewQuizController(db *gorm.DB, cfg *config.Config, generator *services.Generator, handoff services.HandoffStore, logger *log.Logger) *QuizController {
	return &QuizController{DB: db, Cfg: cfg, Generator: generator, Handoff: handoff, Log: logger}
}

type GenerateQuizInput struct {
	Topic        string `json:"topic"`
	HandoffID    string `json:"handoff_id"`
	NumQuestions int    `json:"num_questions"`
}

// GenerateQuiz builds a question set either from a plain topic or from a
// handed-off PDF's extracted text.
func (qc *QuizController) GenerateQuiz(c *fiber.Ctx) error {
	var input GenerateQuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	count := input.NumQuestions
	if count <= 0 {
		count = 5
	}

	topic := strings.TrimSpace(input.Topic)
	material := ""
	if input.HandoffID != "" {
		payload, err := qc.Handoff.Get(c.UserContext(), input.HandoffID)
		if errors.Is(err, services.ErrHandoffNotFound) {
			return utils.NotFound(c, "Handoff entry not found or expired")
		}
		if err != nil {
			return utils.InternalServerError(c, "Could not read handoff entry")
		}
		topic = payload.Name
		material = payload.Content
	}
	if topic == "" {
		return utils.BadRequest(c, "Topic or handoff_id is required")
	}

	questions, err := qc.Generator.GenerateQuiz(c.UserContext(), topic, material, count)
	if err != nil {
		qc.Log.Printf("quiz generation failed: %v", err)
		return utils.BadGateway(c, "Could not generate quiz")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"topic":     topic,
		"questions": questions,
	})
}

type SubmitQuizInput struct {
	Topic          string          `json:"topic"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"total_questions"`
	Questions      json.RawMessage `json:"questions"`
	Answers        json.RawMessage `json:"answers"`
}

// SubmitQuiz records one immutable history row for a completed attempt.
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SubmitQuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if strings.TrimSpace(input.Topic) == "" {
		return utils.BadRequest(c, "Topic is required")
	}
	if input.TotalQuestions <= 0 {
		return utils.BadRequest(c, "Total questions must be positive")
	}
	if input.Score < 0 || input.Score > input.TotalQuestions {
		return utils.BadRequest(c, "Score must be between 0 and total questions")
	}
	if len(input.Questions) == 0 || len(input.Answers) == 0 {
		return utils.BadRequest(c, "Questions and answers are required")
	}

	entry := models.QuizHistory{
		UserID:         userID,
		Topic:          input.Topic,
		Score:          input.Score,
		TotalQuestions: input.TotalQuestions,
		Questions:      datatypes.JSON(input.Questions),
		Answers:        datatypes.JSON(input.Answers),
	}
	if err := qc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not save quiz history")
	}

	return utils.Created(c, fiber.Map{
		"id":              entry.ID,
		"topic":           entry.Topic,
		"score":           entry.Score,
		"total_questions": entry.TotalQuestions,
		"created_at":      entry.CreatedAt,
	})
}
