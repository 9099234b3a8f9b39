package controllers

import (
	"errors"
	"log"
	"strings"

	"learnify/backend/config"
	"learnify/backend/services"
	"learnify/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ChatController is stateless: the handoff store carries the document text
// and nothing is persisted.
type ChatController struct {
	Cfg       *config.Config
	Generator *services.Generator
	Handoff   services.HandoffStore
	Log       *log.Logger
}

func NewChatController(cfg *config.Config, generator *services.Generator, handoff services.HandoffStore, logger *log.Logger) *ChatController {
	return &ChatController{
		Cfg:       cfg,
		Generator: generator,
		Handoff:   handoff,
		Log:       logger,
	}
}

type ChatInput struct {
	HandoffID string `json:"handoff_id"`
	Question  string `json:"question"`
}

// Ask answers a question about a handed-off document. The handoff entry
// carries the extracted PDF text; an expired entry means the user has to
// start over from the resources page.
func (cc *ChatController) Ask(c *fiber.Ctx) error {
	var input ChatInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Question = strings.TrimSpace(input.Question)
	if input.HandoffID == "" || input.Question == "" {
		return utils.BadRequest(c, "Handoff ID and question are required")
	}

	payload, err := cc.Handoff.Get(c.UserContext(), input.HandoffID)
	if errors.Is(err, services.ErrHandoffNotFound) {
		return utils.NotFound(c, "Handoff entry not found or expired")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not read handoff entry")
	}

	answer, err := cc.Generator.AnswerQuestion(c.UserContext(), payload.Content, input.Question)
	if err != nil {
		cc.Log.Printf("chat answer failed for handoff %s: %v", input.HandoffID, err)
		return utils.BadGateway(c, "Could not generate answer")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"name":   payload.Name,
		"answer": answer,
	})
}
