package controllers_test

import (
	"context"
	"testing"

	"learnify/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestGenerateQuizFromTopic(t *testing.T) {
	resp := doJSON("POST", "/api/quiz/generate", map[string]interface{}{
		"topic":         "Biology",
		"num_questions": 3,
	}, jwtToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(resp).(map[string]interface{})
	assert.Equal(t, "Biology", data["topic"])

	questions := data["questions"].([]interface{})
	assert.Len(t, questions, 3)
	for _, raw := range questions {
		question := raw.(map[string]interface{})
		options := question["options"].([]interface{})
		assert.Len(t, options, 4)
		answer := int(question["correct_answer"].(float64))
		assert.GreaterOrEqual(t, answer, 0)
		assert.Less(t, answer, len(options))
	}
}

func TestGenerateQuizFromHandoff(t *testing.T) {
	id, err := handoff.Put(context.Background(), services.HandoffPayload{
		Kind:    "quiz",
		Name:    "photosynthesis.pdf",
		URL:     "http://example.invalid/photosynthesis.pdf",
		Content: "Photosynthesis converts light into chemical energy.",
	})
	assert.NoError(t, err)

	resp := doJSON("POST", "/api/quiz/generate", map[string]string{"handoff_id": id}, jwtToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(resp).(map[string]interface{})
	assert.Equal(t, "photosynthesis.pdf", data["topic"])
	assert.NotEmpty(t, data["questions"])
}

func TestGenerateQuizRequiresTopicOrHandoff(t *testing.T) {
	resp := doJSON("POST", "/api/quiz/generate", map[string]string{}, jwtToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateQuizExpiredHandoff(t *testing.T) {
	resp := doJSON("POST", "/api/quiz/generate", map[string]string{"handoff_id": "gone"}, jwtToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitQuiz(t *testing.T) {
	resp := doJSON("POST", "/api/quiz/submit", map[string]interface{}{
		"topic":           "Biology",
		"score":           2,
		"total_questions": 3,
		"questions": []map[string]interface{}{
			{"question": "Q1", "options": []string{"a", "b"}, "correct_answer": 0},
			{"question": "Q2", "options": []string{"a", "b"}, "correct_answer": 1},
			{"question": "Q3", "options": []string{"a", "b"}, "correct_answer": 0},
		},
		"answers": []string{"a", "b", "b"},
	}, jwtToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeData(resp).(map[string]interface{})
	assert.Equal(t, "Biology", data["topic"])
	assert.Equal(t, float64(2), data["score"])
	assert.Equal(t, float64(3), data["total_questions"])
}

func TestSubmitQuizRejectsImpossibleScore(t *testing.T) {
	resp := doJSON("POST", "/api/quiz/submit", map[string]interface{}{
		"topic":           "Biology",
		"score":           7,
		"total_questions": 3,
		"questions":       []map[string]interface{}{{"question": "Q1"}},
		"answers":         []string{"a"},
	}, jwtToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
