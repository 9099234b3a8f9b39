package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func submitQuizAs(t *testing.T, token, topic string) uint {
	resp := doJSON("POST", "/api/quiz/submit", map[string]interface{}{
		"topic":           topic,
		"score":           1,
		"total_questions": 2,
		"questions": []map[string]interface{}{
			{"question": "Q1", "options": []string{"a", "b"}, "correct_answer": 0},
			{"question": "Q2", "options": []string{"a", "b"}, "correct_answer": 1},
		},
		"answers": []string{"a", "a"},
	}, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeData(resp).(map[string]interface{})
	return uint(data["id"].(float64))
}

func TestHistoryNewestFirst(t *testing.T) {
	token, _ := registerUser("historian", "historian@example.com")

	firstID := submitQuizAs(t, token, "First Quiz")
	time.Sleep(20 * time.Millisecond)
	submitQuizAs(t, token, "Second Quiz")

	resp := doJSON("GET", "/api/history/", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	entries := decodeData(resp).([]interface{})
	assert.Len(t, entries, 2)
	assert.Equal(t, "Second Quiz", entries[0].(map[string]interface{})["topic"])
	assert.Equal(t, "First Quiz", entries[1].(map[string]interface{})["topic"])

	// Selecting a detail view and returning must not lose anything.
	resp = doJSON("GET", fmt.Sprintf("/api/history/%d", firstID), nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON("GET", "/api/history/", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData(resp).([]interface{}), 2)
}

func TestHistoryDetailSnapshot(t *testing.T) {
	token, _ := registerUser("snapshotter", "snapshotter@example.com")
	entryID := submitQuizAs(t, token, "Snapshot Quiz")

	resp := doJSON("GET", fmt.Sprintf("/api/history/%d", entryID), nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(resp).(map[string]interface{})
	assert.Equal(t, "Snapshot Quiz", data["topic"])

	questions := data["questions"].([]interface{})
	assert.Len(t, questions, 2)
	assert.Equal(t, "Q1", questions[0].(map[string]interface{})["question"])

	answers := data["answers"].([]interface{})
	assert.Equal(t, []interface{}{"a", "a"}, answers)
}

func TestHistoryHidesOtherUsersEntries(t *testing.T) {
	token, _ := registerUser("private", "private@example.com")
	entryID := submitQuizAs(t, token, "Private Quiz")

	// A different user cannot read it.
	resp := doJSON("GET", fmt.Sprintf("/api/history/%d", entryID), nil, jwtToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
