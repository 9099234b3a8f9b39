package controllers_test

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	resp := doJSON("POST", "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.NotEmpty(t, result["token"])
	assert.Equal(t, "alice", result["user"].(map[string]interface{})["username"])
}

func TestRegisterMissingFields(t *testing.T) {
	resp := doJSON("POST", "/api/auth/register", map[string]string{
		"username": "bob",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	resp := doJSON("POST", "/api/auth/login", map[string]string{
		"username": "learner",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.NotEmpty(t, result["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	resp := doJSON("POST", "/api/auth/login", map[string]string{
		"username": "learner",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	for _, path := range []string{"/api/courses/", "/api/resources/", "/api/history/"} {
		resp := doJSON("GET", path, nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestLogout(t *testing.T) {
	resp := doJSON("POST", "/api/auth/logout", nil, jwtToken)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
