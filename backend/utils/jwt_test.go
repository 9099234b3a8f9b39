package utils

import (
	"testing"
	"time"

	"learnify/backend/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func parseClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	assert.NoError(t, err)
	return token.Claims.(jwt.MapClaims)
}

func TestGenerateJWTTokenUsesConfiguredExpiry(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret", JWTExpiryHours: 2}

	tokenString, err := GenerateJWTToken(7, cfg)
	assert.NoError(t, err)

	claims := parseClaims(t, tokenString, "s3cret")
	assert.Equal(t, float64(7), claims["user_id"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), exp, time.Minute)
}

func TestGenerateJWTTokenDefaultExpiry(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}

	tokenString, err := GenerateJWTToken(7, cfg)
	assert.NoError(t, err)

	claims := parseClaims(t, tokenString, "s3cret")
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), exp, time.Minute)
}
