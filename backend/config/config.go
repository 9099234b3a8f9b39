package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret      string
	JWTExpiryHours int
	ServerPort     string

	// Generative content API (OpenAI-compatible chat completions endpoint).
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	// Object storage. When GCSBucket is empty, files go to StorageDir on disk.
	GCSBucket         string
	StorageDir        string
	StoragePublicBase string

	// Handoff store. When RedisAddr is empty, an in-process store is used.
	RedisAddr string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "learnify"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 72),
		ServerPort:     getEnv("SERVER_PORT", "8080"),

		GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
		GroqBaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		GCSBucket:         getEnv("GCS_BUCKET", ""),
		StorageDir:        getEnv("STORAGE_DIR", "./uploads"),
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:8080/files"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
