package main

import (
	"context"
	"log"

	"learnify/backend/config"
	"learnify/backend/middleware"
	"learnify/backend/routes"
	"learnify/backend/services"
	"learnify/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Object storage: GCS when a bucket is configured, local disk otherwise.
	var storage services.ObjectStorage
	if cfg.GCSBucket != "" {
		storage, err = services.NewGCSStorage(context.Background(), cfg.GCSBucket, cfg.StoragePublicBase)
		if err != nil {
			log.Fatalf("Error initializing object storage: %v", err)
		}
	} else {
		storage = services.NewLocalStorage(cfg.StorageDir, cfg.StoragePublicBase)
	}

	// Handoff store: redis when configured, in-process otherwise.
	var handoff services.HandoffStore
	if cfg.RedisAddr != "" {
		handoff, err = services.NewRedisHandoffStore(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Error initializing handoff store: %v", err)
		}
	} else {
		handoff = services.NewMemoryHandoffStore()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Serve local uploads when no bucket is configured.
	if cfg.GCSBucket == "" {
		app.Static("/files", cfg.StorageDir)
	}

	// Setup routes
	routes.SetupRoutes(app, db, cfg, &routes.Deps{
		Generator:  services.NewGenerator(cfg),
		Storage:    storage,
		Handoff:    handoff,
		Thumbnails: services.NewThumbnailCache(256),
		Logger:     logger,
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
