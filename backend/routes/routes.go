package routes

import (
	"log"

	"learnify/backend/config"
	"learnify/backend/controllers"
	"learnify/backend/middleware"
	"learnify/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps bundles the external collaborators the controllers are wired with.
type Deps struct {
	Generator  *services.Generator
	Storage    services.ObjectStorage
	Handoff    services.HandoffStore
	Thumbnails *services.ThumbnailCache
	Logger     *log.Logger
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, deps *Deps) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	app.Post("/api/auth/logout", authMiddleware, authController.Logout)

	// Identity resolution (navbar display name)
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/identity", authMiddleware, userController.GetIdentity)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg, deps.Generator, deps.Logger)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Post("/", coursesController.CreateCourse)
	courses.Get("/:id/chapters", coursesController.GetChapters)
	courses.Get("/:courseId/chapters/:chapterId", coursesController.GetChapter)
	courses.Post("/:id/rating", coursesController.RateCourse)

	// Resources routes
	resourcesController := controllers.NewResourcesController(db, cfg, deps.Storage, deps.Handoff, deps.Thumbnails, deps.Logger)
	resources := app.Group("/api/resources", authMiddleware)
	resources.Get("/", resourcesController.GetResources)
	resources.Post("/", resourcesController.UploadResource)
	resources.Get("/:id/thumbnail", resourcesController.GetThumbnail)
	resources.Post("/:id/actions", resourcesController.ResourceAction)

	app.Get("/api/handoff/:id", authMiddleware, resourcesController.GetHandoff)

	// PDF chat
	chatController := controllers.NewChatController(cfg, deps.Generator, deps.Handoff, deps.Logger)
	app.Post("/api/pdf-chat", authMiddleware, chatController.Ask)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg, deps.Generator, deps.Handoff, deps.Logger)
	quiz := app.Group("/api/quiz", authMiddleware)
	quiz.Post("/generate", quizController.GenerateQuiz)
	quiz.Post("/submit", quizController.SubmitQuiz)

	// History routes
	historyController := controllers.NewHistoryController(db, cfg)
	history := app.Group("/api/history", authMiddleware)
	history.Get("/", historyController.GetHistory)
	history.Get("/:id", historyController.GetHistoryEntry)
}
