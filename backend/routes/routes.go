package routes

import (
	"log"

	"dsamentor/backend/config"
	"dsamentor/backend/controllers"
	"dsamentor/backend/middleware"
	"dsamentor/backend/realtime"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *realtime.Hub, logger *log.Logger) {
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)
	app.Post("/api/auth/setup-mfa", authMiddleware, authController.SetupMFA)
	app.Post("/api/auth/verify-mfa", authMiddleware, authController.VerifyMFA)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/", progressController.GetProgress)
	progress.Get("/stats", progressController.GetStats)
	progress.Get("/day/:day", progressController.GetDay)
	progress.Put("/day/:day", progressController.UpdateDay)
	progress.Post("/day/:day/problem", progressController.AddProblem)

	// Curriculum routes
	curriculumController := controllers.NewCurriculumController()
	app.Get("/api/curriculum/day/:day", authMiddleware, curriculumController.GetDay)
	app.Get("/api/curriculum/overview", authMiddleware, curriculumController.GetOverview)

	// Real-time sync channel
	app.Use("/ws", realtime.UpgradeMiddleware(cfg))
	app.Get("/ws", realtime.Handler(hub, logger))
}
