package api

import (
	"github.com/SilviaMahr/StudyVerse/internal/api/handlers"
	"github.com/SilviaMahr/StudyVerse/pkg/auth"
	"github.com/SilviaMahr/StudyVerse/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	planningHandler *handlers.PlanningHandler,
	chatHandler *handlers.ChatHandler,
	profileHandler *handlers.ProfileHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	plannings := protected.Group("/plannings")
	plannings.Post("/new", planningHandler.Create)
	plannings.Get("/recent", planningHandler.Recent)
	plannings.Get("/:id", planningHandler.Get)
	plannings.Put("/:id", planningHandler.Rename)
	plannings.Put("/:id/access", planningHandler.Touch)
	plannings.Delete("/:id", planningHandler.Delete)
	plannings.Post("/:id/generate-plan", planningHandler.GeneratePlan)

	chat := protected.Group("/chat")
	chat.Post("/send", chatHandler.Send)
	chat.Get("/history/:planning_id", chatHandler.History)

	rag := protected.Group("/rag")
	rag.Post("/ask", chatHandler.Ask)

	profile := protected.Group("/profile")
	profile.Get("/lvas", profileHandler.Curriculum)
	profile.Get("/lvas/electives", profileHandler.Electives)
	profile.Get("/lvas/completed", profileHandler.CompletedCourses)
	profile.Put("/lvas/completed", profileHandler.SetCompleted)

	return app
}
