package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SilviaMahr/StudyVerse/internal/api"
	"github.com/SilviaMahr/StudyVerse/internal/api/handlers"
	"github.com/SilviaMahr/StudyVerse/internal/repository"
	"github.com/SilviaMahr/StudyVerse/internal/service"
	"github.com/SilviaMahr/StudyVerse/pkg/auth"
	"github.com/SilviaMahr/StudyVerse/pkg/config"
	"github.com/SilviaMahr/StudyVerse/pkg/embedding"
	"github.com/SilviaMahr/StudyVerse/pkg/logger"
	"github.com/SilviaMahr/StudyVerse/pkg/postgres"

	"go.uber.org/zap"
)

// @title StudyVerse API
// @version 1.0
// @description Semesterplanungs-Assistent für Bachelor Wirtschaftsinformatik an der JKU

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting StudyVerse service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	courseRepo := repository.NewCourseRepository(db, appLogger)
	curriculumRepo := repository.NewCurriculumRepository(db, appLogger)
	completedRepo := repository.NewCompletedCourseRepository(db, appLogger)
	planningRepo := repository.NewPlanningRepository(db, appLogger)
	chatRepo := repository.NewChatRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	embedder, err := embedding.NewGeminiClient(&cfg.Gemini, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize embedding client", zap.Error(err))
	}

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	retrievalService := service.NewRetrievalService(courseRepo, embedder, &cfg.RAG, appLogger)
	eligibilityFilter := service.NewEligibilityFilter(nil, appLogger)
	plannerService := service.NewPlannerService(retrievalService, eligibilityFilter, completedRepo, curriculumRepo, appLogger)
	planningService := service.NewPlanningService(planningRepo, curriculumRepo, plannerService, llmService, &cfg.RAG, appLogger)
	chatService := service.NewChatService(chatRepo, planningRepo, plannerService, llmService, appLogger)
	profileService := service.NewProfileService(completedRepo, curriculumRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	planningHandler := handlers.NewPlanningHandler(planningService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	profileHandler := handlers.NewProfileHandler(profileService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, planningHandler, chatHandler, profileHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
