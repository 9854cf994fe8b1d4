package main

import (
	"os"
	"os/signal"
	"syscall"

	"recontrack/internal/adapters/http/middleware"
	"recontrack/internal/adapters/http/routes"
	"recontrack/internal/adapters/persistence/models"
	"recontrack/internal/adapters/persistence/repositories"
	"recontrack/internal/config"
	"recontrack/internal/core/services"
	"recontrack/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// @title ReconTrack API
// @version 1.0
// @description Reconciliation scheduling and lifecycle tracking API

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.AppMode)

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to database")
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		logger.Log.WithError(err).Fatal("failed to auto migrate")
	}
	logger.Log.Info("database migration completed")

	// Seed the initial admin account on an empty database
	if err := config.NewSeeder(db).Run(); err != nil {
		logger.Log.WithError(err).Warn("database seeding failed")
	}

	// Start the reminder scheduler (morning sweep + token cleanup)
	reminderService := services.NewReminderService(
		repositories.NewReconciliationRepository(db),
		repositories.NewRefreshTokenRepository(db),
	)
	if err := reminderService.Start(); err != nil {
		logger.Log.WithError(err).Fatal("failed to start reminder scheduler")
	}
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ReconTrack API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	logger.Log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"mode": cfg.AppMode,
	}).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.WithError(err).Fatal("failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Log.WithError(err).Error("error during shutdown")
	}
	logger.Log.Info("server stopped gracefully")
}
