package routes

import (
	"recontrack/internal/adapters/http/handlers"
	"recontrack/internal/adapters/http/middleware"
	"recontrack/internal/adapters/persistence/repositories"
	"recontrack/internal/config"
	"recontrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	reconRepo := repositories.NewReconciliationRepository(db)
	completionRepo := repositories.NewCompletionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	memberService := services.NewMemberService(memberRepo)
	reconService := services.NewReconciliationService(reconRepo, completionRepo, memberRepo)
	dashboardService := services.NewDashboardService(reconRepo, completionRepo, memberRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService)
	reconHandler := handlers.NewReconciliationHandler(reconService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check
	app.Get("/health", healthHandler.Check)

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (stricter rate limit on credential endpoints)
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// User routes (admin only except own password)
	users := api.Group("/users", middleware.AuthMiddleware(cfg))
	users.Put("/me/password", userHandler.ChangePassword)
	users.Post("/", middleware.AdminOnly(), userHandler.Create)
	users.Get("/", middleware.AdminOnly(), userHandler.List)
	users.Get("/:id", middleware.AdminOnly(), userHandler.Get)
	users.Put("/:id", middleware.AdminOnly(), userHandler.Update)
	users.Delete("/:id", middleware.AdminOnly(), userHandler.Delete)

	// Team member routes (reads for everyone, writes admin only)
	members := api.Group("/members", middleware.AuthMiddleware(cfg))
	members.Get("/", memberHandler.List)
	members.Get("/:id", memberHandler.Get)
	members.Post("/", middleware.AdminOnly(), memberHandler.Create)
	members.Put("/:id", middleware.AdminOnly(), memberHandler.Update)
	members.Delete("/:id", middleware.AdminOnly(), memberHandler.Delete)

	// Reconciliation routes. Role checks for lifecycle transitions live in
	// the core policy, so complete is open to any authenticated user while
	// create, update, reset and delete fail there for non admins.
	recons := api.Group("/reconciliations", middleware.AuthMiddleware(cfg))
	recons.Get("/", reconHandler.List)
	recons.Get("/overdue", reconHandler.Overdue)
	recons.Get("/due-today", reconHandler.DueToday)
	recons.Get("/:id", reconHandler.Get)
	recons.Get("/:id/history", reconHandler.History)
	recons.Post("/", reconHandler.Create)
	recons.Put("/:id", reconHandler.Update)
	recons.Post("/:id/complete", reconHandler.Complete)
	recons.Post("/:id/reset", reconHandler.Reset)
	recons.Delete("/:id", reconHandler.Delete)

	// Dashboard
	api.Get("/dashboard", middleware.AuthMiddleware(cfg), dashboardHandler.Get)
}
