package handlers

import (
	"time"

	"recontrack/internal/config"
	"recontrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check returns service health including database connectivity
// @Summary Health check
// @Description Check service and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":  false,
			"status":   "degraded",
			"database": dbStatus,
			"time":     time.Now().UTC(),
		})
	}

	return response.Success(c, "Service healthy", fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"time":     time.Now().UTC(),
	})
}
