package handlers

import (
	"recontrack/internal/core/services"
	"recontrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the summary dashboard endpoint
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get returns the dashboard payload
// @Summary Dashboard
// @Description Status counters, due today and overdue lists, member workload and recent completions
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	dash, err := h.dashboardService.Build(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved", dash)
}
