package handlers

import (
	"errors"
	"strconv"
	"time"

	"recontrack/internal/adapters/persistence/models"
	"recontrack/internal/core/domain"
	"recontrack/internal/core/schedule"
	"recontrack/internal/core/services"
	"recontrack/internal/pkg/pagination"
	"recontrack/internal/pkg/response"
	"recontrack/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// ReconciliationHandler handles reconciliation lifecycle endpoints
type ReconciliationHandler struct {
	reconService *services.ReconciliationService
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(reconService *services.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconService: reconService}
}

func callerRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals("role").(string)
	return domain.Role(role)
}

func callerID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// mapDomainError translates core errors to HTTP responses
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return response.Forbidden(c, "Permission denied")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Invalid state for this operation")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Reconciliation not found")
	case errors.Is(err, services.ErrMemberNotFound):
		return response.BadRequest(c, "Assignee not found")
	default:
		return response.InternalServerError(c, "Operation failed")
	}
}

// Create handles reconciliation creation
// @Summary Create reconciliation
// @Description Create a new reconciliation with its first due date (admin only)
// @Tags Reconciliations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReconciliationInput true "Reconciliation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reconciliations [post]
func (h *ReconciliationHandler) Create(c *fiber.Ctx) error {
	var input services.CreateReconciliationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	rec, err := h.reconService.Create(c.Context(), callerRole(c), &input)
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Created(c, "Reconciliation created", rec.ToResponse(today()))
}

// List handles reconciliation listing with filters
// @Summary List reconciliations
// @Description List reconciliations with optional status, frequency, priority, assignee and overdue filters
// @Tags Reconciliations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (PENDING or COMPLETED)"
// @Param frequency query string false "Filter by frequency (DAILY, WEEKLY, MONTHLY)"
// @Param priority query string false "Filter by priority (LOW, MEDIUM, HIGH)"
// @Param assignee_id query int false "Filter by assignee"
// @Param overdue query bool false "Only overdue reconciliations"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /reconciliations [get]
func (h *ReconciliationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := services.ListFilter{
		Status:      c.Query("status"),
		Frequency:   c.Query("frequency"),
		Priority:    c.Query("priority"),
		OverdueOnly: c.QueryBool("overdue"),
	}
	if raw := c.Query("assignee_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			assignee := uint(id)
			filter.AssigneeID = &assignee
		}
	}

	rows, total, err := h.reconService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reconciliations")
	}

	day := today()
	items := make([]*models.ReconciliationResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.ToResponse(day))
	}

	return response.Success(c, "Reconciliations retrieved", fiber.Map{
		"items": items,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Get handles single reconciliation retrieval
// @Summary Get reconciliation
// @Description Get one reconciliation by ID
// @Tags Reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reconciliations/{id} [get]
func (h *ReconciliationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reconciliation ID")
	}

	rec, err := h.reconService.GetByID(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Reconciliation retrieved", rec.ToResponse(today()))
}

// Update handles reconciliation editing
// @Summary Update reconciliation
// @Description Edit descriptive fields; a frequency change recomputes the due date (admin only)
// @Tags Reconciliations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Param body body services.UpdateReconciliationInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reconciliations/{id} [put]
func (h *ReconciliationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reconciliation ID")
	}

	var input services.UpdateReconciliationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	rec, err := h.reconService.Update(c.Context(), callerRole(c), id, &input)
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Reconciliation updated", rec.ToResponse(today()))
}

// Complete handles marking a reconciliation completed
// @Summary Complete reconciliation
// @Description Mark a pending reconciliation completed and record the completion report
// @Tags Reconciliations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Param body body services.CompleteReconciliationInput true "Completion report"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reconciliations/{id}/complete [post]
func (h *ReconciliationHandler) Complete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reconciliation ID")
	}

	var input services.CompleteReconciliationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	rec, record, err := h.reconService.Complete(c.Context(), callerRole(c), id, callerID(c), &input)
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Reconciliation completed", fiber.Map{
		"reconciliation": rec.ToResponse(today()),
		"record":         record.ToResponse(),
	})
}

// Reset handles rolling a completed reconciliation into the next cycle
// @Summary Reset reconciliation
// @Description Return a completed reconciliation to pending with the next due date (admin only)
// @Tags Reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reconciliations/{id}/reset [post]
func (h *ReconciliationHandler) Reset(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reconciliation ID")
	}

	rec, err := h.reconService.Reset(c.Context(), callerRole(c), id)
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Reconciliation reset", rec.ToResponse(today()))
}

// Delete handles reconciliation removal
// @Summary Delete reconciliation
// @Description Delete a reconciliation; completion history is kept (admin only)
// @Tags Reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reconciliations/{id} [delete]
func (h *ReconciliationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reconciliation ID")
	}

	if err := h.reconService.Delete(c.Context(), callerRole(c), id); err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Reconciliation deleted", nil)
}

// History handles completion history retrieval
// @Summary Completion history
// @Description List completion records for a reconciliation, newest first
// @Tags Reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /reconciliations/{id}/history [get]
func (h *ReconciliationHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid reconciliation ID")
	}

	params := pagination.GetParams(c)
	records, total, err := h.reconService.History(c.Context(), id, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load history")
	}

	items := make([]*models.CompletionRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, r.ToResponse())
	}

	return response.Success(c, "Completion history retrieved", fiber.Map{
		"items": items,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Overdue handles the overdue listing
// @Summary List overdue reconciliations
// @Description List pending reconciliations past their due date
// @Tags Reconciliations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reconciliations/overdue [get]
func (h *ReconciliationHandler) Overdue(c *fiber.Ctx) error {
	rows, err := h.reconService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list overdue reconciliations")
	}

	day := today()
	items := make([]*models.ReconciliationResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.ToResponse(day))
	}

	return response.Success(c, "Overdue reconciliations retrieved", fiber.Map{
		"items": items,
	})
}

// DueToday handles the due today listing
// @Summary List reconciliations due today
// @Description List pending reconciliations due on the current date
// @Tags Reconciliations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reconciliations/due-today [get]
func (h *ReconciliationHandler) DueToday(c *fiber.Ctx) error {
	rows, err := h.reconService.ListDueToday(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list due reconciliations")
	}

	day := today()
	items := make([]*models.ReconciliationResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.ToResponse(day))
	}

	return response.Success(c, "Due reconciliations retrieved", fiber.Map{
		"items": items,
	})
}

func today() time.Time {
	return schedule.DateOf(time.Now())
}
