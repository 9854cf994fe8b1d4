package handlers

import (
	"errors"

	"recontrack/internal/core/services"
	"recontrack/internal/pkg/response"
	"recontrack/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles team member registry endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Create handles team member registration
// @Summary Add team member
// @Description Register a new team member (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.CreateMember(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrMemberAlreadyExists) {
			return response.Conflict(c, "Email already registered")
		}
		return response.InternalServerError(c, "Failed to add team member")
	}

	return response.Created(c, "Team member added", member)
}

// List handles team member listing
// @Summary List team members
// @Description List all team members
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	members, err := h.memberService.ListMembers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list team members")
	}

	return response.Success(c, "Team members retrieved", fiber.Map{
		"items": members,
	})
}

// Get handles single member retrieval
// @Summary Get team member
// @Description Get one team member by ID
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetMember(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Team member not found")
		}
		return response.InternalServerError(c, "Failed to get team member")
	}

	return response.Success(c, "Team member retrieved", member)
}

// Update handles team member updates
// @Summary Update team member
// @Description Update a team member (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.UpdateMember(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Team member not found")
		case errors.Is(err, services.ErrMemberAlreadyExists):
			return response.Conflict(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to update team member")
		}
	}

	return response.Success(c, "Team member updated", member)
}

// Delete handles team member removal
// @Summary Remove team member
// @Description Remove a team member from the registry (admin only)
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.DeleteMember(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Team member not found")
		}
		return response.InternalServerError(c, "Failed to remove team member")
	}

	return response.Success(c, "Team member removed", nil)
}
