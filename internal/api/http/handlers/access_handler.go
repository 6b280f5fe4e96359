package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-portal/internal/api/dto"
	"github.com/spec-kit/gym-portal/internal/service"
)

// AccessHandler exposes the admin course access endpoints.
type AccessHandler struct {
	access *service.AccessService
}

// NewAccessHandler constructs handler.
func NewAccessHandler(accessService *service.AccessService) *AccessHandler {
	return &AccessHandler{access: accessService}
}

// Set handles PUT /admin/access.
func (h *AccessHandler) Set(c *fiber.Ctx) error {
	var req dto.SetAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	decision, err := h.access.SetAccess(c.Context(), adminID(c), req.UserID, req.CourseID, *req.HasAccess, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccessDecisionResponse(decision)})
}

// Remove handles DELETE /admin/access/:userID/:courseID.
func (h *AccessHandler) Remove(c *fiber.Ctx) error {
	decision, err := h.access.RemoveOverride(c.Context(), adminID(c), c.Params("userID"), c.Params("courseID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccessDecisionResponse(decision)})
}

// Resolve handles GET /admin/access/:userID/:courseID.
func (h *AccessHandler) Resolve(c *fiber.Ctx) error {
	decision, err := h.access.Resolve(c.Context(), c.Params("userID"), c.Params("courseID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccessDecisionResponse(decision)})
}

// ListOverrides handles GET /admin/access/overrides.
func (h *AccessHandler) ListOverrides(c *fiber.Ctx) error {
	overrides, err := h.access.ListOverrides(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOverrideResponses(overrides)})
}

// ListForUser handles GET /admin/users/:id/access.
func (h *AccessHandler) ListForUser(c *fiber.Ctx) error {
	access, err := h.access.ListForUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserAccessResponse(access)})
}
