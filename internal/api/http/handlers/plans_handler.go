package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-portal/internal/api/dto"
	"github.com/spec-kit/gym-portal/internal/service"
)

// PlansHandler exposes subscription plan endpoints.
type PlansHandler struct {
	catalog *service.CatalogService
}

// NewPlansHandler constructs handler.
func NewPlansHandler(catalogService *service.CatalogService) *PlansHandler {
	return &PlansHandler{catalog: catalogService}
}

// List handles GET /plans.
func (h *PlansHandler) List(c *fiber.Ctx) error {
	plans, err := h.catalog.ListPlans(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponses(plans)})
}

// Get handles GET /plans/:id.
func (h *PlansHandler) Get(c *fiber.Ctx) error {
	plan, err := h.catalog.GetPlan(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// Create handles POST /admin/plans.
func (h *PlansHandler) Create(c *fiber.Ctx) error {
	input, err := parsePlanInput(c)
	if err != nil {
		return err
	}
	plan, err := h.catalog.CreatePlan(c.Context(), *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// Update handles PUT /admin/plans/:id.
func (h *PlansHandler) Update(c *fiber.Ctx) error {
	input, err := parsePlanInput(c)
	if err != nil {
		return err
	}
	plan, err := h.catalog.UpdatePlan(c.Context(), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// Delete handles DELETE /admin/plans/:id.
func (h *PlansHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeletePlan(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePlanInput(c *fiber.Ctx) (*service.PlanInput, error) {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return &service.PlanInput{
		Name:         req.Name,
		Level:        req.Level,
		MonthlyPrice: req.MonthlyPrice,
		AnnualPrice:  req.AnnualPrice,
		Features:     req.Features,
		AppAccess:    req.AppAccess,
		IsFamily:     req.IsFamily,
	}, nil
}
