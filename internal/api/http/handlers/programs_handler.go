package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-portal/internal/api/dto"
	"github.com/spec-kit/gym-portal/internal/service"
)

// ProgramsHandler exposes weekly program endpoints.
type ProgramsHandler struct {
	programs *service.ProgramService
}

// NewProgramsHandler constructs handler.
func NewProgramsHandler(programService *service.ProgramService) *ProgramsHandler {
	return &ProgramsHandler{programs: programService}
}

// List handles GET /admin/programs.
func (h *ProgramsHandler) List(c *fiber.Ctx) error {
	programs, err := h.programs.ListPrograms(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProgramResponses(programs)})
}

// Get handles GET /admin/programs/:id.
func (h *ProgramsHandler) Get(c *fiber.Ctx) error {
	program, err := h.programs.GetProgram(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProgramResponse(program)})
}

// Create handles POST /admin/programs.
func (h *ProgramsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	days := make([]service.DayInput, 0, len(req.Days))
	for _, day := range req.Days {
		days = append(days, service.DayInput{
			DayOfWeek:       day.DayOfWeek,
			DayName:         day.DayName,
			IsRestDay:       day.IsRestDay,
			RestDescription: day.RestDescription,
			CourseIDs:       day.CourseIDs,
		})
	}

	program, err := h.programs.CreateProgram(c.Context(), service.ProgramInput{
		Name:        req.Name,
		Description: req.Description,
		Days:        days,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProgramResponse(program)})
}

// Delete handles DELETE /admin/programs/:id.
func (h *ProgramsHandler) Delete(c *fiber.Ctx) error {
	if err := h.programs.DeleteProgram(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Assign handles PUT /admin/users/:id/program.
func (h *ProgramsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.programs.AssignToUser(c.Context(), c.Params("id"), req.ProgramID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Unassign handles DELETE /admin/users/:id/program.
func (h *ProgramsHandler) Unassign(c *fiber.Ctx) error {
	user, err := h.programs.UnassignFromUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
