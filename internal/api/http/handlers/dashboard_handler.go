package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-portal/internal/api/dto"
	"github.com/spec-kit/gym-portal/internal/auth"
	"github.com/spec-kit/gym-portal/internal/service"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

// DashboardHandler serves the member-facing views: resolved course access,
// the current subscription and the assigned weekly program.
type DashboardHandler struct {
	access   *service.AccessService
	accounts *service.AccountService
	programs *service.ProgramService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(accessService *service.AccessService, accountService *service.AccountService, programService *service.ProgramService) *DashboardHandler {
	return &DashboardHandler{access: accessService, accounts: accountService, programs: programService}
}

// Courses handles GET /me/courses. With ?grouped=true the available courses
// come back bucketed by category.
func (h *DashboardHandler) Courses(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	access, err := h.access.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	if c.QueryBool("grouped") {
		return c.JSON(fiber.Map{"data": fiber.Map{
			"available": dto.NewCategoryGroupResponses(service.GroupByCategory(access.Available)),
			"locked":    dto.NewCourseAccessResponses(access.Locked),
		}})
	}
	return c.JSON(fiber.Map{"data": dto.NewUserAccessResponse(access)})
}

// Subscription handles GET /me/subscription.
func (h *DashboardHandler) Subscription(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	sub, err := h.accounts.CurrentSubscription(c.Context(), principal.User.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return c.JSON(fiber.Map{"data": nil})
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}

// Program handles GET /me/program.
func (h *DashboardHandler) Program(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if principal.User.AssignedProgramID == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	program, err := h.programs.GetProgram(c.Context(), *principal.User.AssignedProgramID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return c.JSON(fiber.Map{"data": nil})
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProgramResponse(program)})
}
