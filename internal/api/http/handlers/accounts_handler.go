package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-portal/internal/api/dto"
	"github.com/spec-kit/gym-portal/internal/auth"
	"github.com/spec-kit/gym-portal/internal/service"
)

// AccountsHandler exposes the admin lifecycle and subscription endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// MarkOverdue handles POST /admin/users/:id/overdue.
func (h *AccountsHandler) MarkOverdue(c *fiber.Ctx) error {
	user, err := h.accounts.MarkOverdue(c.Context(), adminID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Cancel handles POST /admin/users/:id/cancel.
func (h *AccountsHandler) Cancel(c *fiber.Ctx) error {
	user, err := h.accounts.Cancel(c.Context(), adminID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Reactivate handles POST /admin/users/:id/reactivate.
func (h *AccountsHandler) Reactivate(c *fiber.Ctx) error {
	user, err := h.accounts.Reactivate(c.Context(), adminID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Suspend handles POST /admin/users/:id/suspend.
func (h *AccountsHandler) Suspend(c *fiber.Ctx) error {
	var req dto.SuspendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.accounts.Suspend(c.Context(), adminID(c), c.Params("id"), req.Until, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Disable handles POST /admin/users/:id/disable.
func (h *AccountsHandler) Disable(c *fiber.Ctx) error {
	user, err := h.accounts.Disable(c.Context(), adminID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// AssignSubscription handles POST /admin/users/:id/subscription.
func (h *AccountsHandler) AssignSubscription(c *fiber.Ctx) error {
	var req dto.AssignSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sub, err := h.accounts.AssignSubscription(c.Context(), adminID(c), c.Params("id"), req.PlanID, req.Interval, req.PaymentMethod)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}

// CurrentSubscription handles GET /admin/users/:id/subscription.
func (h *AccountsHandler) CurrentSubscription(c *fiber.Ctx) error {
	sub, err := h.accounts.CurrentSubscription(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}

// KPI handles GET /admin/kpi/subscriptions.
func (h *AccountsHandler) KPI(c *fiber.Ctx) error {
	kpi, err := h.accounts.KPI(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kpi})
}

func adminID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.User != nil {
		return principal.User.ID
	}
	return ""
}
