package dto

import (
	"time"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// AssignSubscriptionRequest payload.
type AssignSubscriptionRequest struct {
	PlanID        string                 `json:"plan_id" validate:"required"`
	Interval      domain.PaymentInterval `json:"interval" validate:"required"`
	PaymentMethod *string                `json:"payment_method"`
}

// SubscriptionResponse projection.
type SubscriptionResponse struct {
	ID              string                    `json:"id"`
	UserID          string                    `json:"user_id"`
	PlanID          string                    `json:"plan_id"`
	Interval        domain.PaymentInterval    `json:"interval"`
	AppAccess       bool                      `json:"app_access"`
	StartDate       time.Time                 `json:"start_date"`
	EndDate         time.Time                 `json:"end_date"`
	NextPaymentDate time.Time                 `json:"next_payment_date"`
	Status          domain.SubscriptionStatus `json:"status"`
	OverdueDate     *time.Time                `json:"overdue_date,omitempty"`
	PaymentMethod   *string                   `json:"payment_method,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// NewSubscriptionResponse maps a domain subscription.
func NewSubscriptionResponse(sub *domain.UserSubscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              sub.ID,
		UserID:          sub.UserID,
		PlanID:          sub.PlanID,
		Interval:        sub.Interval,
		AppAccess:       sub.AppAccess,
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		NextPaymentDate: sub.NextPaymentDate,
		Status:          sub.Status,
		OverdueDate:     sub.OverdueDate,
		PaymentMethod:   sub.PaymentMethod,
		CreatedAt:       sub.CreatedAt,
		UpdatedAt:       sub.UpdatedAt,
	}
}
