package dto

import (
	"time"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// UserResponse is the account projection returned by the API. The password
// hash never leaves the service.
type UserResponse struct {
	ID                string                 `json:"id"`
	Username          string                 `json:"username"`
	Email             string                 `json:"email"`
	Subscription      domain.Tier            `json:"subscription"`
	IsAdmin           bool                   `json:"is_admin"`
	AccountStatus     domain.AccountStatus   `json:"account_status"`
	DisabledReason    *domain.DisabledReason `json:"disabled_reason,omitempty"`
	SuspendedUntil    *time.Time             `json:"suspended_until,omitempty"`
	SuspensionReason  *string                `json:"suspension_reason,omitempty"`
	AssignedProgramID *string                `json:"assigned_program_id,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Subscription:      user.Subscription,
		IsAdmin:           user.IsAdmin,
		AccountStatus:     user.AccountStatus,
		DisabledReason:    user.DisabledReason,
		SuspendedUntil:    user.SuspendedUntil,
		SuspensionReason:  user.SuspensionReason,
		AssignedProgramID: user.AssignedProgramID,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

// NewUserResponses maps a user list.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// UserUpdateRequest payload; nil fields stay unchanged.
type UserUpdateRequest struct {
	Username     *string      `json:"username" validate:"omitempty,min=3,max=64"`
	Email        *string      `json:"email" validate:"omitempty,email"`
	Subscription *domain.Tier `json:"subscription"`
}

// SuspendRequest payload.
type SuspendRequest struct {
	Until  time.Time `json:"until" validate:"required"`
	Reason string    `json:"reason"`
}
