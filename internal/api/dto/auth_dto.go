package dto

import (
	"time"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminCreateUserRequest payload for admin-provisioned accounts.
type AdminCreateUserRequest struct {
	Username     string      `json:"username" validate:"required,min=3,max=64"`
	Email        string      `json:"email" validate:"required,email"`
	Password     string      `json:"password" validate:"required,min=8"`
	Subscription domain.Tier `json:"subscription" validate:"required"`
	IsAdmin      bool        `json:"is_admin"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
