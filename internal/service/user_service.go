package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

// UserService covers admin user administration outside the lifecycle flows.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// ListFilter narrows the admin account listing.
type ListFilter struct {
	MembersOnly bool
	Search      string
}

// List returns accounts matching the filter. Search matches username or
// email, case-insensitively.
func (s *UserService) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if !filter.MembersOnly && filter.Search == "" {
		return users, nil
	}

	needle := strings.ToLower(filter.Search)
	filtered := []domain.User{}
	for _, user := range users {
		if filter.MembersOnly && user.IsAdmin {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(user.Username), needle) &&
			!strings.Contains(strings.ToLower(user.Email), needle) {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered, nil
}

// UserUpdateInput carries admin-editable profile fields. Nil fields are left
// unchanged.
type UserUpdateInput struct {
	Username     *string
	Email        *string
	Subscription *domain.Tier
}

// Update edits profile fields on an account.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.users.GetByUsername(ctx, *input.Username); err == nil {
			return nil, apperrors.NewConflict("username already taken", map[string]any{"username": *input.Username})
		} else if err != pgx.ErrNoRows {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, *input.Email); err == nil {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": *input.Email})
		} else if err != pgx.ErrNoRows {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Subscription != nil {
		if !input.Subscription.Valid() {
			return nil, apperrors.NewValidationError("unknown subscription tier", map[string]any{"subscription": *input.Subscription})
		}
		user.Subscription = *input.Subscription
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account permanently. Overrides and subscriptions follow
// via foreign keys.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return err
	}
	return nil
}
