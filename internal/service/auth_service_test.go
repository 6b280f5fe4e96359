package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-portal/internal/config"
	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository/memory"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 15
	cfg.Auth.BcryptCost = 4
	svc := NewAuthService(cfg, AuthDependencies{UserRepo: store.Users()})
	return svc, store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.TierDebutant, user.Subscription)
	assert.Equal(t, domain.AccountStatusActive, user.AccountStatus)
	assert.False(t, user.IsAdmin)

	logged, token, _, err := svc.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)

	_, _, _, err = svc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Login(ctx, "nobody", "hunter2hunter2")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "alice", "other@example.com", "hunter2hunter2")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Register(ctx, "bob", "alice@example.com", "hunter2hunter2")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestAdminCreateUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.AdminCreateUser(ctx, AdminCreateInput{
		Username:     "coach",
		Email:        "coach@example.com",
		Password:     "hunter2hunter2",
		Subscription: domain.TierExpert,
		IsAdmin:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TierExpert, user.Subscription)
	assert.True(t, user.IsAdmin)

	_, err = svc.AdminCreateUser(ctx, AdminCreateInput{
		Username:     "bad",
		Email:        "bad@example.com",
		Password:     "hunter2hunter2",
		Subscription: domain.Tier("gold"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
