package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository/memory"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

func TestUserListFilters(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users())
	ctx := context.Background()

	seedUser(t, store, "alice", domain.TierDebutant)
	seedUser(t, store, "bob", domain.TierMedium)
	admin := seedUser(t, store, "boss", domain.TierExpert)
	admin.IsAdmin = true
	require.NoError(t, store.Users().Update(ctx, admin))

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	members, err := svc.List(ctx, ListFilter{MembersOnly: true})
	require.NoError(t, err)
	assert.Len(t, members, 2)

	found, err := svc.List(ctx, ListFilter{Search: "ALI"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)

	none, err := svc.List(ctx, ListFilter{MembersOnly: true, Search: "boss"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserUpdateRejectsTakenNames(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users())
	ctx := context.Background()

	seedUser(t, store, "alice", domain.TierDebutant)
	bob := seedUser(t, store, "bob", domain.TierDebutant)

	taken := "alice"
	_, err := svc.Update(ctx, bob.ID, UserUpdateInput{Username: &taken})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	tier := domain.TierExpert
	updated, err := svc.Update(ctx, bob.ID, UserUpdateInput{Subscription: &tier})
	require.NoError(t, err)
	assert.Equal(t, domain.TierExpert, updated.Subscription)

	bad := domain.Tier("gold")
	_, err = svc.Update(ctx, bob.ID, UserUpdateInput{Subscription: &bad})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUserDelete(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users())
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.TierDebutant)
	require.NoError(t, svc.Delete(ctx, alice.ID))

	err := svc.Delete(ctx, alice.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
