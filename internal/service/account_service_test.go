package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository/memory"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newAccountFixture(t *testing.T) (*AccountService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewAccountService(AccountDependencies{
		UserRepo:         store.Users(),
		SubscriptionRepo: store.Subscriptions(),
		PlanRepo:         store.Plans(),
		Clock:            func() time.Time { return testNow },
	})
	return svc, store
}

func seedPlan(t *testing.T, store *memory.Store, name string, level domain.Tier) *domain.SubscriptionPlan {
	t.Helper()
	plan := &domain.SubscriptionPlan{
		Name:         name,
		Level:        level,
		MonthlyPrice: 29.90,
		AnnualPrice:  299,
		Features:     []string{"gym access"},
		AppAccess:    true,
	}
	require.NoError(t, store.Plans().Create(context.Background(), plan))
	return plan
}

func TestAssignSubscription(t *testing.T) {
	svc, store := newAccountFixture(t)
	ctx := context.Background()

	user := seedUser(t, store, "alice", domain.TierDebutant)
	plan := seedPlan(t, store, "premium", domain.TierMedium)

	sub, err := svc.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)
	assert.Equal(t, testNow, sub.StartDate)
	assert.Equal(t, testNow.AddDate(0, 1, 0), sub.EndDate)
	assert.Equal(t, testNow.AddDate(0, 1, 0), sub.NextPaymentDate)

	// the member's tier follows the plan level
	updated, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierMedium, updated.Subscription)
	assert.Equal(t, domain.AccountStatusActive, updated.AccountStatus)
}

func TestAssignSubscriptionReplacesCurrent(t *testing.T) {
	svc, store := newAccountFixture(t)
	ctx := context.Background()

	user := seedUser(t, store, "alice", domain.TierDebutant)
	basic := seedPlan(t, store, "basic", domain.TierDebutant)
	premium := seedPlan(t, store, "premium", domain.TierExpert)

	first, err := svc.AssignSubscription(ctx, "admin", user.ID, basic.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)
	second, err := svc.AssignSubscription(ctx, "admin", user.ID, premium.ID, domain.IntervalAnnual, nil)
	require.NoError(t, err)

	old, err := store.Subscriptions().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionCancelled, old.Status)

	current, err := svc.CurrentSubscription(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, domain.SubscriptionActive, current.Status)
}

func TestMarkOverdueDisablesAccount(t *testing.T) {
	svc, store := newAccountFixture(t)
	ctx := context.Background()

	user := seedUser(t, store, "alice", domain.TierDebutant)
	plan := seedPlan(t, store, "basic", domain.TierDebutant)
	sub, err := svc.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)

	updated, err := svc.MarkOverdue(ctx, "admin", user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusDisabled, updated.AccountStatus)
	require.NotNil(t, updated.DisabledReason)
	assert.Equal(t, domain.DisabledPaymentOverdue, *updated.DisabledReason)

	stored, err := store.Subscriptions().GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionOverdue, stored.Status)
	require.NotNil(t, stored.OverdueDate)
	assert.Equal(t, testNow, *stored.OverdueDate)
}

func TestMarkOverdueWithoutSubscription(t *testing.T) {
	svc, store := newAccountFixture(t)
	user := seedUser(t, store, "alice", domain.TierDebutant)

	_, err := svc.MarkOverdue(context.Background(), "admin", user.ID)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestReactivateExtendsTermFromNow(t *testing.T) {
	svc, store := newAccountFixture(t)
	ctx := context.Background()

	user := seedUser(t, store, "alice", domain.TierDebutant)
	plan := seedPlan(t, store, "basic", domain.TierDebutant)
	sub, err := svc.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalAnnual, nil)
	require.NoError(t, err)
	_, err = svc.MarkOverdue(ctx, "admin", user.ID)
	require.NoError(t, err)

	updated, err := svc.Reactivate(ctx, "admin", user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusActive, updated.AccountStatus)
	assert.Nil(t, updated.DisabledReason)

	stored, err := store.Subscriptions().GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, stored.Status)
	assert.Nil(t, stored.OverdueDate)
	assert.Equal(t, testNow.AddDate(1, 0, 0), stored.EndDate)
	assert.Equal(t, testNow.AddDate(1, 0, 0), stored.NextPaymentDate)
}

func TestReactivateKeepsActiveSubscriptionDates(t *testing.T) {
	store := memory.NewStore()
	now := testNow
	svc := NewAccountService(AccountDependencies{
		UserRepo:         store.Users(),
		SubscriptionRepo: store.Subscriptions(),
		PlanRepo:         store.Plans(),
		Clock:            func() time.Time { return now },
	})
	ctx := context.Background()

	user := seedUser(t, store, "alice", domain.TierDebutant)
	plan := seedPlan(t, store, "basic", domain.TierDebutant)
	sub, err := svc.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)
	endDate := sub.EndDate

	_, err = svc.Suspend(ctx, "admin", user.ID, now.AddDate(0, 0, 30), "holiday")
	require.NoError(t, err)

	// only an overdue subscription has its term recomputed; reactivating a
	// suspension must not move the paid term
	now = now.AddDate(0, 0, 10)
	updated, err := svc.Reactivate(ctx, "admin", user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusActive, updated.AccountStatus)
	assert.Nil(t, updated.SuspendedUntil)

	stored, err := store.Subscriptions().GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, stored.Status)
	assert.Equal(t, endDate, stored.EndDate)
	assert.Equal(t, endDate, stored.NextPaymentDate)
}

func TestCancelIsTerminal(t *testing.T) {
	svc, store := newAccountFixture(t)
	ctx := context.Background()

	user := seedUser(t, store, "alice", domain.TierDebutant)
	plan := seedPlan(t, store, "basic", domain.TierDebutant)
	sub, err := svc.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)

	updated, err := svc.Cancel(ctx, "admin", user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusCancelled, updated.AccountStatus)

	stored, err := store.Subscriptions().GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionCancelled, stored.Status)

	// no lifecycle operation leaves the cancelled state
	_, err = svc.Reactivate(ctx, "admin", user.ID)
	assert.Error(t, err)
	_, err = svc.Suspend(ctx, "admin", user.ID, testNow.AddDate(0, 0, 7), "holiday")
	assert.Error(t, err)
	_, err = svc.Disable(ctx, "admin", user.ID)
	assert.Error(t, err)
	_, err = svc.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalMonthly, nil)
	assert.Error(t, err)
}

func TestSuspendDateBoundary(t *testing.T) {
	svc, store := newAccountFixture(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice", domain.TierDebutant)

	_, err := svc.Suspend(ctx, "admin", user.ID, testNow.AddDate(0, 0, -1), "late")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	// the current instant is accepted, only the past is rejected
	updated, err := svc.Suspend(ctx, "admin", user.ID, testNow, "brief")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusSuspended, updated.AccountStatus)

	until := testNow.AddDate(0, 0, 14)
	updated, err = svc.Suspend(ctx, "admin", user.ID, until, "travel")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusSuspended, updated.AccountStatus)
	require.NotNil(t, updated.SuspendedUntil)
	assert.Equal(t, until, *updated.SuspendedUntil)
	require.NotNil(t, updated.SuspensionReason)
	assert.Equal(t, "travel", *updated.SuspensionReason)
}

func TestDisableByAdmin(t *testing.T) {
	svc, store := newAccountFixture(t)
	user := seedUser(t, store, "alice", domain.TierDebutant)

	updated, err := svc.Disable(context.Background(), "admin", user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusDisabled, updated.AccountStatus)
	require.NotNil(t, updated.DisabledReason)
	assert.Equal(t, domain.DisabledAdminAction, *updated.DisabledReason)
}

func TestKPICounts(t *testing.T) {
	svc, store := newAccountFixture(t)
	ctx := context.Background()

	plan := seedPlan(t, store, "basic", domain.TierDebutant)

	active := seedUser(t, store, "active", domain.TierDebutant)
	overdue := seedUser(t, store, "overdue", domain.TierDebutant)
	cancelled := seedUser(t, store, "cancelled", domain.TierDebutant)
	suspended := seedUser(t, store, "paused", domain.TierDebutant)
	admin := seedUser(t, store, "boss", domain.TierExpert)
	admin.IsAdmin = true
	require.NoError(t, store.Users().Update(ctx, admin))

	_, err := svc.AssignSubscription(ctx, "admin", active.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)
	_, err = svc.AssignSubscription(ctx, "admin", overdue.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)
	_, err = svc.MarkOverdue(ctx, "admin", overdue.ID)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, "admin", cancelled.ID)
	require.NoError(t, err)
	_, err = svc.Suspend(ctx, "admin", suspended.ID, testNow.AddDate(0, 0, 7), "holiday")
	require.NoError(t, err)

	kpi, err := svc.KPI(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, kpi.Total)  // admin accounts are not members
	assert.Equal(t, 1, kpi.Active) // suspended members are not active
	assert.Equal(t, 1, kpi.Overdue)
	assert.Equal(t, 1, kpi.Cancelled)
	require.Len(t, kpi.OverdueUsers, 1)
	assert.Equal(t, "overdue", kpi.OverdueUsers[0].Username)
	require.Len(t, kpi.CancelledUsers, 1)
	assert.Equal(t, "cancelled", kpi.CancelledUsers[0].Username)
}
