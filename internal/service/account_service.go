package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-portal/internal/cache"
	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/events"
	"github.com/spec-kit/gym-portal/internal/repository"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

const kpiCacheKey = "kpi:subscriptions"

// AccountService drives the member account lifecycle and subscription
// assignment. Cancellation is terminal: no operation moves a cancelled
// account to another state.
type AccountService struct {
	users         repository.UserRepository
	subscriptions repository.SubscriptionRepository
	plans         repository.PlanRepository
	dispatcher    events.Dispatcher
	cache         cache.Cache
	kpiTTL        time.Duration
	now           func() time.Time
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	UserRepo         repository.UserRepository
	SubscriptionRepo repository.SubscriptionRepository
	PlanRepo         repository.PlanRepository
	Dispatcher       events.Dispatcher
	Cache            cache.Cache
	KPITTL           time.Duration
	Clock            func() time.Time
}

// MemberBrief is the slim user projection carried in KPI listings.
type MemberBrief struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SubscriptionKPI aggregates membership counts for the admin dashboard.
type SubscriptionKPI struct {
	Total          int           `json:"total"`
	Active         int           `json:"active"`
	Overdue        int           `json:"overdue"`
	Cancelled      int           `json:"cancelled"`
	OverdueUsers   []MemberBrief `json:"overdue_users"`
	CancelledUsers []MemberBrief `json:"cancelled_users"`
}

// NewAccountService constructs the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	svc := &AccountService{
		users:         deps.UserRepo,
		subscriptions: deps.SubscriptionRepo,
		plans:         deps.PlanRepo,
		dispatcher:    deps.Dispatcher,
		cache:         deps.Cache,
		kpiTTL:        deps.KPITTL,
		now:           deps.Clock,
	}
	if svc.cache == nil {
		svc.cache = cache.Noop{}
	}
	if svc.kpiTTL <= 0 {
		svc.kpiTTL = 30 * time.Second
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// MarkOverdue flags the member's current subscription as overdue and disables
// the account for non-payment.
func (s *AccountService) MarkOverdue(ctx context.Context, adminID, userID string) (*domain.User, error) {
	user, err := s.getMutableAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub, err := s.subscriptions.GetCurrentByUser(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewConflict("user has no current subscription", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	now := s.now()
	sub.Status = domain.SubscriptionOverdue
	sub.OverdueDate = &now
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}

	oldStatus := user.AccountStatus
	reason := domain.DisabledPaymentOverdue
	user.AccountStatus = domain.AccountStatusDisabled
	user.DisabledReason = &reason
	user.SuspendedUntil = nil
	user.SuspensionReason = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.afterStatusChange(ctx, adminID, user, oldStatus, "payment overdue")
	return user, nil
}

// Cancel terminates the membership. The current subscription, if any, is
// cancelled alongside the account.
func (s *AccountService) Cancel(ctx context.Context, adminID, userID string) (*domain.User, error) {
	user, err := s.getMutableAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub, err := s.subscriptions.GetCurrentByUser(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if err == nil {
		sub.Status = domain.SubscriptionCancelled
		if err := s.subscriptions.Update(ctx, sub); err != nil {
			return nil, err
		}
	}

	oldStatus := user.AccountStatus
	user.AccountStatus = domain.AccountStatusCancelled
	user.DisabledReason = nil
	user.SuspendedUntil = nil
	user.SuspensionReason = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.afterStatusChange(ctx, adminID, user, oldStatus, "membership cancelled")
	return user, nil
}

// Reactivate restores a disabled or suspended account to active. When an
// overdue subscription exists it is moved back to active and its billing
// term restarts from now for one full interval; an already-active
// subscription keeps its dates.
func (s *AccountService) Reactivate(ctx context.Context, adminID, userID string) (*domain.User, error) {
	user, err := s.getMutableAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub, err := s.subscriptions.GetCurrentByUser(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if err == nil && sub.Status == domain.SubscriptionOverdue {
		now := s.now()
		term := sub.Interval.AddTo(now)
		sub.Status = domain.SubscriptionActive
		sub.OverdueDate = nil
		sub.EndDate = term
		sub.NextPaymentDate = term
		if err := s.subscriptions.Update(ctx, sub); err != nil {
			return nil, err
		}
	}

	oldStatus := user.AccountStatus
	user.AccountStatus = domain.AccountStatusActive
	user.DisabledReason = nil
	user.SuspendedUntil = nil
	user.SuspensionReason = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.afterStatusChange(ctx, adminID, user, oldStatus, "account reactivated")
	return user, nil
}

// Suspend pauses the account until the given date. The date must not lie in
// the past; suspending until the current instant is allowed.
func (s *AccountService) Suspend(ctx context.Context, adminID, userID string, until time.Time, reason string) (*domain.User, error) {
	if until.Before(s.now()) {
		return nil, apperrors.NewValidationError("suspension end must not be in the past", map[string]any{"until": until})
	}

	user, err := s.getMutableAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldStatus := user.AccountStatus
	user.AccountStatus = domain.AccountStatusSuspended
	user.SuspendedUntil = &until
	user.DisabledReason = nil
	user.SuspensionReason = nil
	if reason != "" {
		user.SuspensionReason = &reason
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.afterStatusChange(ctx, adminID, user, oldStatus, reason)
	return user, nil
}

// Disable turns the account off by admin decision, independent of billing.
func (s *AccountService) Disable(ctx context.Context, adminID, userID string) (*domain.User, error) {
	user, err := s.getMutableAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldStatus := user.AccountStatus
	reason := domain.DisabledAdminAction
	user.AccountStatus = domain.AccountStatusDisabled
	user.DisabledReason = &reason
	user.SuspendedUntil = nil
	user.SuspensionReason = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.afterStatusChange(ctx, adminID, user, oldStatus, "disabled by administrator")
	return user, nil
}

// AssignSubscription puts the member on a plan. Any current subscription is
// cancelled first so at most one stays active per user, then the member's
// tier follows the plan level and the account returns to active.
func (s *AccountService) AssignSubscription(ctx context.Context, adminID, userID, planID string, interval domain.PaymentInterval, paymentMethod *string) (*domain.UserSubscription, error) {
	if !interval.Valid() {
		return nil, apperrors.NewValidationError("unknown payment interval", map[string]any{"interval": interval})
	}

	user, err := s.getMutableAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("plan", map[string]any{"plan_id": planID})
		}
		return nil, err
	}

	current, err := s.subscriptions.GetCurrentByUser(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if err == nil {
		current.Status = domain.SubscriptionCancelled
		if err := s.subscriptions.Update(ctx, current); err != nil {
			return nil, err
		}
	}

	now := s.now()
	term := interval.AddTo(now)
	sub := &domain.UserSubscription{
		UserID:          userID,
		PlanID:          plan.ID,
		Interval:        interval,
		AppAccess:       plan.AppAccess,
		StartDate:       now,
		EndDate:         term,
		NextPaymentDate: term,
		Status:          domain.SubscriptionActive,
		PaymentMethod:   paymentMethod,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	oldStatus := user.AccountStatus
	user.Subscription = plan.Level
	user.AccountStatus = domain.AccountStatusActive
	user.DisabledReason = nil
	user.SuspendedUntil = nil
	user.SuspensionReason = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateKPI()
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSubscriptionAssigned,
			UserID:    userID,
			AdminID:   adminID,
			Timestamp: s.now(),
			Payload: events.SubscriptionAssignedPayload{
				PlanID:    plan.ID,
				Interval:  interval,
				AppAccess: plan.AppAccess,
			},
		})
		if oldStatus != user.AccountStatus {
			s.publishStatusChanged(ctx, adminID, user, oldStatus, "subscription assigned")
		}
	}
	return sub, nil
}

// CurrentSubscription returns the member's active or overdue subscription.
func (s *AccountService) CurrentSubscription(ctx context.Context, userID string) (*domain.UserSubscription, error) {
	sub, err := s.subscriptions.GetCurrentByUser(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("subscription", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	return sub, nil
}

// KPI aggregates membership counts over non-admin accounts. Results are
// cached briefly; every lifecycle mutation invalidates the cache.
func (s *AccountService) KPI(ctx context.Context) (*SubscriptionKPI, error) {
	var cached SubscriptionKPI
	if hit, err := s.cache.Get(kpiCacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	kpi := &SubscriptionKPI{OverdueUsers: []MemberBrief{}, CancelledUsers: []MemberBrief{}}
	for i := range users {
		user := &users[i]
		if user.IsAdmin {
			continue
		}
		kpi.Total++
		switch user.AccountStatus {
		case domain.AccountStatusActive:
			kpi.Active++
		case domain.AccountStatusCancelled:
			kpi.Cancelled++
			kpi.CancelledUsers = append(kpi.CancelledUsers, briefOf(user))
		case domain.AccountStatusDisabled:
			if user.DisabledReason != nil && *user.DisabledReason == domain.DisabledPaymentOverdue {
				kpi.Overdue++
				kpi.OverdueUsers = append(kpi.OverdueUsers, briefOf(user))
			}
		}
	}

	_ = s.cache.Set(kpiCacheKey, kpi, s.kpiTTL)
	return kpi, nil
}

// getMutableAccount loads the user and rejects lifecycle changes on
// cancelled accounts.
func (s *AccountService) getMutableAccount(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	if user.AccountStatus == domain.AccountStatusCancelled {
		return nil, apperrors.NewConflict("account is cancelled", map[string]any{"user_id": userID})
	}
	return user, nil
}

func (s *AccountService) afterStatusChange(ctx context.Context, adminID string, user *domain.User, oldStatus domain.AccountStatus, reason string) {
	s.invalidateKPI()
	s.publishStatusChanged(ctx, adminID, user, oldStatus, reason)
}

func (s *AccountService) publishStatusChanged(ctx context.Context, adminID string, user *domain.User, oldStatus domain.AccountStatus, reason string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountStatusChanged,
		UserID:    user.ID,
		AdminID:   adminID,
		Timestamp: s.now(),
		Payload: events.AccountStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: user.AccountStatus,
			Reason:    reason,
		},
	})
}

func (s *AccountService) invalidateKPI() {
	_ = s.cache.Invalidate(kpiCacheKey)
}

func briefOf(user *domain.User) MemberBrief {
	return MemberBrief{ID: user.ID, Username: user.Username, Email: user.Email}
}
