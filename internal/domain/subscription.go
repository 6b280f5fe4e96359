package domain

import "time"

// PaymentInterval determines the billing term length.
type PaymentInterval string

const (
	IntervalMonthly PaymentInterval = "mensuel"
	IntervalAnnual  PaymentInterval = "annuel"
)

// Valid reports whether the interval is a known billing period.
func (i PaymentInterval) Valid() bool {
	return i == IntervalMonthly || i == IntervalAnnual
}

// AddTo returns t advanced by one billing term.
func (i PaymentInterval) AddTo(t time.Time) time.Time {
	if i == IntervalAnnual {
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 1, 0)
}

// SubscriptionPlan is a sellable membership plan.
type SubscriptionPlan struct {
	ID           string
	Name         string
	Level        Tier
	MonthlyPrice float64
	AnnualPrice  float64
	Features     []string
	AppAccess    bool
	IsFamily     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubscriptionStatus enumerates billing states of a user subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionOverdue   SubscriptionStatus = "overdue"
)

// UserSubscription binds a user to a plan for a billing term. At most one
// subscription per user is active or overdue at a time.
type UserSubscription struct {
	ID              string
	UserID          string
	PlanID          string
	Interval        PaymentInterval
	AppAccess       bool
	StartDate       time.Time
	EndDate         time.Time
	NextPaymentDate time.Time
	Status          SubscriptionStatus
	OverdueDate     *time.Time
	PaymentMethod   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
