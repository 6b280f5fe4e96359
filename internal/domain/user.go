package domain

import "time"

// AccountStatus represents lifecycle states for a member account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusDisabled  AccountStatus = "disabled"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusCancelled AccountStatus = "cancelled"
)

// DisabledReason qualifies a disabled account.
type DisabledReason string

const (
	DisabledPaymentOverdue DisabledReason = "payment_overdue"
	DisabledAdminAction    DisabledReason = "admin_action"
)

// User is the domain model for portal accounts, members and admins alike.
// Exactly one account status holds at any time; SuspendedUntil is set iff
// the status is suspended.
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string
	Subscription      Tier
	IsAdmin           bool
	AccountStatus     AccountStatus
	DisabledReason    *DisabledReason
	SuspendedUntil    *time.Time
	SuspensionReason  *string
	AssignedProgramID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
