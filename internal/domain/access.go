package domain

import "time"

// AccessOverride is an admin-set access decision for a (user, course) pair
// that supersedes the tier-based default. At most one override exists per
// pair; the absence of a row is not the same as HasAccess=false.
type AccessOverride struct {
	ID                   string
	UserID               string
	CourseID             string
	HasAccess            bool
	OverrideSubscription bool
	Reason               *string
	GrantedAt            *time.Time
	RevokedAt            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AccessDecision is the resolved access for a (user, course) pair.
type AccessDecision struct {
	HasAccess  bool
	IsOverride bool
	Reason     *string
}
