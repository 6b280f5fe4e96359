package events

import (
	"time"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccessChanged        EventType = "access_changed"
	EventAccountStatusChanged EventType = "account_status_changed"
	EventSubscriptionAssigned EventType = "subscription_assigned"
	EventCourseCreated        EventType = "course_created"
	EventProgramCreated       EventType = "program_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	AdminID   string      `json:"admin_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccessChangedPayload payload.
type AccessChangedPayload struct {
	CourseID   string  `json:"course_id"`
	HasAccess  bool    `json:"has_access"`
	IsOverride bool    `json:"is_override"`
	Reason     *string `json:"reason,omitempty"`
}

// AccountStatusChangedPayload payload.
type AccountStatusChangedPayload struct {
	OldStatus domain.AccountStatus `json:"old_status"`
	NewStatus domain.AccountStatus `json:"new_status"`
	Reason    string               `json:"reason,omitempty"`
}

// SubscriptionAssignedPayload payload.
type SubscriptionAssignedPayload struct {
	PlanID    string                 `json:"plan_id"`
	Interval  domain.PaymentInterval `json:"interval"`
	AppAccess bool                   `json:"app_access"`
}

// CourseCreatedPayload payload.
type CourseCreatedPayload struct {
	Title string      `json:"title"`
	Level domain.Tier `json:"level"`
}

// ProgramCreatedPayload payload.
type ProgramCreatedPayload struct {
	ProgramID string `json:"program_id"`
	Name      string `json:"name"`
}
