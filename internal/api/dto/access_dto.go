package dto

import (
	"time"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/service"
)

// SetAccessRequest payload. HasAccess is a pointer so an absent field fails
// validation instead of defaulting to revoke.
type SetAccessRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	CourseID  string  `json:"course_id" validate:"required"`
	HasAccess *bool   `json:"has_access" validate:"required"`
	Reason    *string `json:"reason"`
}

// AccessDecisionResponse projection.
type AccessDecisionResponse struct {
	HasAccess  bool    `json:"has_access"`
	IsOverride bool    `json:"is_override"`
	Reason     *string `json:"reason,omitempty"`
}

// NewAccessDecisionResponse maps a resolved decision.
func NewAccessDecisionResponse(decision *domain.AccessDecision) AccessDecisionResponse {
	return AccessDecisionResponse{
		HasAccess:  decision.HasAccess,
		IsOverride: decision.IsOverride,
		Reason:     decision.Reason,
	}
}

// OverrideResponse projection of a stored override.
type OverrideResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	CourseID  string     `json:"course_id"`
	HasAccess bool       `json:"has_access"`
	Reason    *string    `json:"reason,omitempty"`
	GrantedAt *time.Time `json:"granted_at,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewOverrideResponses maps stored overrides.
func NewOverrideResponses(overrides []domain.AccessOverride) []OverrideResponse {
	out := make([]OverrideResponse, 0, len(overrides))
	for i := range overrides {
		o := &overrides[i]
		out = append(out, OverrideResponse{
			ID:        o.ID,
			UserID:    o.UserID,
			CourseID:  o.CourseID,
			HasAccess: o.HasAccess,
			Reason:    o.Reason,
			GrantedAt: o.GrantedAt,
			RevokedAt: o.RevokedAt,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		})
	}
	return out
}

// CourseAccessResponse pairs a course with its resolved decision.
type CourseAccessResponse struct {
	Course CourseResponse         `json:"course"`
	Access AccessDecisionResponse `json:"access"`
}

// UserAccessResponse partitions the catalog for one member.
type UserAccessResponse struct {
	Available []CourseAccessResponse `json:"available"`
	Locked    []CourseAccessResponse `json:"locked"`
}

// CategoryGroupResponse buckets resolved courses by category.
type CategoryGroupResponse struct {
	Category string                 `json:"category"`
	Courses  []CourseAccessResponse `json:"courses"`
}

// NewCourseAccessResponses maps resolved course entries.
func NewCourseAccessResponses(items []service.CourseAccess) []CourseAccessResponse {
	out := make([]CourseAccessResponse, 0, len(items))
	for i := range items {
		out = append(out, CourseAccessResponse{
			Course: NewCourseResponse(&items[i].Course),
			Access: NewAccessDecisionResponse(&items[i].Access),
		})
	}
	return out
}

// NewUserAccessResponse maps a partitioned catalog.
func NewUserAccessResponse(access *service.UserCourseAccess) UserAccessResponse {
	return UserAccessResponse{
		Available: NewCourseAccessResponses(access.Available),
		Locked:    NewCourseAccessResponses(access.Locked),
	}
}

// NewCategoryGroupResponses maps category buckets.
func NewCategoryGroupResponses(groups []service.CategoryGroup) []CategoryGroupResponse {
	out := make([]CategoryGroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, CategoryGroupResponse{
			Category: groups[i].Category,
			Courses:  NewCourseAccessResponses(groups[i].Courses),
		})
	}
	return out
}
