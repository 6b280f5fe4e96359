package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/events"
	"github.com/spec-kit/gym-portal/internal/repository"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

// Default reasons recorded when an admin toggles access without providing one.
const (
	reasonGrantedByAdmin = "access granted by administrator"
	reasonRevokedByAdmin = "access revoked by administrator"
)

// AccessService resolves course access for members. Access follows the tier
// ladder by default; a stored override wins over the default in every case.
type AccessService struct {
	users      repository.UserRepository
	courses    repository.CourseRepository
	overrides  repository.AccessOverrideRepository
	dispatcher events.Dispatcher
}

// AccessDependencies bundles repositories for the access service.
type AccessDependencies struct {
	UserRepo     repository.UserRepository
	CourseRepo   repository.CourseRepository
	OverrideRepo repository.AccessOverrideRepository
	Dispatcher   events.Dispatcher
}

// CourseAccess pairs a course with its resolved decision.
type CourseAccess struct {
	Course domain.Course
	Access domain.AccessDecision
}

// UserCourseAccess partitions the catalog for one member.
type UserCourseAccess struct {
	Available []CourseAccess
	Locked    []CourseAccess
}

// CategoryGroup holds courses sharing a category, in catalog order.
type CategoryGroup struct {
	Category string
	Courses  []CourseAccess
}

// NewAccessService constructs the service.
func NewAccessService(deps AccessDependencies) *AccessService {
	return &AccessService{
		users:      deps.UserRepo,
		courses:    deps.CourseRepo,
		overrides:  deps.OverrideRepo,
		dispatcher: deps.Dispatcher,
	}
}

// DefaultAccess applies the tier ladder: a member reaches a course when their
// subscription tier ranks at or above the course level.
func (s *AccessService) DefaultAccess(user *domain.User, course *domain.Course) bool {
	return user.Subscription.AtLeast(course.Level)
}

// Resolve returns the access decision for one (user, course) pair. A stored
// row supersedes the tier default only when its override flag is set; rows
// without the flag fall back to subscription-based access.
func (s *AccessService) Resolve(ctx context.Context, userID, courseID string) (*domain.AccessDecision, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("course", map[string]any{"course_id": courseID})
		}
		return nil, err
	}

	override, err := s.overrides.Get(ctx, userID, courseID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if err == nil && override.OverrideSubscription {
		return &domain.AccessDecision{
			HasAccess:  override.HasAccess,
			IsOverride: true,
			Reason:     override.Reason,
		}, nil
	}
	return &domain.AccessDecision{HasAccess: s.DefaultAccess(user, course)}, nil
}

// SetAccess records an admin decision for a (user, course) pair. When the
// requested value matches the tier default the stored override is cleared
// instead, so the pair falls back to subscription-based access. The call is
// idempotent. The read and the write are separate statements; concurrent
// toggles on the same pair resolve to whichever write lands last.
func (s *AccessService) SetAccess(ctx context.Context, adminID, userID, courseID string, hasAccess bool, reason *string) (*domain.AccessDecision, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("course", map[string]any{"course_id": courseID})
		}
		return nil, err
	}

	defaultAccess := s.DefaultAccess(user, course)
	var decision *domain.AccessDecision
	if hasAccess == defaultAccess {
		if err := s.overrides.Remove(ctx, userID, courseID); err != nil {
			return nil, err
		}
		decision = &domain.AccessDecision{HasAccess: defaultAccess}
	} else {
		now := time.Now()
		override := &domain.AccessOverride{
			UserID:               userID,
			CourseID:             courseID,
			HasAccess:            hasAccess,
			OverrideSubscription: true,
			Reason:               reason,
		}
		if override.Reason == nil {
			defaultReason := reasonRevokedByAdmin
			if hasAccess {
				defaultReason = reasonGrantedByAdmin
			}
			override.Reason = &defaultReason
		}
		if hasAccess {
			override.GrantedAt = &now
		} else {
			override.RevokedAt = &now
		}
		if err := s.overrides.Upsert(ctx, override); err != nil {
			return nil, err
		}
		decision = &domain.AccessDecision{
			HasAccess:  override.HasAccess,
			IsOverride: true,
			Reason:     override.Reason,
		}
	}

	s.publishAccessChanged(ctx, adminID, userID, courseID, decision)
	return decision, nil
}

// RemoveOverride clears any stored decision so the pair reverts to the tier
// default. Removing a missing override succeeds.
func (s *AccessService) RemoveOverride(ctx context.Context, adminID, userID, courseID string) (*domain.AccessDecision, error) {
	if err := s.overrides.Remove(ctx, userID, courseID); err != nil {
		return nil, err
	}
	decision, err := s.Resolve(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	s.publishAccessChanged(ctx, adminID, userID, courseID, decision)
	return decision, nil
}

// ListOverrides returns every stored override.
func (s *AccessService) ListOverrides(ctx context.Context) ([]domain.AccessOverride, error) {
	return s.overrides.List(ctx)
}

// ListForUser resolves the whole catalog for one member and partitions it
// into available and locked courses.
func (s *AccessService) ListForUser(ctx context.Context, userID string) (*UserCourseAccess, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrides.List(ctx)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[string]*domain.AccessOverride, len(overrides))
	for i := range overrides {
		if overrides[i].UserID == userID {
			byCourse[overrides[i].CourseID] = &overrides[i]
		}
	}

	result := &UserCourseAccess{Available: []CourseAccess{}, Locked: []CourseAccess{}}
	for _, course := range courses {
		decision := domain.AccessDecision{HasAccess: user.Subscription.AtLeast(course.Level)}
		if override, ok := byCourse[course.ID]; ok && override.OverrideSubscription {
			decision = domain.AccessDecision{
				HasAccess:  override.HasAccess,
				IsOverride: true,
				Reason:     override.Reason,
			}
		}
		entry := CourseAccess{Course: course, Access: decision}
		if decision.HasAccess {
			result.Available = append(result.Available, entry)
		} else {
			result.Locked = append(result.Locked, entry)
		}
	}
	return result, nil
}

// GroupByCategory buckets resolved courses by category, keeping categories in
// first-seen order and courses in catalog order within each bucket.
func GroupByCategory(items []CourseAccess) []CategoryGroup {
	index := make(map[string]int)
	groups := []CategoryGroup{}
	for _, item := range items {
		pos, ok := index[item.Course.Category]
		if !ok {
			pos = len(groups)
			index[item.Course.Category] = pos
			groups = append(groups, CategoryGroup{Category: item.Course.Category})
		}
		groups[pos].Courses = append(groups[pos].Courses, item)
	}
	return groups
}

func (s *AccessService) publishAccessChanged(ctx context.Context, adminID, userID, courseID string, decision *domain.AccessDecision) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccessChanged,
		UserID:    userID,
		AdminID:   adminID,
		Timestamp: time.Now(),
		Payload: events.AccessChangedPayload{
			CourseID:   courseID,
			HasAccess:  decision.HasAccess,
			IsOverride: decision.IsOverride,
			Reason:     decision.Reason,
		},
	})
}
