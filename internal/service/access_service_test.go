package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository/memory"
)

func newAccessFixture(t *testing.T) (*AccessService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewAccessService(AccessDependencies{
		UserRepo:     store.Users(),
		CourseRepo:   store.Courses(),
		OverrideRepo: store.AccessOverrides(),
	})
	return svc, store
}

func seedUser(t *testing.T, store *memory.Store, username string, tier domain.Tier) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "x",
		Subscription:  tier,
		AccountStatus: domain.AccountStatusActive,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func seedCourse(t *testing.T, store *memory.Store, title string, level domain.Tier, category string) *domain.Course {
	t.Helper()
	course := &domain.Course{
		Title:      title,
		VideoURL:   "https://videos.example.com/" + title,
		Level:      level,
		Category:   category,
		Duration:   45,
		Instructor: "coach",
	}
	require.NoError(t, store.Courses().Create(context.Background(), course))
	return course
}

func TestResolveTierDefaults(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	users := map[domain.Tier]*domain.User{
		domain.TierDebutant: seedUser(t, store, "deb", domain.TierDebutant),
		domain.TierMedium:   seedUser(t, store, "med", domain.TierMedium),
		domain.TierExpert:   seedUser(t, store, "exp", domain.TierExpert),
	}
	courses := map[domain.Tier]*domain.Course{
		domain.TierDebutant: seedCourse(t, store, "stretching", domain.TierDebutant, "mobility"),
		domain.TierMedium:   seedCourse(t, store, "hiit", domain.TierMedium, "cardio"),
		domain.TierExpert:   seedCourse(t, store, "oly-lifting", domain.TierExpert, "strength"),
	}

	tests := []struct {
		name   string
		user   domain.Tier
		course domain.Tier
		want   bool
	}{
		{name: "debutant reaches debutant course", user: domain.TierDebutant, course: domain.TierDebutant, want: true},
		{name: "debutant locked out of medium course", user: domain.TierDebutant, course: domain.TierMedium, want: false},
		{name: "debutant locked out of expert course", user: domain.TierDebutant, course: domain.TierExpert, want: false},
		{name: "medium reaches debutant course", user: domain.TierMedium, course: domain.TierDebutant, want: true},
		{name: "medium reaches medium course", user: domain.TierMedium, course: domain.TierMedium, want: true},
		{name: "medium locked out of expert course", user: domain.TierMedium, course: domain.TierExpert, want: false},
		{name: "expert reaches every course", user: domain.TierExpert, course: domain.TierExpert, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := svc.Resolve(ctx, users[tt.user].ID, courses[tt.course].ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decision.HasAccess)
			assert.False(t, decision.IsOverride)
		})
	}
}

func TestResolveUnknownIDs(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	user := seedUser(t, store, "deb", domain.TierDebutant)
	course := seedCourse(t, store, "stretching", domain.TierDebutant, "mobility")

	_, err := svc.Resolve(ctx, "missing", course.ID)
	assert.Error(t, err)
	_, err = svc.Resolve(ctx, user.ID, "missing")
	assert.Error(t, err)
}

func TestResolveIgnoresRowWithoutOverrideFlag(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	deb := seedUser(t, store, "deb", domain.TierDebutant)
	course := seedCourse(t, store, "oly-lifting", domain.TierExpert, "strength")

	// a stored row only wins when its override flag is set; otherwise the
	// tier default stands
	row := &domain.AccessOverride{
		UserID:               deb.ID,
		CourseID:             course.ID,
		HasAccess:            true,
		OverrideSubscription: false,
	}
	require.NoError(t, store.AccessOverrides().Upsert(ctx, row))

	decision, err := svc.Resolve(ctx, deb.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
	assert.False(t, decision.IsOverride)

	access, err := svc.ListForUser(ctx, deb.ID)
	require.NoError(t, err)
	assert.Empty(t, access.Available)
	require.Len(t, access.Locked, 1)
	assert.False(t, access.Locked[0].Access.IsOverride)
}

func TestSetAccessOverrideWinsOverDefault(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	deb := seedUser(t, store, "deb", domain.TierDebutant)
	exp := seedUser(t, store, "exp", domain.TierExpert)
	expertCourse := seedCourse(t, store, "oly-lifting", domain.TierExpert, "strength")
	easyCourse := seedCourse(t, store, "stretching", domain.TierDebutant, "mobility")

	// grant above tier
	decision, err := svc.SetAccess(ctx, "admin", deb.ID, expertCourse.ID, true, nil)
	require.NoError(t, err)
	assert.True(t, decision.HasAccess)
	assert.True(t, decision.IsOverride)
	require.NotNil(t, decision.Reason)
	assert.Equal(t, "access granted by administrator", *decision.Reason)

	// revoke below tier
	reason := "behavioural"
	decision, err = svc.SetAccess(ctx, "admin", exp.ID, easyCourse.ID, false, &reason)
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
	assert.True(t, decision.IsOverride)
	require.NotNil(t, decision.Reason)
	assert.Equal(t, "behavioural", *decision.Reason)

	// resolve confirms the stored overrides win
	resolved, err := svc.Resolve(ctx, deb.ID, expertCourse.ID)
	require.NoError(t, err)
	assert.True(t, resolved.HasAccess)
	assert.True(t, resolved.IsOverride)

	resolved, err = svc.Resolve(ctx, exp.ID, easyCourse.ID)
	require.NoError(t, err)
	assert.False(t, resolved.HasAccess)
	assert.True(t, resolved.IsOverride)
}

func TestSetAccessIsIdempotent(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	deb := seedUser(t, store, "deb", domain.TierDebutant)
	course := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")

	first, err := svc.SetAccess(ctx, "admin", deb.ID, course.ID, true, nil)
	require.NoError(t, err)
	second, err := svc.SetAccess(ctx, "admin", deb.ID, course.ID, true, nil)
	require.NoError(t, err)
	assert.Equal(t, first.HasAccess, second.HasAccess)
	assert.Equal(t, first.IsOverride, second.IsOverride)

	overrides, err := svc.ListOverrides(ctx)
	require.NoError(t, err)
	assert.Len(t, overrides, 1)
}

func TestSetAccessMatchingDefaultClearsOverride(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	deb := seedUser(t, store, "deb", domain.TierDebutant)
	course := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")

	_, err := svc.SetAccess(ctx, "admin", deb.ID, course.ID, true, nil)
	require.NoError(t, err)
	overrides, err := svc.ListOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, overrides, 1)

	// setting back to the tier default drops the stored row
	decision, err := svc.SetAccess(ctx, "admin", deb.ID, course.ID, false, nil)
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
	assert.False(t, decision.IsOverride)

	overrides, err = svc.ListOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestRemoveOverrideRevertsToDefault(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	deb := seedUser(t, store, "deb", domain.TierDebutant)
	course := seedCourse(t, store, "oly-lifting", domain.TierExpert, "strength")

	_, err := svc.SetAccess(ctx, "admin", deb.ID, course.ID, true, nil)
	require.NoError(t, err)

	decision, err := svc.RemoveOverride(ctx, "admin", deb.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
	assert.False(t, decision.IsOverride)

	// removing again is still fine
	decision, err = svc.RemoveOverride(ctx, "admin", deb.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
}

func TestListForUserPartitions(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	med := seedUser(t, store, "med", domain.TierMedium)
	easy := seedCourse(t, store, "stretching", domain.TierDebutant, "mobility")
	mid := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")
	hard := seedCourse(t, store, "oly-lifting", domain.TierExpert, "strength")

	// override grants the expert course, another revokes the easy one
	_, err := svc.SetAccess(ctx, "admin", med.ID, hard.ID, true, nil)
	require.NoError(t, err)
	_, err = svc.SetAccess(ctx, "admin", med.ID, easy.ID, false, nil)
	require.NoError(t, err)

	access, err := svc.ListForUser(ctx, med.ID)
	require.NoError(t, err)

	availableIDs := []string{}
	for _, item := range access.Available {
		availableIDs = append(availableIDs, item.Course.ID)
	}
	lockedIDs := []string{}
	for _, item := range access.Locked {
		lockedIDs = append(lockedIDs, item.Course.ID)
	}

	assert.ElementsMatch(t, []string{mid.ID, hard.ID}, availableIDs)
	assert.ElementsMatch(t, []string{easy.ID}, lockedIDs)
}

func TestGroupByCategoryKeepsFirstSeenOrder(t *testing.T) {
	svc, store := newAccessFixture(t)
	ctx := context.Background()

	exp := seedUser(t, store, "exp", domain.TierExpert)
	seedCourse(t, store, "stretching", domain.TierDebutant, "mobility")
	seedCourse(t, store, "hiit", domain.TierMedium, "cardio")
	seedCourse(t, store, "yoga", domain.TierDebutant, "mobility")
	seedCourse(t, store, "sprints", domain.TierMedium, "cardio")

	access, err := svc.ListForUser(ctx, exp.ID)
	require.NoError(t, err)

	groups := GroupByCategory(access.Available)
	require.Len(t, groups, 2)
	assert.Equal(t, "mobility", groups[0].Category)
	assert.Equal(t, "cardio", groups[1].Category)
	assert.Len(t, groups[0].Courses, 2)
	assert.Len(t, groups[1].Courses, 2)
	assert.Equal(t, "stretching", groups[0].Courses[0].Course.Title)
	assert.Equal(t, "yoga", groups[0].Courses[1].Course.Title)
}
