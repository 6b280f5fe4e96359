package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository"
	"github.com/spec-kit/gym-portal/internal/repository/memory"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

func newProgramFixture(t *testing.T) (*ProgramService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewProgramService(ProgramDependencies{
		ProgramRepo: store.Programs(),
		CourseRepo:  store.Courses(),
		UserRepo:    store.Users(),
	})
	return svc, store
}

func weekOf(courseID string) []DayInput {
	rest := "recovery"
	return []DayInput{
		{DayOfWeek: 0, DayName: "dimanche", IsRestDay: true, RestDescription: &rest},
		{DayOfWeek: 1, DayName: "lundi", CourseIDs: []string{courseID}},
		{DayOfWeek: 3, DayName: "mercredi", CourseIDs: []string{courseID}},
	}
}

func TestCreateProgram(t *testing.T) {
	svc, store := newProgramFixture(t)
	ctx := context.Background()

	course := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")
	program, err := svc.CreateProgram(ctx, ProgramInput{
		Name: "summer shred",
		Days: weekOf(course.ID),
	})
	require.NoError(t, err)
	require.NotEmpty(t, program.ID)

	loaded, err := svc.GetProgram(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, "summer shred", loaded.Name)
	require.Len(t, loaded.Days, 3)
	assert.True(t, loaded.Days[0].IsRestDay)
	assert.Empty(t, loaded.Days[0].CourseIDs)
	assert.Equal(t, []string{course.ID}, loaded.Days[1].CourseIDs)
}

func TestCreateProgramDayValidation(t *testing.T) {
	svc, store := newProgramFixture(t)
	ctx := context.Background()
	course := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")

	tests := []struct {
		name string
		days []DayInput
	}{
		{
			name: "rest day with courses",
			days: []DayInput{{DayOfWeek: 0, DayName: "dimanche", IsRestDay: true, CourseIDs: []string{course.ID}}},
		},
		{
			name: "training day without courses",
			days: []DayInput{{DayOfWeek: 1, DayName: "lundi"}},
		},
		{
			name: "day of week out of range",
			days: []DayInput{{DayOfWeek: 7, DayName: "huitième", CourseIDs: []string{course.ID}}},
		},
		{
			name: "duplicate day of week",
			days: []DayInput{
				{DayOfWeek: 1, DayName: "lundi", CourseIDs: []string{course.ID}},
				{DayOfWeek: 1, DayName: "lundi bis", CourseIDs: []string{course.ID}},
			},
		},
		{
			name: "unknown course",
			days: []DayInput{{DayOfWeek: 1, DayName: "lundi", CourseIDs: []string{"missing"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProgram(ctx, ProgramInput{Name: "p", Days: tt.days})
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

// failingProgramRepo fails day writes after a threshold to exercise the
// compensating delete.
type failingProgramRepo struct {
	repository.ProgramRepository
	failAfter int
	writes    int
}

func (f *failingProgramRepo) CreateDaySchedule(ctx context.Context, day *domain.DaySchedule) error {
	f.writes++
	if f.writes > f.failAfter {
		return errors.New("write failed")
	}
	return f.ProgramRepository.CreateDaySchedule(ctx, day)
}

func TestCreateProgramCompensatesOnFailure(t *testing.T) {
	store := memory.NewStore()
	failing := &failingProgramRepo{ProgramRepository: store.Programs(), failAfter: 1}
	svc := NewProgramService(ProgramDependencies{
		ProgramRepo: failing,
		CourseRepo:  store.Courses(),
		UserRepo:    store.Users(),
	})
	ctx := context.Background()

	course := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")
	_, err := svc.CreateProgram(ctx, ProgramInput{Name: "doomed", Days: weekOf(course.ID)})
	require.Error(t, err)

	// the partially written program is rolled back
	programs, err := store.Programs().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, programs)
}

func TestAssignProgramToUser(t *testing.T) {
	svc, store := newProgramFixture(t)
	ctx := context.Background()

	course := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")
	user := seedUser(t, store, "alice", domain.TierDebutant)
	program, err := svc.CreateProgram(ctx, ProgramInput{Name: "base", Days: weekOf(course.ID)})
	require.NoError(t, err)

	updated, err := svc.AssignToUser(ctx, user.ID, program.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedProgramID)
	assert.Equal(t, program.ID, *updated.AssignedProgramID)

	_, err = svc.AssignToUser(ctx, user.ID, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	updated, err = svc.UnassignFromUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedProgramID)
}

func TestDeleteProgramClearsAssignments(t *testing.T) {
	svc, store := newProgramFixture(t)
	ctx := context.Background()

	course := seedCourse(t, store, "hiit", domain.TierMedium, "cardio")
	user := seedUser(t, store, "alice", domain.TierDebutant)
	program, err := svc.CreateProgram(ctx, ProgramInput{Name: "base", Days: weekOf(course.ID)})
	require.NoError(t, err)
	_, err = svc.AssignToUser(ctx, user.ID, program.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProgram(ctx, program.ID))

	reloaded, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AssignedProgramID)

	_, err = svc.GetProgram(ctx, program.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
