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

// ProgramService manages weekly workout programs and their assignment to
// members.
type ProgramService struct {
	programs   repository.ProgramRepository
	courses    repository.CourseRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ProgramDependencies bundles repositories for the program service.
type ProgramDependencies struct {
	ProgramRepo repository.ProgramRepository
	CourseRepo  repository.CourseRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewProgramService constructs the service.
func NewProgramService(deps ProgramDependencies) *ProgramService {
	return &ProgramService{
		programs:   deps.ProgramRepo,
		courses:    deps.CourseRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// DayInput describes one day of a program payload.
type DayInput struct {
	DayOfWeek       int
	DayName         string
	IsRestDay       bool
	RestDescription *string
	CourseIDs       []string
}

// ProgramInput describes a program creation payload.
type ProgramInput struct {
	Name        string
	Description *string
	Days        []DayInput
}

// CreateProgram writes the program and its day schedules. Days are written
// one by one; if any write fails the program row is deleted again so no
// half-built program remains.
func (s *ProgramService) CreateProgram(ctx context.Context, input ProgramInput) (*domain.WeeklyProgram, error) {
	if err := s.validateDays(ctx, input.Days); err != nil {
		return nil, err
	}

	program := &domain.WeeklyProgram{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.programs.CreateProgram(ctx, program); err != nil {
		return nil, err
	}

	for _, dayInput := range input.Days {
		day := &domain.DaySchedule{
			ProgramID:       program.ID,
			DayOfWeek:       dayInput.DayOfWeek,
			DayName:         dayInput.DayName,
			IsRestDay:       dayInput.IsRestDay,
			RestDescription: dayInput.RestDescription,
			CourseIDs:       dayInput.CourseIDs,
		}
		if err := s.programs.CreateDaySchedule(ctx, day); err != nil {
			_ = s.programs.DeleteProgram(ctx, program.ID)
			return nil, err
		}
		program.Days = append(program.Days, *day)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProgramCreated,
			Timestamp: time.Now(),
			Payload:   events.ProgramCreatedPayload{ProgramID: program.ID, Name: program.Name},
		})
	}
	return program, nil
}

// DeleteProgram removes a program. Members assigned to it keep working out
// unassigned.
func (s *ProgramService) DeleteProgram(ctx context.Context, id string) error {
	if _, err := s.GetProgram(ctx, id); err != nil {
		return err
	}
	if err := s.programs.DeleteProgram(ctx, id); err != nil {
		return err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		user := &users[i]
		if user.AssignedProgramID != nil && *user.AssignedProgramID == id {
			user.AssignedProgramID = nil
			if err := s.users.Update(ctx, user); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetProgram returns one program with its days.
func (s *ProgramService) GetProgram(ctx context.Context, id string) (*domain.WeeklyProgram, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("program", map[string]any{"program_id": id})
		}
		return nil, err
	}
	return program, nil
}

// ListPrograms returns every program.
func (s *ProgramService) ListPrograms(ctx context.Context) ([]domain.WeeklyProgram, error) {
	return s.programs.List(ctx)
}

// AssignToUser points a member at a program.
func (s *ProgramService) AssignToUser(ctx context.Context, userID, programID string) (*domain.User, error) {
	if _, err := s.GetProgram(ctx, programID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	user.AssignedProgramID = &programID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UnassignFromUser clears a member's program.
func (s *ProgramService) UnassignFromUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	user.AssignedProgramID = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// validateDays enforces the day invariants: day numbers stay in 0-6 without
// duplicates, rest days carry no courses, training days carry at least one
// existing course.
func (s *ProgramService) validateDays(ctx context.Context, days []DayInput) error {
	seen := make(map[int]bool, len(days))
	for _, day := range days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return apperrors.NewValidationError("day_of_week must be between 0 and 6", map[string]any{"day_of_week": day.DayOfWeek})
		}
		if seen[day.DayOfWeek] {
			return apperrors.NewValidationError("duplicate day_of_week", map[string]any{"day_of_week": day.DayOfWeek})
		}
		seen[day.DayOfWeek] = true

		if day.IsRestDay {
			if len(day.CourseIDs) > 0 {
				return apperrors.NewValidationError("rest day cannot reference courses", map[string]any{"day_of_week": day.DayOfWeek})
			}
			continue
		}
		if len(day.CourseIDs) == 0 {
			return apperrors.NewValidationError("training day needs at least one course", map[string]any{"day_of_week": day.DayOfWeek})
		}
		for _, courseID := range day.CourseIDs {
			if _, err := s.courses.GetByID(ctx, courseID); err != nil {
				if err == pgx.ErrNoRows {
					return apperrors.NewValidationError("unknown course in schedule", map[string]any{"course_id": courseID})
				}
				return err
			}
		}
	}
	return nil
}
