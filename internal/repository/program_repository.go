package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// ProgramRepository defines persistence access for weekly programs. Programs
// and their day schedules are written in separate steps; the service layer
// performs a compensating delete of the program when a nested write fails.
type ProgramRepository interface {
	CreateProgram(ctx context.Context, program *domain.WeeklyProgram) error
	CreateDaySchedule(ctx context.Context, day *domain.DaySchedule) error
	DeleteProgram(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.WeeklyProgram, error)
	List(ctx context.Context) ([]domain.WeeklyProgram, error)
}

type programRepository struct {
	pool *pgxpool.Pool
}

// NewProgramRepository returns a Postgres-backed implementation.
func NewProgramRepository(pool *pgxpool.Pool) ProgramRepository {
	return &programRepository{pool: pool}
}

func (r *programRepository) CreateProgram(ctx context.Context, program *domain.WeeklyProgram) error {
	const query = `
        INSERT INTO weekly_programs (name, description)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		program.Name,
		program.Description,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
}

func (r *programRepository) CreateDaySchedule(ctx context.Context, day *domain.DaySchedule) error {
	const dayQuery = `
        INSERT INTO day_schedules (program_id, day_of_week, day_name, is_rest_day, rest_description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	if err := r.pool.QueryRow(ctx, dayQuery,
		day.ProgramID,
		day.DayOfWeek,
		day.DayName,
		day.IsRestDay,
		day.RestDescription,
	).Scan(&day.ID); err != nil {
		return err
	}

	const courseQuery = `
        INSERT INTO schedule_courses (schedule_id, course_id, order_index)
        VALUES ($1, $2, $3)`

	for i, courseID := range day.CourseIDs {
		if _, err := r.pool.Exec(ctx, courseQuery, day.ID, courseID, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *programRepository) DeleteProgram(ctx context.Context, id string) error {
	const query = `DELETE FROM weekly_programs WHERE id=$1`

	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *programRepository) GetByID(ctx context.Context, id string) (*domain.WeeklyProgram, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM weekly_programs WHERE id=$1`

	var program domain.WeeklyProgram
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Name,
		&program.Description,
		&program.CreatedAt,
		&program.UpdatedAt,
	); err != nil {
		return nil, err
	}

	days, err := r.loadDays(ctx, program.ID)
	if err != nil {
		return nil, err
	}
	program.Days = days
	return &program, nil
}

func (r *programRepository) List(ctx context.Context) ([]domain.WeeklyProgram, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM weekly_programs ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := []domain.WeeklyProgram{}
	for rows.Next() {
		var program domain.WeeklyProgram
		if err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.Description,
			&program.CreatedAt,
			&program.UpdatedAt,
		); err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range programs {
		days, err := r.loadDays(ctx, programs[i].ID)
		if err != nil {
			return nil, err
		}
		programs[i].Days = days
	}
	return programs, nil
}

func (r *programRepository) loadDays(ctx context.Context, programID string) ([]domain.DaySchedule, error) {
	const dayQuery = `
        SELECT id, program_id, day_of_week, day_name, is_rest_day, rest_description
        FROM day_schedules WHERE program_id=$1 ORDER BY day_of_week`

	rows, err := r.pool.Query(ctx, dayQuery, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []domain.DaySchedule{}
	for rows.Next() {
		var day domain.DaySchedule
		if err := rows.Scan(
			&day.ID,
			&day.ProgramID,
			&day.DayOfWeek,
			&day.DayName,
			&day.IsRestDay,
			&day.RestDescription,
		); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range days {
		courseIDs, err := r.loadScheduleCourses(ctx, days[i].ID)
		if err != nil {
			return nil, err
		}
		days[i].CourseIDs = courseIDs
	}
	return days, nil
}

func (r *programRepository) loadScheduleCourses(ctx context.Context, scheduleID string) ([]string, error) {
	const query = `
        SELECT course_id FROM schedule_courses
        WHERE schedule_id=$1 ORDER BY order_index`

	rows, err := r.pool.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courseIDs := []string{}
	for rows.Next() {
		var courseID string
		if err := rows.Scan(&courseID); err != nil {
			return nil, err
		}
		courseIDs = append(courseIDs, courseID)
	}
	return courseIDs, rows.Err()
}
