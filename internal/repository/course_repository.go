package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// CourseRepository defines persistence access for the course catalog.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository returns a Postgres-backed implementation.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

const courseColumns = `id, title, description, video_url, level, category,
        duration, instructor, thumbnail, created_at, updated_at`

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.VideoURL,
		&course.Level,
		&course.Category,
		&course.Duration,
		&course.Instructor,
		&course.Thumbnail,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (title, description, video_url, level, category, duration, instructor, thumbnail)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.VideoURL,
		course.Level,
		course.Category,
		course.Duration,
		course.Instructor,
		course.Thumbnail,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	const query = `
        UPDATE courses SET title=$1, description=$2, video_url=$3, level=$4,
            category=$5, duration=$6, instructor=$7, thumbnail=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		course.Title,
		course.Description,
		course.VideoURL,
		course.Level,
		course.Category,
		course.Duration,
		course.Instructor,
		course.Thumbnail,
		course.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM courses WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id=$1`
	return scanCourse(r.pool.QueryRow(ctx, query, id))
}

func (r *courseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}
