package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// AccessOverrideRepository defines persistence access for per-pair course
// access overrides. Get returns pgx.ErrNoRows when no override exists for the
// pair; Remove on a missing pair is a no-op.
type AccessOverrideRepository interface {
	Upsert(ctx context.Context, override *domain.AccessOverride) error
	Remove(ctx context.Context, userID, courseID string) error
	Get(ctx context.Context, userID, courseID string) (*domain.AccessOverride, error)
	List(ctx context.Context) ([]domain.AccessOverride, error)
}

type accessOverrideRepository struct {
	pool *pgxpool.Pool
}

// NewAccessOverrideRepository returns a Postgres-backed implementation.
func NewAccessOverrideRepository(pool *pgxpool.Pool) AccessOverrideRepository {
	return &accessOverrideRepository{pool: pool}
}

const overrideColumns = `id, user_id, course_id, has_access, override_subscription,
        reason, granted_at, revoked_at, created_at, updated_at`

func scanOverride(row pgx.Row) (*domain.AccessOverride, error) {
	var o domain.AccessOverride
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.CourseID,
		&o.HasAccess,
		&o.OverrideSubscription,
		&o.Reason,
		&o.GrantedAt,
		&o.RevokedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *accessOverrideRepository) Upsert(ctx context.Context, override *domain.AccessOverride) error {
	const query = `
        INSERT INTO user_course_access (user_id, course_id, has_access, override_subscription, reason, granted_at, revoked_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (user_id, course_id) DO UPDATE SET
            has_access=EXCLUDED.has_access,
            override_subscription=EXCLUDED.override_subscription,
            reason=EXCLUDED.reason,
            granted_at=EXCLUDED.granted_at,
            revoked_at=EXCLUDED.revoked_at,
            updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		override.UserID,
		override.CourseID,
		override.HasAccess,
		override.OverrideSubscription,
		override.Reason,
		override.GrantedAt,
		override.RevokedAt,
	).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)
}

func (r *accessOverrideRepository) Remove(ctx context.Context, userID, courseID string) error {
	const query = `DELETE FROM user_course_access WHERE user_id=$1 AND course_id=$2`

	_, err := r.pool.Exec(ctx, query, userID, courseID)
	return err
}

func (r *accessOverrideRepository) Get(ctx context.Context, userID, courseID string) (*domain.AccessOverride, error) {
	const query = `SELECT ` + overrideColumns + ` FROM user_course_access WHERE user_id=$1 AND course_id=$2`
	return scanOverride(r.pool.QueryRow(ctx, query, userID, courseID))
}

func (r *accessOverrideRepository) List(ctx context.Context) ([]domain.AccessOverride, error) {
	const query = `SELECT ` + overrideColumns + ` FROM user_course_access ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := []domain.AccessOverride{}
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, *o)
	}
	return overrides, rows.Err()
}
