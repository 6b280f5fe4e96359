package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// PlanRepository defines persistence access for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.SubscriptionPlan) error
	Update(ctx context.Context, plan *domain.SubscriptionPlan) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error)
	List(ctx context.Context) ([]domain.SubscriptionPlan, error)
}

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository returns a Postgres-backed implementation.
func NewPlanRepository(pool *pgxpool.Pool) PlanRepository {
	return &planRepository{pool: pool}
}

const planColumns = `id, name, level, monthly_price, annual_price, features,
        app_access, is_family, created_at, updated_at`

func scanPlan(row pgx.Row) (*domain.SubscriptionPlan, error) {
	var plan domain.SubscriptionPlan
	if err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Level,
		&plan.MonthlyPrice,
		&plan.AnnualPrice,
		&plan.Features,
		&plan.AppAccess,
		&plan.IsFamily,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) Create(ctx context.Context, plan *domain.SubscriptionPlan) error {
	const query = `
        INSERT INTO subscription_plans (name, level, monthly_price, annual_price, features, app_access, is_family)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		plan.Name,
		plan.Level,
		plan.MonthlyPrice,
		plan.AnnualPrice,
		plan.Features,
		plan.AppAccess,
		plan.IsFamily,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *planRepository) Update(ctx context.Context, plan *domain.SubscriptionPlan) error {
	const query = `
        UPDATE subscription_plans SET name=$1, level=$2, monthly_price=$3,
            annual_price=$4, features=$5, app_access=$6, is_family=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		plan.Name,
		plan.Level,
		plan.MonthlyPrice,
		plan.AnnualPrice,
		plan.Features,
		plan.AppAccess,
		plan.IsFamily,
		plan.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM subscription_plans WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	const query = `SELECT ` + planColumns + ` FROM subscription_plans WHERE id=$1`
	return scanPlan(r.pool.QueryRow(ctx, query, id))
}

func (r *planRepository) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	const query = `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.SubscriptionPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}
