package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// SubscriptionRepository defines persistence access for user subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.UserSubscription) error
	Update(ctx context.Context, sub *domain.UserSubscription) error
	GetByID(ctx context.Context, id string) (*domain.UserSubscription, error)
	// GetCurrentByUser returns the subscription with status active or overdue
	// for the user, or pgx.ErrNoRows.
	GetCurrentByUser(ctx context.Context, userID string) (*domain.UserSubscription, error)
	ListByUser(ctx context.Context, userID string) ([]domain.UserSubscription, error)
	List(ctx context.Context) ([]domain.UserSubscription, error)
	// CountCurrentByPlan counts subscriptions referencing the plan with
	// status active or overdue.
	CountCurrentByPlan(ctx context.Context, planID string) (int, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository returns a Postgres-backed implementation.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

const subscriptionColumns = `id, user_id, plan_id, "interval", app_access, start_date,
        end_date, next_payment_date, status, overdue_date, payment_method,
        created_at, updated_at`

func scanSubscription(row pgx.Row) (*domain.UserSubscription, error) {
	var sub domain.UserSubscription
	if err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PlanID,
		&sub.Interval,
		&sub.AppAccess,
		&sub.StartDate,
		&sub.EndDate,
		&sub.NextPaymentDate,
		&sub.Status,
		&sub.OverdueDate,
		&sub.PaymentMethod,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.UserSubscription) error {
	const query = `
        INSERT INTO user_subscriptions (user_id, plan_id, "interval", app_access, start_date, end_date, next_payment_date, status, payment_method)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		sub.UserID,
		sub.PlanID,
		sub.Interval,
		sub.AppAccess,
		sub.StartDate,
		sub.EndDate,
		sub.NextPaymentDate,
		sub.Status,
		sub.PaymentMethod,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *domain.UserSubscription) error {
	const query = `
        UPDATE user_subscriptions SET plan_id=$1, "interval"=$2, app_access=$3,
            start_date=$4, end_date=$5, next_payment_date=$6, status=$7,
            overdue_date=$8, payment_method=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		sub.PlanID,
		sub.Interval,
		sub.AppAccess,
		sub.StartDate,
		sub.EndDate,
		sub.NextPaymentDate,
		sub.Status,
		sub.OverdueDate,
		sub.PaymentMethod,
		sub.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*domain.UserSubscription, error) {
	const query = `SELECT ` + subscriptionColumns + ` FROM user_subscriptions WHERE id=$1`
	return scanSubscription(r.pool.QueryRow(ctx, query, id))
}

func (r *subscriptionRepository) GetCurrentByUser(ctx context.Context, userID string) (*domain.UserSubscription, error) {
	const query = `
        SELECT ` + subscriptionColumns + ` FROM user_subscriptions
        WHERE user_id=$1 AND status IN ('active', 'overdue')
        ORDER BY created_at DESC LIMIT 1`
	return scanSubscription(r.pool.QueryRow(ctx, query, userID))
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID string) ([]domain.UserSubscription, error) {
	const query = `SELECT ` + subscriptionColumns + ` FROM user_subscriptions WHERE user_id=$1 ORDER BY created_at`
	return r.queryMany(ctx, query, userID)
}

func (r *subscriptionRepository) List(ctx context.Context) ([]domain.UserSubscription, error) {
	const query = `SELECT ` + subscriptionColumns + ` FROM user_subscriptions ORDER BY created_at`
	return r.queryMany(ctx, query)
}

func (r *subscriptionRepository) CountCurrentByPlan(ctx context.Context, planID string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM user_subscriptions
        WHERE plan_id=$1 AND status IN ('active', 'overdue')`

	var count int
	if err := r.pool.QueryRow(ctx, query, planID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subscriptionRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.UserSubscription, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []domain.UserSubscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}
