package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"council-backend/internal/billing"
	"council-backend/internal/models"
)

type SubscriptionRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO waste_subscriptions (customer_id, fee_amount, frequency, start_month, end_month, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		sub.CustomerID,
		sub.FeeAmount,
		sub.Frequency,
		sub.StartMonth,
		sub.EndMonth,
		sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := row.Scan(
		&sub.ID,
		&sub.CustomerID,
		&sub.FeeAmount,
		&sub.Frequency,
		&sub.StartMonth,
		&sub.EndMonth,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

const subscriptionColumns = `
	id, customer_id, fee_amount, frequency, start_month, COALESCE(end_month, ''),
	status, created_at, updated_at
`

func (r *SubscriptionRepository) GetByID(ctx context.Context, id int) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM waste_subscriptions WHERE id = $1`

	sub, err := scanSubscription(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("subscription", strconv.Itoa(id))
	}
	return sub, err
}

// ListActive returns active subscriptions, optionally narrowed to one
// customer. Order is stable so batch generation is deterministic.
func (r *SubscriptionRepository) ListActive(ctx context.Context, customerID *int) ([]*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + `
		FROM waste_subscriptions
		WHERE status = 'ACTIVE' AND ($1::int IS NULL OR customer_id = $1)
		ORDER BY customer_id, id`

	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (r *SubscriptionRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + `
		FROM waste_subscriptions
		WHERE customer_id = $1
		ORDER BY id`

	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id int, status billing.SubscriptionStatus) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE waste_subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return billing.NotFound("subscription", strconv.Itoa(id))
	}
	return nil
}
