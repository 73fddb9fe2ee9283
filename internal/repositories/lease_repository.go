package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"council-backend/internal/billing"
	"council-backend/internal/models"
)

type LeaseRepository struct {
	DB *pgxpool.Pool
}

func NewLeaseRepository(db *pgxpool.Pool) *LeaseRepository {
	return &LeaseRepository{DB: db}
}

func (r *LeaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	query := `
		INSERT INTO leases (land_name, tenant_name, agreement_number, size_sqft, rate_per_sqft,
		                    payment_due_day, fine_rate_per_day, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		lease.LandName,
		lease.TenantName,
		lease.AgreementNumber,
		lease.SizeSqFt,
		lease.RatePerSqFt,
		lease.PaymentDueDay,
		lease.FineRatePerDay,
		lease.StartDate,
		lease.EndDate,
	).Scan(&lease.ID, &lease.CreatedAt, &lease.UpdatedAt)

	if isUniqueViolation(err) {
		return billing.Conflictf("lease with agreement number %s already exists", lease.AgreementNumber)
	}
	return err
}

func (r *LeaseRepository) GetByID(ctx context.Context, id int) (*models.Lease, error) {
	query := `
		SELECT id, land_name, tenant_name, agreement_number, size_sqft, rate_per_sqft,
		       payment_due_day, fine_rate_per_day, start_date, end_date, released_at,
		       created_at, updated_at
		FROM leases
		WHERE id = $1
	`

	lease := &models.Lease{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&lease.ID,
		&lease.LandName,
		&lease.TenantName,
		&lease.AgreementNumber,
		&lease.SizeSqFt,
		&lease.RatePerSqFt,
		&lease.PaymentDueDay,
		&lease.FineRatePerDay,
		&lease.StartDate,
		&lease.EndDate,
		&lease.ReleasedAt,
		&lease.CreatedAt,
		&lease.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("lease", strconv.Itoa(id))
	}
	if err != nil {
		return nil, err
	}

	return lease, nil
}

func (r *LeaseRepository) List(ctx context.Context, limit, offset int) ([]*models.Lease, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, land_name, tenant_name, agreement_number, size_sqft, rate_per_sqft,
		       payment_due_day, fine_rate_per_day, start_date, end_date, released_at,
		       created_at, updated_at
		FROM leases
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []*models.Lease
	for rows.Next() {
		lease := &models.Lease{}
		err := rows.Scan(
			&lease.ID,
			&lease.LandName,
			&lease.TenantName,
			&lease.AgreementNumber,
			&lease.SizeSqFt,
			&lease.RatePerSqFt,
			&lease.PaymentDueDay,
			&lease.FineRatePerDay,
			&lease.StartDate,
			&lease.EndDate,
			&lease.ReleasedAt,
			&lease.CreatedAt,
			&lease.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		leases = append(leases, lease)
	}

	return leases, rows.Err()
}

// Release marks a lease as let go. Leases are otherwise immutable; this
// is the only field that changes after creation.
func (r *LeaseRepository) Release(ctx context.Context, id int, releasedAt time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE leases SET released_at = $1, updated_at = NOW() WHERE id = $2 AND released_at IS NULL`,
		releasedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to release lease: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the lease does not exist or it was already released.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return billing.Conflictf("lease %d is already released", id)
	}
	return nil
}
