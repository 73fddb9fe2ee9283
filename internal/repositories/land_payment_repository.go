package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"council-backend/internal/billing"
	"council-backend/internal/models"
)

type LandPaymentRepository struct {
	DB *pgxpool.Pool
}

func NewLandPaymentRepository(db *pgxpool.Pool) *LandPaymentRepository {
	return &LandPaymentRepository{DB: db}
}

const landPaymentColumns = `
	id, receipt_number, statement_id, lease_id, paid_at, amount,
	COALESCE(method, ''), COALESCE(reference, ''), COALESCE(received_by, ''),
	COALESCE(slip_key, ''), created_at
`

func scanLandPayment(row pgx.Row) (*models.LandPayment, error) {
	payment := &models.LandPayment{}
	err := row.Scan(
		&payment.ID,
		&payment.ReceiptNumber,
		&payment.StatementID,
		&payment.LeaseID,
		&payment.PaidAt,
		&payment.Amount,
		&payment.Method,
		&payment.Reference,
		&payment.ReceivedBy,
		&payment.SlipKey,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *LandPaymentRepository) ListByStatement(ctx context.Context, statementID int) ([]models.LandPayment, error) {
	query := `SELECT ` + landPaymentColumns + `
		FROM land_payments
		WHERE statement_id = $1
		ORDER BY paid_at ASC, id ASC`

	rows, err := r.DB.Query(ctx, query, statementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.LandPayment
	for rows.Next() {
		payment, err := scanLandPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}

	return payments, rows.Err()
}

func (r *LandPaymentRepository) ListByLease(ctx context.Context, leaseID int, limit, offset int) ([]models.LandPayment, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + landPaymentColumns + `
		FROM land_payments
		WHERE lease_id = $1
		ORDER BY paid_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.Query(ctx, query, leaseID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.LandPayment
	for rows.Next() {
		payment, err := scanLandPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}

	return payments, rows.Err()
}

func (r *LandPaymentRepository) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*models.LandPayment, error) {
	query := `SELECT ` + landPaymentColumns + ` FROM land_payments WHERE receipt_number = $1`

	payment, err := scanLandPayment(r.DB.QueryRow(ctx, query, receiptNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("payment", receiptNumber)
	}
	return payment, err
}

// SumByStatement returns the accumulated payments against a statement.
func (r *LandPaymentRepository) SumByStatement(ctx context.Context, statementID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM land_payments WHERE statement_id = $1`,
		statementID,
	).Scan(&total)
	return total, err
}
