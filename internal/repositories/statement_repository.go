package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"council-backend/internal/billing"
	"council-backend/internal/models"
)

type StatementRepository struct {
	DB *pgxpool.Pool
}

func NewStatementRepository(db *pgxpool.Pool) *StatementRepository {
	return &StatementRepository{DB: db}
}

func (r *StatementRepository) GenerateStatementNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('statement_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next statement number: %w", err)
	}
	return fmt.Sprintf("STM-%06d", nextNum), nil
}

// Create opens a statement. The partial unique index on (lease_id,
// status='OPEN') and the (lease_id, month_key) constraint turn races
// between concurrent creates into a ConflictError here instead of two
// OPEN statements.
func (r *StatementRepository) Create(ctx context.Context, stmt *models.Statement) error {
	if stmt.StatementNumber == "" {
		number, err := r.GenerateStatementNumber(ctx)
		if err != nil {
			return err
		}
		stmt.StatementNumber = number
	}

	query := `
		INSERT INTO land_statements (statement_number, lease_id, month_key, status,
		                             size_sqft, rate_per_sqft, payment_due_day, fine_rate_per_day,
		                             monthly_rent, due_date, days_unpaid, fine_days, fine_amount,
		                             total_due, paid_total, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		stmt.StatementNumber,
		stmt.LeaseID,
		stmt.MonthKey,
		stmt.Status,
		stmt.SizeSqFt,
		stmt.RatePerSqFt,
		stmt.PaymentDueDay,
		stmt.FineRatePerDay,
		stmt.MonthlyRent,
		stmt.DueDate,
		stmt.DaysUnpaid,
		stmt.FineDays,
		stmt.FineAmount,
		stmt.TotalDue,
		stmt.PaidTotal,
		stmt.CreatedBy,
	).Scan(&stmt.ID, &stmt.CreatedAt, &stmt.UpdatedAt)

	if isUniqueViolation(err) {
		return billing.Conflictf("statement already open for lease %d", stmt.LeaseID)
	}
	return err
}

const statementColumns = `
	id, statement_number, lease_id, month_key, status,
	size_sqft, rate_per_sqft, payment_due_day, fine_rate_per_day,
	monthly_rent, due_date, days_unpaid, fine_days, fine_amount,
	total_due, paid_total, last_payment_at, created_by, created_at, updated_at
`

func scanStatement(row pgx.Row) (*models.Statement, error) {
	stmt := &models.Statement{}
	err := row.Scan(
		&stmt.ID,
		&stmt.StatementNumber,
		&stmt.LeaseID,
		&stmt.MonthKey,
		&stmt.Status,
		&stmt.SizeSqFt,
		&stmt.RatePerSqFt,
		&stmt.PaymentDueDay,
		&stmt.FineRatePerDay,
		&stmt.MonthlyRent,
		&stmt.DueDate,
		&stmt.DaysUnpaid,
		&stmt.FineDays,
		&stmt.FineAmount,
		&stmt.TotalDue,
		&stmt.PaidTotal,
		&stmt.LastPaymentAt,
		&stmt.CreatedBy,
		&stmt.CreatedAt,
		&stmt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (r *StatementRepository) GetByID(ctx context.Context, id int) (*models.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM land_statements WHERE id = $1`

	stmt, err := scanStatement(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("statement", strconv.Itoa(id))
	}
	return stmt, err
}

// GetOpenByLease returns the lease's OPEN statement, or NotFoundError
// when every statement is settled.
func (r *StatementRepository) GetOpenByLease(ctx context.Context, leaseID int) (*models.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM land_statements WHERE lease_id = $1 AND status = 'OPEN'`

	stmt, err := scanStatement(r.DB.QueryRow(ctx, query, leaseID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("open statement for lease", strconv.Itoa(leaseID))
	}
	return stmt, err
}

func (r *StatementRepository) ListByLease(ctx context.Context, leaseID int, limit, offset int) ([]*models.Statement, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + statementColumns + `
		FROM land_statements
		WHERE lease_id = $1
		ORDER BY month_key ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.Query(ctx, query, leaseID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []*models.Statement
	for rows.Next() {
		stmt, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return statements, rows.Err()
}

// ApplyPayment inserts a payment and settles the statement's paid total
// and status in one transaction. The statement row is locked and its
// paid_total re-read inside the transaction, so concurrent payments
// against the same statement serialize and accumulate instead of
// overwriting each other; a payment that arrives after the statement
// closed gets a ConflictError.
func (r *StatementRepository) ApplyPayment(ctx context.Context, stmt *models.Statement, payment *models.LandPayment) error {
	var nextNum int
	if err := r.DB.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum); err != nil {
		return fmt.Errorf("failed to get next receipt number: %w", err)
	}
	payment.ReceiptNumber = fmt.Sprintf("RCP-%06d", nextNum)

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var currentPaid float64
	err = tx.QueryRow(ctx,
		`SELECT paid_total FROM land_statements WHERE id = $1 AND status = 'OPEN' FOR UPDATE`,
		stmt.ID,
	).Scan(&currentPaid)
	if errors.Is(err, pgx.ErrNoRows) {
		return billing.Conflictf("statement %s is no longer open", stmt.StatementNumber)
	}
	if err != nil {
		return err
	}
	stmt.PaidTotal = billing.Round2(currentPaid + payment.Amount)
	stmt.Status = billing.DeriveStatementStatus(stmt.TotalDue, stmt.PaidTotal)

	err = tx.QueryRow(ctx,
		`INSERT INTO land_payments (receipt_number, statement_id, lease_id, paid_at, amount,
		                            method, reference, received_by, slip_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		payment.ReceiptNumber,
		payment.StatementID,
		payment.LeaseID,
		payment.PaidAt,
		payment.Amount,
		payment.Method,
		payment.Reference,
		payment.ReceivedBy,
		payment.SlipKey,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE land_statements
		 SET status = $1, days_unpaid = $2, fine_days = $3, fine_amount = $4,
		     total_due = $5, paid_total = $6, last_payment_at = $7, updated_at = NOW()
		 WHERE id = $8`,
		stmt.Status,
		stmt.DaysUnpaid,
		stmt.FineDays,
		stmt.FineAmount,
		stmt.TotalDue,
		stmt.PaidTotal,
		stmt.LastPaymentAt,
		stmt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update statement: %w", err)
	}

	return tx.Commit(ctx)
}

// RefreshAccrual persists recomputed accrual fields outside of a payment
// (explicit refresh action).
func (r *StatementRepository) RefreshAccrual(ctx context.Context, stmt *models.Statement) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE land_statements
		 SET days_unpaid = $1, fine_days = $2, fine_amount = $3, total_due = $4, updated_at = NOW()
		 WHERE id = $5`,
		stmt.DaysUnpaid, stmt.FineDays, stmt.FineAmount, stmt.TotalDue, stmt.ID,
	)
	return err
}

// SumOpenDues returns the total outstanding across all OPEN statements.
func (r *StatementRepository) SumOpenDues(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_due - paid_total), 0) FROM land_statements WHERE status = 'OPEN'`,
	).Scan(&total)
	return total, err
}
