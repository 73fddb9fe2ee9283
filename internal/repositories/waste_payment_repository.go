package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"council-backend/internal/billing"
	"council-backend/internal/models"
)

type WastePaymentRepository struct {
	DB *pgxpool.Pool
}

func NewWastePaymentRepository(db *pgxpool.Pool) *WastePaymentRepository {
	return &WastePaymentRepository{DB: db}
}

// CreateWithAllocations books the payment, plans its fan-out and writes
// the allocation rows plus the updated invoice balances in one
// transaction. The outstanding invoices are locked and re-read inside
// the transaction before planning, so two concurrent payments for the
// same customer serialize and the later one allocates against the
// earlier one's settled balances instead of overwriting them. Returns
// the allocations and the amount left unallocated.
func (r *WastePaymentRepository) CreateWithAllocations(ctx context.Context, payment *models.WastePayment) ([]models.PaymentAllocation, float64, error) {
	var nextNum int
	if err := r.DB.QueryRow(ctx, "SELECT nextval('waste_receipt_number_sequence')").Scan(&nextNum); err != nil {
		return nil, 0, fmt.Errorf("failed to get next receipt number: %w", err)
	}
	payment.ReceiptNumber = fmt.Sprintf("WRC-%06d", nextNum)

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	outstanding, err := lockOutstanding(ctx, tx, payment.CustomerID)
	if err != nil {
		return nil, 0, err
	}

	plans, unallocated, err := billing.PlanAllocations(payment.Amount, outstanding)
	if err != nil {
		return nil, 0, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO waste_payments (receipt_number, customer_id, received_at, amount, method, reference, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		payment.ReceiptNumber,
		payment.CustomerID,
		payment.ReceivedAt,
		payment.Amount,
		payment.Method,
		payment.Reference,
		payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to insert payment: %w", err)
	}

	allocations := make([]models.PaymentAllocation, 0, len(plans))
	for _, plan := range plans {
		alloc := models.PaymentAllocation{
			PaymentID: payment.ID,
			InvoiceID: plan.InvoiceID,
			Amount:    plan.Amount,
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO payment_allocations (payment_id, invoice_id, amount)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`,
			alloc.PaymentID, alloc.InvoiceID, alloc.Amount,
		).Scan(&alloc.ID, &alloc.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to insert allocation: %w", err)
		}

		// The row is held by our FOR UPDATE lock; absolute values
		// derived from the locked read cannot clobber a concurrent write.
		_, err = tx.Exec(ctx,
			`UPDATE waste_invoices
			 SET paid = $1, balance = $2, status = $3, updated_at = NOW()
			 WHERE id = $4`,
			plan.NewPaid, plan.NewBalance, plan.NewStatus, plan.InvoiceID,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to update invoice %d: %w", plan.InvoiceID, err)
		}

		allocations = append(allocations, alloc)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return allocations, unallocated, nil
}

// lockOutstanding reads the customer's unpaid invoices in allocation
// order (oldest period first, creation order on ties) and takes row
// locks so the caller's plan stays valid until commit.
func lockOutstanding(ctx context.Context, tx pgx.Tx, customerID int) ([]billing.OutstandingInvoice, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, period_month, total, paid, balance
		 FROM waste_invoices
		 WHERE customer_id = $1 AND balance > 0 AND status NOT IN ('WAIVED', 'CANCELLED')
		 ORDER BY period_month ASC, id ASC
		 FOR UPDATE`,
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outstanding []billing.OutstandingInvoice
	for rows.Next() {
		var inv billing.OutstandingInvoice
		if err := rows.Scan(&inv.ID, &inv.PeriodMonth, &inv.Total, &inv.Paid, &inv.Balance); err != nil {
			return nil, err
		}
		outstanding = append(outstanding, inv)
	}

	return outstanding, rows.Err()
}

const wastePaymentColumns = `
	id, receipt_number, customer_id, received_at, amount,
	COALESCE(method, ''), COALESCE(reference, ''), COALESCE(notes, ''), created_at
`

func scanWastePayment(row pgx.Row) (*models.WastePayment, error) {
	payment := &models.WastePayment{}
	err := row.Scan(
		&payment.ID,
		&payment.ReceiptNumber,
		&payment.CustomerID,
		&payment.ReceivedAt,
		&payment.Amount,
		&payment.Method,
		&payment.Reference,
		&payment.Notes,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *WastePaymentRepository) GetByID(ctx context.Context, id int) (*models.WastePaymentWithAllocations, error) {
	query := `SELECT ` + wastePaymentColumns + ` FROM waste_payments WHERE id = $1`

	payment, err := scanWastePayment(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("payment", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return nil, err
	}

	allocations, err := r.listAllocations(ctx, "payment_id", id)
	if err != nil {
		return nil, err
	}

	result := &models.WastePaymentWithAllocations{
		WastePayment: *payment,
		Allocations:  allocations,
	}
	var allocated float64
	for _, alloc := range allocations {
		allocated += alloc.Amount
	}
	result.Unallocated = billing.Round2(payment.Amount - allocated)

	return result, nil
}

func (r *WastePaymentRepository) ListByCustomer(ctx context.Context, customerID int, limit, offset int) ([]*models.WastePayment, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + wastePaymentColumns + `
		FROM waste_payments
		WHERE customer_id = $1
		ORDER BY received_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.WastePayment
	for rows.Next() {
		payment, err := scanWastePayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *WastePaymentRepository) ListAllocationsByInvoice(ctx context.Context, invoiceID int) ([]models.PaymentAllocation, error) {
	return r.listAllocations(ctx, "invoice_id", invoiceID)
}

func (r *WastePaymentRepository) listAllocations(ctx context.Context, column string, id int) ([]models.PaymentAllocation, error) {
	query := fmt.Sprintf(
		`SELECT id, payment_id, invoice_id, amount, created_at
		 FROM payment_allocations
		 WHERE %s = $1
		 ORDER BY id`, column)

	rows, err := r.DB.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []models.PaymentAllocation
	for rows.Next() {
		var alloc models.PaymentAllocation
		err := rows.Scan(&alloc.ID, &alloc.PaymentID, &alloc.InvoiceID, &alloc.Amount, &alloc.CreatedAt)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, alloc)
	}

	return allocations, rows.Err()
}
