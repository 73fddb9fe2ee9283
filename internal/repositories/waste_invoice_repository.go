package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"council-backend/internal/billing"
	"council-backend/internal/models"
)

type WasteInvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewWasteInvoiceRepository(db *pgxpool.Pool) *WasteInvoiceRepository {
	return &WasteInvoiceRepository{DB: db}
}

func (r *WasteInvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", nextNum), nil
}

// Create inserts an invoice with its items in one transaction. The
// unique (customer_id, period_month) constraint makes regeneration
// race-safe: a concurrent duplicate insert surfaces as ConflictError.
func (r *WasteInvoiceRepository) Create(ctx context.Context, invoice *models.WasteInvoice, items []models.WasteInvoiceItem) error {
	if invoice.InvoiceNumber == "" {
		number, err := r.GenerateInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO waste_invoices (invoice_number, customer_id, period_month, issue_date, due_date,
		                             subtotal, discount, penalty, total, paid, balance, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		invoice.InvoiceNumber,
		invoice.CustomerID,
		invoice.PeriodMonth,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Subtotal,
		invoice.Discount,
		invoice.Penalty,
		invoice.Total,
		invoice.Paid,
		invoice.Balance,
		invoice.Status,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)

	if isUniqueViolation(err) {
		return billing.Conflictf("invoice already exists for customer %d period %s", invoice.CustomerID, invoice.PeriodMonth)
	}
	if err != nil {
		return err
	}

	for i := range items {
		items[i].InvoiceID = invoice.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO waste_invoice_items (invoice_id, label, quantity, unit_amount, line_total)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			invoice.ID, items[i].Label, items[i].Quantity, items[i].UnitAmount, items[i].LineTotal,
		).Scan(&items[i].ID, &items[i].CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ExistsForPeriod reports whether the customer already has an invoice
// for the period (idempotent generation check).
func (r *WasteInvoiceRepository) ExistsForPeriod(ctx context.Context, customerID int, periodMonth string) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM waste_invoices WHERE customer_id = $1 AND period_month = $2`,
		customerID, periodMonth,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

const invoiceColumns = `
	id, invoice_number, customer_id, period_month, issue_date, due_date,
	subtotal, discount, penalty, total, paid, balance, status, created_at, updated_at
`

func scanInvoice(row pgx.Row) (*models.WasteInvoice, error) {
	invoice := &models.WasteInvoice{}
	err := row.Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&invoice.CustomerID,
		&invoice.PeriodMonth,
		&invoice.IssueDate,
		&invoice.DueDate,
		&invoice.Subtotal,
		&invoice.Discount,
		&invoice.Penalty,
		&invoice.Total,
		&invoice.Paid,
		&invoice.Balance,
		&invoice.Status,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *WasteInvoiceRepository) GetByID(ctx context.Context, id int) (*models.WasteInvoiceWithDetails, error) {
	var details models.WasteInvoiceWithDetails
	err := r.DB.QueryRow(ctx,
		`SELECT i.id, i.invoice_number, i.customer_id, i.period_month, i.issue_date, i.due_date,
		        i.subtotal, i.discount, i.penalty, i.total, i.paid, i.balance, i.status,
		        i.created_at, i.updated_at, COALESCE(c.full_name, '') as customer_name
		 FROM waste_invoices i
		 LEFT JOIN waste_customers c ON i.customer_id = c.id
		 WHERE i.id = $1`, id,
	).Scan(
		&details.ID, &details.InvoiceNumber, &details.CustomerID, &details.PeriodMonth,
		&details.IssueDate, &details.DueDate, &details.Subtotal, &details.Discount,
		&details.Penalty, &details.Total, &details.Paid, &details.Balance, &details.Status,
		&details.CreatedAt, &details.UpdatedAt, &details.CustomerName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("invoice", strconv.Itoa(id))
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, label, quantity, unit_amount, line_total, created_at
		 FROM waste_invoice_items WHERE invoice_id = $1 ORDER BY id`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.WasteInvoiceItem
		err := rows.Scan(&item.ID, &item.InvoiceID, &item.Label, &item.Quantity,
			&item.UnitAmount, &item.LineTotal, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		details.Items = append(details.Items, item)
	}

	return &details, rows.Err()
}

// InvoiceFilter narrows List; zero values mean no constraint.
type InvoiceFilter struct {
	CustomerID  *int
	Status      billing.InvoiceStatus
	PeriodMonth string
	Limit       int
	Offset      int
}

func (r *WasteInvoiceRepository) List(ctx context.Context, filter InvoiceFilter) ([]*models.WasteInvoice, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argNum))
		args = append(args, *filter.CustomerID)
		argNum++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, filter.Status)
		argNum++
	}
	if filter.PeriodMonth != "" {
		conditions = append(conditions, fmt.Sprintf("period_month = $%d", argNum))
		args = append(args, filter.PeriodMonth)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`SELECT %s FROM waste_invoices %s
		ORDER BY period_month ASC, id ASC
		LIMIT $%d OFFSET $%d`, invoiceColumns, whereClause, argNum, argNum+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.WasteInvoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

// MarkOverdue flips unpaid invoices past their due date to OVERDUE and
// returns the number updated. PAID, WAIVED and CANCELLED are untouched.
func (r *WasteInvoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE waste_invoices
		 SET status = 'OVERDUE', updated_at = NOW()
		 WHERE status IN ('ISSUED', 'PARTIALLY_PAID') AND due_date < $1`,
		asOf,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// SumOutstanding returns the total unpaid balance across all invoices.
func (r *WasteInvoiceRepository) SumOutstanding(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM waste_invoices WHERE status NOT IN ('WAIVED', 'CANCELLED')`,
	).Scan(&total)
	return total, err
}

// SumOutstandingByCustomer returns one customer's unpaid balance.
func (r *WasteInvoiceRepository) SumOutstandingByCustomer(ctx context.Context, customerID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM waste_invoices
		 WHERE customer_id = $1 AND status NOT IN ('WAIVED', 'CANCELLED')`,
		customerID,
	).Scan(&total)
	return total, err
}
