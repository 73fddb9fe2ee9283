package models

import (
	"time"

	"council-backend/internal/billing"
)

// WasteInvoice is one billing period's charge for a waste customer.
// Exactly one exists per (customer, period); balance = max(0, total - paid).
type WasteInvoice struct {
	ID            int                   `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    int                   `json:"customer_id"`
	PeriodMonth   string                `json:"period_month"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       time.Time             `json:"due_date"`
	Subtotal      float64               `json:"subtotal"`
	Discount      float64               `json:"discount"`
	Penalty       float64               `json:"penalty"`
	Total         float64               `json:"total"`
	Paid          float64               `json:"paid"`
	Balance       float64               `json:"balance"`
	Status        billing.InvoiceStatus `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// WasteInvoiceItem is a line on an invoice; line total = qty * unit.
type WasteInvoiceItem struct {
	ID         int       `json:"id"`
	InvoiceID  int       `json:"invoice_id"`
	Label      string    `json:"label"`
	Quantity   int       `json:"quantity"`
	UnitAmount float64   `json:"unit_amount"`
	LineTotal  float64   `json:"line_total"`
	CreatedAt  time.Time `json:"created_at"`
}

// WasteInvoiceWithDetails includes the customer name and line items
type WasteInvoiceWithDetails struct {
	WasteInvoice
	CustomerName string             `json:"customer_name"`
	Items        []WasteInvoiceItem `json:"items"`
}

// GenerateInvoicesRequest triggers invoice generation for a period,
// for all active subscriptions or one selected customer
type GenerateInvoicesRequest struct {
	PeriodMonth string `json:"period_month"`
	CustomerID  *int   `json:"customer_id"`
}

// GenerateInvoicesResult reports batch generation counts; failures on
// individual subscriptions do not abort the batch
type GenerateInvoicesResult struct {
	PeriodMonth  string `json:"period_month"`
	CreatedCount int    `json:"created_count"`
	SkippedCount int    `json:"skipped_count"`
}

// MarkOverdueResult reports how many invoices were flipped to OVERDUE
type MarkOverdueResult struct {
	UpdatedCount int `json:"updated_count"`
}
