package models

import "time"

// WastePayment is an append-only ledger entry for money received from a
// waste customer, independent of any single invoice until allocated.
type WastePayment struct {
	ID            int       `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	CustomerID    int       `json:"customer_id"`
	ReceivedAt    time.Time `json:"received_at"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Reference     string    `json:"reference"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentAllocation maps part of a payment to a specific invoice.
// A payment may fan out across several invoices or stay fully
// unallocated (overpayment, no outstanding invoices).
type PaymentAllocation struct {
	ID        int       `json:"id"`
	PaymentID int       `json:"payment_id"`
	InvoiceID int       `json:"invoice_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordWastePaymentRequest represents the request body for recording a payment
type RecordWastePaymentRequest struct {
	CustomerID int     `json:"customer_id"`
	ReceivedAt string  `json:"received_at"` // YYYY-MM-DD, defaults to today
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Reference  string  `json:"reference"`
	Notes      string  `json:"notes"`
}

// WastePaymentWithAllocations bundles a recorded payment with its
// allocation fan-out and whatever remained unallocated
type WastePaymentWithAllocations struct {
	WastePayment
	Allocations []PaymentAllocation `json:"allocations"`
	Unallocated float64             `json:"unallocated"`
}
