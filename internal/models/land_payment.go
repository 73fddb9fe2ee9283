package models

import "time"

// LandPayment is an append-only receipt against the OPEN statement of a
// lease. Immutable once created.
type LandPayment struct {
	ID            int       `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	StatementID   int       `json:"statement_id"`
	LeaseID       int       `json:"lease_id"` // denormalized for lookups
	PaidAt        time.Time `json:"paid_at"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Reference     string    `json:"reference"`
	ReceivedBy    string    `json:"received_by"`
	SlipKey       string    `json:"slip_key,omitempty"` // object storage key of the uploaded slip
	CreatedAt     time.Time `json:"created_at"`
}

// RecordLandPaymentRequest represents the request body for recording a
// payment against the currently OPEN statement
type RecordLandPaymentRequest struct {
	PaidAt       string  `json:"paid_at"` // YYYY-MM-DD
	Amount       float64 `json:"amount"`
	Method       string  `json:"method"`
	Reference    string  `json:"reference"`
	ReceivedBy   string  `json:"received_by"`
	SlipKey      string  `json:"slip_key"`
	CapToEndDate bool    `json:"cap_to_end_date"`
}
