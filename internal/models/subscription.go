package models

import (
	"time"

	"council-backend/internal/billing"
)

// Subscription is a recurring waste-fee agreement. It drives invoice
// generation: an invoice is due for a period when the subscription is
// ACTIVE, the period lies within [StartMonth, EndMonth] and the period
// aligns to the frequency cadence.
type Subscription struct {
	ID         int                        `json:"id"`
	CustomerID int                        `json:"customer_id"`
	FeeAmount  float64                    `json:"fee_amount"`
	Frequency  billing.Frequency          `json:"frequency"`
	StartMonth string                     `json:"start_month"`
	EndMonth   string                     `json:"end_month,omitempty"` // empty = open-ended
	Status     billing.SubscriptionStatus `json:"status"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// CreateSubscriptionRequest represents the request body for creating a subscription
type CreateSubscriptionRequest struct {
	CustomerID int     `json:"customer_id"`
	FeeAmount  float64 `json:"fee_amount"`
	Frequency  string  `json:"frequency"`
	StartMonth string  `json:"start_month"`
	EndMonth   string  `json:"end_month"`
}

// UpdateSubscriptionStatusRequest pauses or resumes a subscription
type UpdateSubscriptionStatusRequest struct {
	Status string `json:"status"`
}
