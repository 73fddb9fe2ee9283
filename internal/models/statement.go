package models

import (
	"time"

	"council-backend/internal/billing"
)

// Statement is the monthly rent bill for one lease. At most one OPEN
// statement exists per lease at any time; the lease terms are snapshotted
// at creation so later lease edits never change historical statements.
type Statement struct {
	ID              int                     `json:"id"`
	StatementNumber string                  `json:"statement_number"`
	LeaseID         int                     `json:"lease_id"`
	MonthKey        string                  `json:"month_key"`
	Status          billing.StatementStatus `json:"status"`

	// Lease terms snapshot
	SizeSqFt       float64 `json:"size_sqft"`
	RatePerSqFt    float64 `json:"rate_per_sqft"`
	PaymentDueDay  int     `json:"payment_due_day"`
	FineRatePerDay float64 `json:"fine_rate_per_day"`

	// Computed accrual fields, refreshed on payment or explicit refresh
	MonthlyRent   float64    `json:"monthly_rent"`
	DueDate       time.Time  `json:"due_date"`
	DaysUnpaid    int        `json:"days_unpaid"`
	FineDays      int        `json:"fine_days"`
	FineAmount    float64    `json:"fine_amount"`
	TotalDue      float64    `json:"total_due"`
	PaidTotal     float64    `json:"paid_total"`
	LastPaymentAt *time.Time `json:"last_payment_at"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStatementRequest opens a statement for a lease month
type CreateStatementRequest struct {
	MonthKey     string `json:"month_key"`
	CreatedBy    string `json:"created_by"`
	CapToEndDate bool   `json:"cap_to_end_date"`
}

// StatementWithPayments bundles a statement with its payment ledger
type StatementWithPayments struct {
	Statement
	Payments []LandPayment `json:"payments"`
}
