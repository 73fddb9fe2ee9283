package models

import "time"

// Lease is a land-rent agreement between the council and a tenant for a
// parcel. Immutable once created except for the release date.
type Lease struct {
	ID              int        `json:"id"`
	LandName        string     `json:"land_name"`
	TenantName      string     `json:"tenant_name"`
	AgreementNumber string     `json:"agreement_number"`
	SizeSqFt        float64    `json:"size_sqft"`
	RatePerSqFt     float64    `json:"rate_per_sqft"`
	PaymentDueDay   int        `json:"payment_due_day"`
	FineRatePerDay  float64    `json:"fine_rate_per_day"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`      // nil = open-ended
	ReleasedAt      *time.Time `json:"released_at"`   // early termination
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateLeaseRequest represents the request body for creating a lease
type CreateLeaseRequest struct {
	LandName        string  `json:"land_name"`
	TenantName      string  `json:"tenant_name"`
	AgreementNumber string  `json:"agreement_number"`
	SizeSqFt        float64 `json:"size_sqft"`
	RatePerSqFt     float64 `json:"rate_per_sqft"`
	PaymentDueDay   int     `json:"payment_due_day"`
	FineRatePerDay  float64 `json:"fine_rate_per_day"`
	StartDate       string  `json:"start_date"` // YYYY-MM-DD
	EndDate         string  `json:"end_date"`   // optional
}

// ReleaseLeaseRequest marks a lease as let go on the given date
type ReleaseLeaseRequest struct {
	ReleasedAt string `json:"released_at"` // YYYY-MM-DD
}
