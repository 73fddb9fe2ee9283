package services

import (
	"context"
	"encoding/json"
	"time"

	"council-backend/internal/billing"
	"council-backend/internal/cache"
	"council-backend/internal/repositories"
)

// DashboardSummary is the council-wide receivables view.
type DashboardSummary struct {
	OpenLandDues     float64   `json:"open_land_dues"`
	WasteOutstanding float64   `json:"waste_outstanding"`
	TotalReceivable  float64   `json:"total_receivable"`
	GeneratedAt      time.Time `json:"generated_at"`
}

type DashboardService struct {
	Statements *repositories.StatementRepository
	Invoices   *repositories.WasteInvoiceRepository
	Now        func() time.Time
}

func NewDashboardService(statements *repositories.StatementRepository, invoices *repositories.WasteInvoiceRepository) *DashboardService {
	return &DashboardService{
		Statements: statements,
		Invoices:   invoices,
		Now:        time.Now,
	}
}

// Summary aggregates outstanding amounts across both billing subsystems.
// Served from cache when fresh; writes invalidate it.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if data, ok := cache.GetDashboard(ctx); ok {
		var summary DashboardSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	landDues, err := s.Statements.SumOpenDues(ctx)
	if err != nil {
		return nil, err
	}

	wasteOutstanding, err := s.Invoices.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		OpenLandDues:     billing.Round2(landDues),
		WasteOutstanding: billing.Round2(wasteOutstanding),
		TotalReceivable:  billing.Round2(landDues + wasteOutstanding),
		GeneratedAt:      s.Now().UTC(),
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.SetDashboard(ctx, data)
	}

	return summary, nil
}
