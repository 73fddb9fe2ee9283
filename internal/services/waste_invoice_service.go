package services

import (
	"context"
	"errors"
	"log"
	"time"

	"council-backend/internal/billing"
	"council-backend/internal/cache"
	"council-backend/internal/config"
	"council-backend/internal/metrics"
	"council-backend/internal/models"
	"council-backend/internal/repositories"
)

// WasteInvoiceService generates invoices from subscriptions and runs the
// overdue scan.
type WasteInvoiceService struct {
	Invoices      *repositories.WasteInvoiceRepository
	Subscriptions *repositories.SubscriptionRepository
	Cfg           *config.Config
	Now           func() time.Time
}

func NewWasteInvoiceService(invoices *repositories.WasteInvoiceRepository, subscriptions *repositories.SubscriptionRepository, cfg *config.Config) *WasteInvoiceService {
	return &WasteInvoiceService{
		Invoices:      invoices,
		Subscriptions: subscriptions,
		Cfg:           cfg,
		Now:           time.Now,
	}
}

// GenerateForMonth creates invoices for every active subscription that
// owes a charge in the period, optionally narrowed to one customer.
// The run is idempotent: customers already invoiced for the period are
// counted as skipped, and a failure on one subscription does not abort
// the rest of the batch.
func (s *WasteInvoiceService) GenerateForMonth(ctx context.Context, req *models.GenerateInvoicesRequest) (*models.GenerateInvoicesResult, error) {
	if _, _, err := billing.ParseMonthKey(req.PeriodMonth); err != nil {
		return nil, err
	}

	subs, err := s.Subscriptions.ListActive(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	issueDate := billing.CivilToday(s.Now(), s.Cfg.Billing.UTCOffsetHours)
	dueDate := issueDate.AddDate(0, 0, s.Cfg.Billing.InvoiceDueInDays)

	result := &models.GenerateInvoicesResult{PeriodMonth: req.PeriodMonth}
	for _, sub := range subs {
		due, err := billing.PeriodDue(sub.Frequency, sub.StartMonth, sub.EndMonth, req.PeriodMonth)
		if err != nil {
			log.Printf("[Invoice] Skipping subscription %d: %v", sub.ID, err)
			result.SkippedCount++
			continue
		}
		if !due {
			result.SkippedCount++
			continue
		}

		exists, err := s.Invoices.ExistsForPeriod(ctx, sub.CustomerID, req.PeriodMonth)
		if err != nil {
			return nil, err
		}
		if exists {
			result.SkippedCount++
			continue
		}

		total := billing.Round2(sub.FeeAmount)
		invoice := &models.WasteInvoice{
			CustomerID:  sub.CustomerID,
			PeriodMonth: req.PeriodMonth,
			IssueDate:   issueDate,
			DueDate:     dueDate,
			Subtotal:    total,
			Total:       total,
			Balance:     total,
			Status:      billing.InvoiceIssued,
		}
		items := []models.WasteInvoiceItem{{
			Label:      s.Cfg.Billing.WasteServiceName,
			Quantity:   1,
			UnitAmount: total,
			LineTotal:  total,
		}}

		err = s.Invoices.Create(ctx, invoice, items)
		var conflict *billing.ConflictError
		if errors.As(err, &conflict) {
			// Lost a race with a concurrent run; same outcome as exists.
			result.SkippedCount++
			continue
		}
		if err != nil {
			log.Printf("[Invoice] Failed to create invoice for customer %d: %v", sub.CustomerID, err)
			result.SkippedCount++
			continue
		}

		metrics.InvoicesGenerated.Inc()
		cache.InvalidateCustomerBalance(ctx, sub.CustomerID)
		result.CreatedCount++
	}

	cache.InvalidateDashboard(ctx)
	log.Printf("[Invoice] Generation for %s: %d created, %d skipped",
		req.PeriodMonth, result.CreatedCount, result.SkippedCount)

	return result, nil
}

func (s *WasteInvoiceService) GetInvoice(ctx context.Context, id int) (*models.WasteInvoiceWithDetails, error) {
	return s.Invoices.GetByID(ctx, id)
}

func (s *WasteInvoiceService) ListInvoices(ctx context.Context, filter repositories.InvoiceFilter) ([]*models.WasteInvoice, error) {
	if filter.Status != "" {
		switch filter.Status {
		case billing.InvoiceIssued, billing.InvoiceOverdue, billing.InvoicePartiallyPaid,
			billing.InvoicePaid, billing.InvoiceWaived, billing.InvoiceCancelled:
		default:
			return nil, billing.Invalidf("unknown invoice status %q", filter.Status)
		}
	}
	if filter.PeriodMonth != "" {
		if _, _, err := billing.ParseMonthKey(filter.PeriodMonth); err != nil {
			return nil, err
		}
	}
	return s.Invoices.List(ctx, filter)
}

// MarkOverdue flips unpaid invoices whose due date has passed to
// OVERDUE, judged against the civil "today".
func (s *WasteInvoiceService) MarkOverdue(ctx context.Context) (*models.MarkOverdueResult, error) {
	asOf := billing.CivilToday(s.Now(), s.Cfg.Billing.UTCOffsetHours)

	updated, err := s.Invoices.MarkOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}

	if updated > 0 {
		cache.InvalidateDashboard(ctx)
		log.Printf("[Invoice] Marked %d invoices overdue as of %s", updated, asOf.Format(billing.DateLayout))
	}

	return &models.MarkOverdueResult{UpdatedCount: updated}, nil
}
