package services

import (
	"context"
	"log"
	"time"

	"council-backend/internal/billing"
	"council-backend/internal/cache"
	"council-backend/internal/config"
	"council-backend/internal/metrics"
	"council-backend/internal/models"
	"council-backend/internal/repositories"
)

// WastePaymentService records customer payments and fans them out across
// outstanding invoices, oldest first.
type WastePaymentService struct {
	Payments  *repositories.WastePaymentRepository
	Invoices  *repositories.WasteInvoiceRepository
	Customers *repositories.WasteCustomerRepository
	Cfg       *config.Config
	Now       func() time.Time
}

func NewWastePaymentService(payments *repositories.WastePaymentRepository, invoices *repositories.WasteInvoiceRepository, customers *repositories.WasteCustomerRepository, cfg *config.Config) *WastePaymentService {
	return &WastePaymentService{
		Payments:  payments,
		Invoices:  invoices,
		Customers: customers,
		Cfg:       cfg,
		Now:       time.Now,
	}
}

// RecordPayment books a payment and allocates it across the customer's
// outstanding invoices. Any remainder beyond the outstanding total stays
// on the payment as an unallocated credit; earlier allocations are never
// reshuffled.
func (s *WastePaymentService) RecordPayment(ctx context.Context, req *models.RecordWastePaymentRequest) (*models.WastePaymentWithAllocations, error) {
	amount := billing.Round2(req.Amount)
	if amount <= 0 {
		return nil, billing.Invalidf("payment amount must be positive, got %v", req.Amount)
	}

	receivedAt := billing.CivilToday(s.Now(), s.Cfg.Billing.UTCOffsetHours)
	if req.ReceivedAt != "" {
		parsed, err := time.Parse(billing.DateLayout, req.ReceivedAt)
		if err != nil {
			return nil, billing.Invalidf("invalid payment date %q, expected YYYY-MM-DD", req.ReceivedAt)
		}
		receivedAt = parsed
	}

	if _, err := s.Customers.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	payment := &models.WastePayment{
		CustomerID: req.CustomerID,
		ReceivedAt: receivedAt,
		Amount:     amount,
		Method:     req.Method,
		Reference:  req.Reference,
		Notes:      req.Notes,
	}

	// Planning happens inside the repository transaction against the
	// locked outstanding set, so concurrent payments serialize.
	allocations, unallocated, err := s.Payments.CreateWithAllocations(ctx, payment)
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues("waste").Inc()
	metrics.AmountAllocated.Add(billing.Round2(amount - unallocated))
	cache.InvalidateCustomerBalance(ctx, req.CustomerID)
	cache.InvalidateDashboard(ctx)
	log.Printf("[Payment] %s of %.2f from customer %d across %d invoices (%.2f unallocated)",
		payment.ReceiptNumber, payment.Amount, req.CustomerID, len(allocations), unallocated)

	return &models.WastePaymentWithAllocations{
		WastePayment: *payment,
		Allocations:  allocations,
		Unallocated:  unallocated,
	}, nil
}

func (s *WastePaymentService) GetPayment(ctx context.Context, id int) (*models.WastePaymentWithAllocations, error) {
	return s.Payments.GetByID(ctx, id)
}

func (s *WastePaymentService) ListByCustomer(ctx context.Context, customerID int, limit, offset int) ([]*models.WastePayment, error) {
	return s.Payments.ListByCustomer(ctx, customerID, limit, offset)
}

// ListInvoiceAllocations shows which payments settled an invoice.
func (s *WastePaymentService) ListInvoiceAllocations(ctx context.Context, invoiceID int) ([]models.PaymentAllocation, error) {
	if _, err := s.Invoices.GetByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.Payments.ListAllocationsByInvoice(ctx, invoiceID)
}
