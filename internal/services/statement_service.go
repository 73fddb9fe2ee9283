package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"council-backend/internal/billing"
	"council-backend/internal/cache"
	"council-backend/internal/config"
	"council-backend/internal/metrics"
	"council-backend/internal/models"
	"council-backend/internal/repositories"
)

// StatementService drives the land-rent statement lifecycle. The clock
// is a field so accrual math is reproducible in tests.
type StatementService struct {
	Statements *repositories.StatementRepository
	Payments   *repositories.LandPaymentRepository
	Leases     *repositories.LeaseRepository
	Cfg        *config.Config
	Now        func() time.Time
}

func NewStatementService(statements *repositories.StatementRepository, payments *repositories.LandPaymentRepository, leases *repositories.LeaseRepository, cfg *config.Config) *StatementService {
	return &StatementService{
		Statements: statements,
		Payments:   payments,
		Leases:     leases,
		Cfg:        cfg,
		Now:        time.Now,
	}
}

func (s *StatementService) accrualParams(lease *models.Lease, monthKey string, capToEndDate bool) billing.AccrualParams {
	return billing.AccrualParams{
		MonthKey:       monthKey,
		SizeSqFt:       lease.SizeSqFt,
		RatePerSqFt:    lease.RatePerSqFt,
		PaymentDueDay:  lease.PaymentDueDay,
		FineRatePerDay: lease.FineRatePerDay,
		ReleasedAt:     lease.ReleasedAt,
		EndDate:        lease.EndDate,
		CapToEndDate:   capToEndDate,
		Now:            s.Now(),
		UTCOffsetHours: s.Cfg.Billing.UTCOffsetHours,
	}
}

// PreviewStatement computes a lease month's accrual without persisting
// anything.
func (s *StatementService) PreviewStatement(ctx context.Context, leaseID int, monthKey string, capToEndDate bool) (*billing.AccrualResult, error) {
	if _, _, err := billing.ParseMonthKey(monthKey); err != nil {
		return nil, err
	}

	lease, err := s.Leases.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	result, err := billing.ComputeMonthlyAccrual(s.accrualParams(lease, monthKey, capToEndDate))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateStatement opens a statement for a lease month, snapshotting the
// lease terms. At most one OPEN statement per lease: a second create
// while one is open fails with ConflictError, as does reopening a month
// that already has a statement.
func (s *StatementService) CreateStatement(ctx context.Context, leaseID int, req *models.CreateStatementRequest) (*models.Statement, error) {
	if _, _, err := billing.ParseMonthKey(req.MonthKey); err != nil {
		return nil, err
	}

	lease, err := s.Leases.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	result, err := billing.ComputeMonthlyAccrual(s.accrualParams(lease, req.MonthKey, req.CapToEndDate))
	if err != nil {
		return nil, err
	}

	stmt := &models.Statement{
		LeaseID:        leaseID,
		MonthKey:       req.MonthKey,
		Status:         billing.StatementOpen,
		SizeSqFt:       lease.SizeSqFt,
		RatePerSqFt:    lease.RatePerSqFt,
		PaymentDueDay:  lease.PaymentDueDay,
		FineRatePerDay: lease.FineRatePerDay,
		MonthlyRent:    result.MonthlyRent,
		DueDate:        result.DueDate,
		DaysUnpaid:     result.DaysUnpaid,
		FineDays:       result.FineDays,
		FineAmount:     result.FineAmount,
		TotalDue:       result.TotalDue,
		CreatedBy:      req.CreatedBy,
	}

	if err := s.Statements.Create(ctx, stmt); err != nil {
		return nil, err
	}

	metrics.StatementsOpened.Inc()
	cache.InvalidateOpenStatement(ctx, leaseID)
	cache.InvalidateDashboard(ctx)
	log.Printf("[Statement] Opened %s for lease %d month %s", stmt.StatementNumber, leaseID, req.MonthKey)

	return stmt, nil
}

func (s *StatementService) GetStatement(ctx context.Context, id int) (*models.StatementWithPayments, error) {
	stmt, err := s.Statements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.Payments.ListByStatement(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.StatementWithPayments{Statement: *stmt, Payments: payments}, nil
}

// GetOpenStatement returns the lease's OPEN statement with accrual
// recomputed as of now. The refreshed figures are persisted so the
// stored row never lags behind what the caller last saw. The view is
// cached per (lease, cap) with a short TTL and invalidated on every
// statement write.
func (s *StatementService) GetOpenStatement(ctx context.Context, leaseID int, capToEndDate bool) (*models.Statement, error) {
	if data, ok := cache.GetOpenStatement(ctx, leaseID, capToEndDate); ok {
		var cached models.Statement
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stmt, err := s.Statements.GetOpenByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	lease, err := s.Leases.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	result, err := billing.ComputeMonthlyAccrual(billing.AccrualParams{
		MonthKey:       stmt.MonthKey,
		SizeSqFt:       stmt.SizeSqFt,
		RatePerSqFt:    stmt.RatePerSqFt,
		PaymentDueDay:  stmt.PaymentDueDay,
		FineRatePerDay: stmt.FineRatePerDay,
		ReleasedAt:     lease.ReleasedAt,
		EndDate:        lease.EndDate,
		CapToEndDate:   capToEndDate,
		Now:            s.Now(),
		UTCOffsetHours: s.Cfg.Billing.UTCOffsetHours,
	})
	if err != nil {
		return nil, err
	}

	stmt.DaysUnpaid = result.DaysUnpaid
	stmt.FineDays = result.FineDays
	stmt.FineAmount = result.FineAmount
	stmt.TotalDue = result.TotalDue

	if err := s.Statements.RefreshAccrual(ctx, stmt); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stmt); err == nil {
		cache.SetOpenStatement(ctx, leaseID, capToEndDate, data)
	}

	return stmt, nil
}

func (s *StatementService) ListStatements(ctx context.Context, leaseID int, limit, offset int) ([]*models.Statement, error) {
	return s.Statements.ListByLease(ctx, leaseID, limit, offset)
}

// RecordPayment books a receipt against the lease's OPEN statement.
// Accrual is recomputed as of the payment instant first, so the fine the
// tenant settles is the fine as of today. The paid total and the
// OPEN→PAID flip are settled by the repository under a row lock.
func (s *StatementService) RecordPayment(ctx context.Context, leaseID int, req *models.RecordLandPaymentRequest) (*models.StatementWithPayments, error) {
	amount := billing.Round2(req.Amount)
	if amount <= 0 {
		return nil, billing.Invalidf("payment amount must be positive, got %v", req.Amount)
	}

	paidAt := billing.CivilToday(s.Now(), s.Cfg.Billing.UTCOffsetHours)
	if req.PaidAt != "" {
		parsed, err := time.Parse(billing.DateLayout, req.PaidAt)
		if err != nil {
			return nil, billing.Invalidf("invalid payment date %q, expected YYYY-MM-DD", req.PaidAt)
		}
		paidAt = parsed
	}

	stmt, err := s.Statements.GetOpenByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	lease, err := s.Leases.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	result, err := billing.ComputeMonthlyAccrual(billing.AccrualParams{
		MonthKey:       stmt.MonthKey,
		SizeSqFt:       stmt.SizeSqFt,
		RatePerSqFt:    stmt.RatePerSqFt,
		PaymentDueDay:  stmt.PaymentDueDay,
		FineRatePerDay: stmt.FineRatePerDay,
		ReleasedAt:     lease.ReleasedAt,
		EndDate:        lease.EndDate,
		CapToEndDate:   req.CapToEndDate,
		Now:            s.Now(),
		UTCOffsetHours: s.Cfg.Billing.UTCOffsetHours,
	})
	if err != nil {
		return nil, err
	}

	stmt.DaysUnpaid = result.DaysUnpaid
	stmt.FineDays = result.FineDays
	stmt.FineAmount = result.FineAmount
	stmt.TotalDue = result.TotalDue
	stmt.LastPaymentAt = &paidAt

	payment := &models.LandPayment{
		StatementID: stmt.ID,
		LeaseID:     leaseID,
		PaidAt:      paidAt,
		Amount:      amount,
		Method:      req.Method,
		Reference:   req.Reference,
		ReceivedBy:  req.ReceivedBy,
		SlipKey:     req.SlipKey,
	}

	if err := s.Statements.ApplyPayment(ctx, stmt, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues("land_rent").Inc()
	cache.InvalidateOpenStatement(ctx, leaseID)
	cache.InvalidateDashboard(ctx)
	log.Printf("[Statement] Payment %s of %.2f against %s (lease %d, status %s)",
		payment.ReceiptNumber, payment.Amount, stmt.StatementNumber, leaseID, stmt.Status)

	payments, err := s.Payments.ListByStatement(ctx, stmt.ID)
	if err != nil {
		return nil, err
	}

	return &models.StatementWithPayments{Statement: *stmt, Payments: payments}, nil
}

// ListLeasePayments returns the lease's receipt history, newest first.
func (s *StatementService) ListLeasePayments(ctx context.Context, leaseID int, limit, offset int) ([]models.LandPayment, error) {
	return s.Payments.ListByLease(ctx, leaseID, limit, offset)
}
