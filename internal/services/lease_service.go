package services

import (
	"context"
	"time"

	"council-backend/internal/billing"
	"council-backend/internal/models"
	"council-backend/internal/repositories"
)

type LeaseService struct {
	Repo *repositories.LeaseRepository
}

func NewLeaseService(repo *repositories.LeaseRepository) *LeaseService {
	return &LeaseService{Repo: repo}
}

func (s *LeaseService) CreateLease(ctx context.Context, req *models.CreateLeaseRequest) (*models.Lease, error) {
	if req.LandName == "" || req.TenantName == "" || req.AgreementNumber == "" {
		return nil, billing.Invalidf("land name, tenant name and agreement number are required")
	}
	if req.SizeSqFt <= 0 {
		return nil, billing.Invalidf("lease size must be positive, got %v", req.SizeSqFt)
	}
	if req.RatePerSqFt < 0 || req.FineRatePerDay < 0 {
		return nil, billing.Invalidf("rates must not be negative")
	}
	if req.PaymentDueDay < 1 || req.PaymentDueDay > 31 {
		return nil, billing.Invalidf("payment due day must be between 1 and 31, got %d", req.PaymentDueDay)
	}

	startDate, err := time.Parse(billing.DateLayout, req.StartDate)
	if err != nil {
		return nil, billing.Invalidf("invalid start date %q, expected YYYY-MM-DD", req.StartDate)
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse(billing.DateLayout, req.EndDate)
		if err != nil {
			return nil, billing.Invalidf("invalid end date %q, expected YYYY-MM-DD", req.EndDate)
		}
		if parsed.Before(startDate) {
			return nil, billing.Invalidf("end date %s precedes start date %s", req.EndDate, req.StartDate)
		}
		endDate = &parsed
	}

	lease := &models.Lease{
		LandName:        req.LandName,
		TenantName:      req.TenantName,
		AgreementNumber: req.AgreementNumber,
		SizeSqFt:        req.SizeSqFt,
		RatePerSqFt:     req.RatePerSqFt,
		PaymentDueDay:   req.PaymentDueDay,
		FineRatePerDay:  req.FineRatePerDay,
		StartDate:       startDate,
		EndDate:         endDate,
	}

	if err := s.Repo.Create(ctx, lease); err != nil {
		return nil, err
	}

	return lease, nil
}

func (s *LeaseService) GetLease(ctx context.Context, id int) (*models.Lease, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *LeaseService) ListLeases(ctx context.Context, limit, offset int) ([]*models.Lease, error) {
	return s.Repo.List(ctx, limit, offset)
}

// ReleaseLease records an early termination. Fine accrual on the lease's
// statements freezes at the release date from here on.
func (s *LeaseService) ReleaseLease(ctx context.Context, id int, req *models.ReleaseLeaseRequest) (*models.Lease, error) {
	releasedAt, err := time.Parse(billing.DateLayout, req.ReleasedAt)
	if err != nil {
		return nil, billing.Invalidf("invalid release date %q, expected YYYY-MM-DD", req.ReleasedAt)
	}

	lease, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if releasedAt.Before(lease.StartDate) {
		return nil, billing.Invalidf("release date %s precedes lease start", req.ReleasedAt)
	}

	if err := s.Repo.Release(ctx, id, releasedAt); err != nil {
		return nil, err
	}

	return s.Repo.GetByID(ctx, id)
}
