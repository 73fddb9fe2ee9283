package services

import (
	"context"

	"council-backend/internal/billing"
	"council-backend/internal/models"
	"council-backend/internal/repositories"
)

type SubscriptionService struct {
	Subscriptions *repositories.SubscriptionRepository
	Customers     *repositories.WasteCustomerRepository
}

func NewSubscriptionService(subscriptions *repositories.SubscriptionRepository, customers *repositories.WasteCustomerRepository) *SubscriptionService {
	return &SubscriptionService{Subscriptions: subscriptions, Customers: customers}
}

func (s *SubscriptionService) CreateSubscription(ctx context.Context, req *models.CreateSubscriptionRequest) (*models.Subscription, error) {
	if req.FeeAmount <= 0 {
		return nil, billing.Invalidf("fee amount must be positive, got %v", req.FeeAmount)
	}

	frequency := billing.Frequency(req.Frequency)
	switch frequency {
	case billing.FrequencyMonthly, billing.FrequencyQuarterly, billing.FrequencyYearly:
	default:
		return nil, billing.Invalidf("unknown billing frequency %q", req.Frequency)
	}

	if _, _, err := billing.ParseMonthKey(req.StartMonth); err != nil {
		return nil, err
	}
	if req.EndMonth != "" {
		if _, _, err := billing.ParseMonthKey(req.EndMonth); err != nil {
			return nil, err
		}
		if req.EndMonth < req.StartMonth {
			return nil, billing.Invalidf("end month %s precedes start month %s", req.EndMonth, req.StartMonth)
		}
	}

	if _, err := s.Customers.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		CustomerID: req.CustomerID,
		FeeAmount:  req.FeeAmount,
		Frequency:  frequency,
		StartMonth: req.StartMonth,
		EndMonth:   req.EndMonth,
		Status:     billing.SubscriptionActive,
	}

	if err := s.Subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	return s.Subscriptions.GetByID(ctx, id)
}

func (s *SubscriptionService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Subscription, error) {
	return s.Subscriptions.ListByCustomer(ctx, customerID)
}

// UpdateStatus pauses or resumes a subscription. Paused subscriptions
// are skipped by invoice generation.
func (s *SubscriptionService) UpdateStatus(ctx context.Context, id int, req *models.UpdateSubscriptionStatusRequest) (*models.Subscription, error) {
	status := billing.SubscriptionStatus(req.Status)
	switch status {
	case billing.SubscriptionActive, billing.SubscriptionPaused:
	default:
		return nil, billing.Invalidf("unknown subscription status %q", req.Status)
	}

	if err := s.Subscriptions.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.Subscriptions.GetByID(ctx, id)
}
