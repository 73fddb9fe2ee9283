package services

import (
	"context"

	"council-backend/internal/billing"
	"council-backend/internal/cache"
	"council-backend/internal/models"
	"council-backend/internal/repositories"
)

type WasteCustomerService struct {
	Customers *repositories.WasteCustomerRepository
	Invoices  *repositories.WasteInvoiceRepository
}

func NewWasteCustomerService(customers *repositories.WasteCustomerRepository, invoices *repositories.WasteInvoiceRepository) *WasteCustomerService {
	return &WasteCustomerService{Customers: customers, Invoices: invoices}
}

func (s *WasteCustomerService) CreateCustomer(ctx context.Context, req *models.CreateWasteCustomerRequest) (*models.WasteCustomer, error) {
	if req.FullName == "" || req.IDCardNumber == "" {
		return nil, billing.Invalidf("full name and ID card number are required")
	}

	customer := &models.WasteCustomer{
		FullName:      req.FullName,
		IDCardNumber:  req.IDCardNumber,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Category:      req.Category,
	}

	if err := s.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *WasteCustomerService) GetCustomer(ctx context.Context, id int) (*models.WasteCustomer, error) {
	return s.Customers.GetByID(ctx, id)
}

func (s *WasteCustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateWasteCustomerRequest) (*models.WasteCustomer, error) {
	if req.FullName == "" || req.IDCardNumber == "" {
		return nil, billing.Invalidf("full name and ID card number are required")
	}
	return s.Customers.Update(ctx, id, req)
}

func (s *WasteCustomerService) ListCustomers(ctx context.Context, limit, offset int) ([]*models.WasteCustomer, error) {
	return s.Customers.List(ctx, limit, offset)
}

// OutstandingBalance returns the customer's unpaid invoice balance,
// served from cache when fresh.
func (s *WasteCustomerService) OutstandingBalance(ctx context.Context, customerID int) (float64, error) {
	if balance, ok := cache.GetCustomerBalance(ctx, customerID); ok {
		return balance, nil
	}

	if _, err := s.Customers.GetByID(ctx, customerID); err != nil {
		return 0, err
	}

	balance, err := s.Invoices.SumOutstandingByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	cache.SetCustomerBalance(ctx, customerID, balance)
	return balance, nil
}
