package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"council-backend/internal/billing"
	"council-backend/internal/models"
)

type WasteCustomerRepository struct {
	DB *pgxpool.Pool
}

func NewWasteCustomerRepository(db *pgxpool.Pool) *WasteCustomerRepository {
	return &WasteCustomerRepository{DB: db}
}

func (r *WasteCustomerRepository) Create(ctx context.Context, customer *models.WasteCustomer) error {
	query := `
		INSERT INTO waste_customers (full_name, id_card_number, address, contact_number, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		customer.FullName,
		customer.IDCardNumber,
		customer.Address,
		customer.ContactNumber,
		customer.Category,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)

	if isUniqueViolation(err) {
		return billing.Conflictf("customer with ID card %s already exists", customer.IDCardNumber)
	}
	return err
}

func (r *WasteCustomerRepository) GetByID(ctx context.Context, id int) (*models.WasteCustomer, error) {
	query := `
		SELECT id, full_name, id_card_number, COALESCE(address, ''), COALESCE(contact_number, ''),
		       COALESCE(category, ''), created_at, updated_at
		FROM waste_customers
		WHERE id = $1
	`

	customer := &models.WasteCustomer{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.FullName,
		&customer.IDCardNumber,
		&customer.Address,
		&customer.ContactNumber,
		&customer.Category,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("customer", strconv.Itoa(id))
	}
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *WasteCustomerRepository) Update(ctx context.Context, id int, req *models.UpdateWasteCustomerRequest) (*models.WasteCustomer, error) {
	query := `
		UPDATE waste_customers
		SET full_name = $1, id_card_number = $2, address = $3, contact_number = $4,
		    category = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, full_name, id_card_number, address, contact_number, category, created_at, updated_at
	`

	customer := &models.WasteCustomer{}
	err := r.DB.QueryRow(ctx, query,
		req.FullName,
		req.IDCardNumber,
		req.Address,
		req.ContactNumber,
		req.Category,
		id,
	).Scan(
		&customer.ID,
		&customer.FullName,
		&customer.IDCardNumber,
		&customer.Address,
		&customer.ContactNumber,
		&customer.Category,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, billing.NotFound("customer", strconv.Itoa(id))
	}
	if isUniqueViolation(err) {
		return nil, billing.Conflictf("customer with ID card %s already exists", req.IDCardNumber)
	}
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *WasteCustomerRepository) List(ctx context.Context, limit, offset int) ([]*models.WasteCustomer, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, full_name, id_card_number, COALESCE(address, ''), COALESCE(contact_number, ''),
		       COALESCE(category, ''), created_at, updated_at
		FROM waste_customers
		ORDER BY full_name, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.WasteCustomer
	for rows.Next() {
		customer := &models.WasteCustomer{}
		err := rows.Scan(
			&customer.ID,
			&customer.FullName,
			&customer.IDCardNumber,
			&customer.Address,
			&customer.ContactNumber,
			&customer.Category,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}
