package models

import "time"

// WasteCustomer is a waste-management billing customer.
type WasteCustomer struct {
	ID            int       `json:"id"`
	FullName      string    `json:"full_name"`
	IDCardNumber  string    `json:"id_card_number"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateWasteCustomerRequest represents the request body for creating a customer
type CreateWasteCustomerRequest struct {
	FullName      string `json:"full_name"`
	IDCardNumber  string `json:"id_card_number"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Category      string `json:"category"`
}

// UpdateWasteCustomerRequest represents the request body for updating a customer
type UpdateWasteCustomerRequest struct {
	FullName      string `json:"full_name"`
	IDCardNumber  string `json:"id_card_number"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Category      string `json:"category"`
}
