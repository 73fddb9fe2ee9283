package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"council-backend/internal/billing"
)

func TestDeriveInvoiceStatus(t *testing.T) {
	assert.Equal(t, billing.InvoiceIssued, billing.DeriveInvoiceStatus(100, 0))
	assert.Equal(t, billing.InvoicePartiallyPaid, billing.DeriveInvoiceStatus(100, 40))
	assert.Equal(t, billing.InvoicePaid, billing.DeriveInvoiceStatus(100, 100))
	assert.Equal(t, billing.InvoicePaid, billing.DeriveInvoiceStatus(100, 150))

	// Sub-cent residue counts as settled
	assert.Equal(t, billing.InvoicePaid, billing.DeriveInvoiceStatus(100.004, 100))
}

func TestDeriveStatementStatus(t *testing.T) {
	assert.Equal(t, billing.StatementOpen, billing.DeriveStatementStatus(901.5, 0))
	assert.Equal(t, billing.StatementOpen, billing.DeriveStatementStatus(901.5, 901.49))

	assert.Equal(t, billing.StatementPaid, billing.DeriveStatementStatus(901.5, 901.5))
	assert.Equal(t, billing.StatementPaid, billing.DeriveStatementStatus(901.5, 1000))

	// Sub-cent residue counts as settled, same as invoices
	assert.Equal(t, billing.StatementPaid, billing.DeriveStatementStatus(100.004, 100))
}

func TestOverdueEligible(t *testing.T) {
	assert.True(t, billing.OverdueEligible(billing.InvoiceIssued))
	assert.True(t, billing.OverdueEligible(billing.InvoicePartiallyPaid))

	assert.False(t, billing.OverdueEligible(billing.InvoicePaid))
	assert.False(t, billing.OverdueEligible(billing.InvoiceOverdue))
	assert.False(t, billing.OverdueEligible(billing.InvoiceWaived))
	assert.False(t, billing.OverdueEligible(billing.InvoiceCancelled))
}
