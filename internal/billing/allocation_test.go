package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"council-backend/internal/billing"
)

func outstanding(id int, period string, total, paid float64) billing.OutstandingInvoice {
	return billing.OutstandingInvoice{
		ID:          id,
		PeriodMonth: period,
		Total:       total,
		Paid:        paid,
		Balance:     billing.Round2(total - paid),
	}
}

func TestPlanAllocations_OldestFirstFanOut(t *testing.T) {
	// GIVEN: 500 paid against invoices of 300 (older) and 400 (newer)
	// THEN: 300 fully covers A, 200 partially covers B, nothing remains

	invoices := []billing.OutstandingInvoice{
		outstanding(2, "2026-02", 400, 0),
		outstanding(1, "2026-01", 300, 0),
	}

	plans, remaining, err := billing.PlanAllocations(500, invoices)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.Equal(t, 1, plans[0].InvoiceID)
	assert.Equal(t, 300.0, plans[0].Amount)
	assert.Equal(t, billing.InvoicePaid, plans[0].NewStatus)
	assert.Equal(t, 0.0, plans[0].NewBalance)

	assert.Equal(t, 2, plans[1].InvoiceID)
	assert.Equal(t, 200.0, plans[1].Amount)
	assert.Equal(t, billing.InvoicePartiallyPaid, plans[1].NewStatus)
	assert.Equal(t, 200.0, plans[1].NewBalance)

	assert.Equal(t, 0.0, remaining)
}

func TestPlanAllocations_OverpaymentLeftUnallocated(t *testing.T) {
	invoices := []billing.OutstandingInvoice{outstanding(7, "2026-03", 400, 0)}

	plans, remaining, err := billing.PlanAllocations(1000, invoices)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	assert.Equal(t, 400.0, plans[0].Amount)
	assert.Equal(t, billing.InvoicePaid, plans[0].NewStatus)
	assert.Equal(t, 600.0, remaining, "overpayment stays unallocated, never forced onto an invoice")
}

func TestPlanAllocations_NoOutstandingInvoices(t *testing.T) {
	plans, remaining, err := billing.PlanAllocations(250, nil)
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.Equal(t, 250.0, remaining)
}

func TestPlanAllocations_RejectsNonPositiveAmount(t *testing.T) {
	var verr *billing.ValidationError

	_, _, err := billing.PlanAllocations(0, nil)
	assert.ErrorAs(t, err, &verr)

	_, _, err = billing.PlanAllocations(-10, nil)
	assert.ErrorAs(t, err, &verr)
}

func TestPlanAllocations_SamePeriodTieBreaksByCreation(t *testing.T) {
	invoices := []billing.OutstandingInvoice{
		outstanding(12, "2026-01", 100, 0),
		outstanding(11, "2026-01", 100, 0),
	}

	plans, _, err := billing.PlanAllocations(150, invoices)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, 11, plans[0].InvoiceID)
	assert.Equal(t, 12, plans[1].InvoiceID)
	assert.Equal(t, 50.0, plans[1].Amount)
}

func TestPlanAllocations_Conservation(t *testing.T) {
	// sum(allocations) <= amount and every invoice keeps
	// balance == max(0, total - paid) after applying its plan.

	invoices := []billing.OutstandingInvoice{
		outstanding(1, "2025-11", 120.55, 20.55),
		outstanding(2, "2025-12", 75.10, 0),
		outstanding(3, "2026-01", 310.00, 100),
	}

	for _, amount := range []float64{0.01, 50, 99.99, 175.10, 385.10, 5000} {
		plans, remaining, err := billing.PlanAllocations(amount, invoices)
		require.NoError(t, err)

		var allocated float64
		for _, plan := range plans {
			allocated += plan.Amount
			assert.Equal(t, plan.NewBalance, billing.Round2(findInvoice(t, invoices, plan.InvoiceID).Total-plan.NewPaid))
			assert.GreaterOrEqual(t, plan.NewBalance, 0.0)
		}
		assert.InDelta(t, amount, billing.Round2(allocated+remaining), 0.001)
		assert.LessOrEqual(t, billing.Round2(allocated), amount)
	}
}

func TestPlanAllocations_SubCentAmountsNeverPlanZero(t *testing.T) {
	// A payment below half a cent rounds to a zero take; no plan row may
	// carry a zero amount (the allocations table rejects it).

	invoices := []billing.OutstandingInvoice{outstanding(1, "2026-01", 100, 0)}

	plans, remaining, err := billing.PlanAllocations(0.004, invoices)
	require.NoError(t, err)
	assert.Empty(t, plans, "sub-cent payment must not produce a zero-amount allocation")
	assert.Equal(t, 0.004, remaining, "residue stays unallocated on the payment")

	// A sub-cent tail on a normal payment rounds into the take instead of
	// surviving as a zero-amount plan.
	plans, remaining, err = billing.PlanAllocations(50.004, invoices)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 50.0, plans[0].Amount)
	assert.Equal(t, 0.0, remaining)
}

func TestPlanAllocations_SkipsSettledInvoices(t *testing.T) {
	invoices := []billing.OutstandingInvoice{
		outstanding(1, "2025-11", 100, 100),
		outstanding(2, "2025-12", 100, 0),
	}

	plans, remaining, err := billing.PlanAllocations(100, invoices)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 2, plans[0].InvoiceID)
	assert.Equal(t, 0.0, remaining)
}

func findInvoice(t *testing.T, invoices []billing.OutstandingInvoice, id int) billing.OutstandingInvoice {
	t.Helper()
	for _, inv := range invoices {
		if inv.ID == id {
			return inv
		}
	}
	t.Fatalf("invoice %d not in fixture", id)
	return billing.OutstandingInvoice{}
}
