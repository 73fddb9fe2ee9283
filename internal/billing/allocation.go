package billing

import "sort"

// OutstandingInvoice is the slice of invoice state the allocation planner
// needs: identity, ordering key and current amounts.
type OutstandingInvoice struct {
	ID          int
	PeriodMonth string
	Total       float64
	Paid        float64
	Balance     float64
}

// AllocationPlan is one planned write: allocate Amount of a payment to an
// invoice, leaving it with NewPaid/NewBalance/NewStatus.
type AllocationPlan struct {
	InvoiceID  int
	Amount     float64
	NewPaid    float64
	NewBalance float64
	NewStatus  InvoiceStatus
}

// PlanAllocations distributes a payment amount across outstanding
// invoices, oldest period first (ties broken by creation order). It
// returns the planned allocations and any remainder left unallocated.
//
// The plan is computed purely from the outstanding set at call time;
// prior payments are never reallocated. No invoice is pushed below zero
// balance, so sum(plans) <= amount always holds.
func PlanAllocations(amount float64, outstanding []OutstandingInvoice) ([]AllocationPlan, float64, error) {
	if amount <= 0 {
		return nil, 0, Invalidf("payment amount must be positive, got %v", amount)
	}

	invoices := make([]OutstandingInvoice, len(outstanding))
	copy(invoices, outstanding)
	sort.SliceStable(invoices, func(i, j int) bool {
		if invoices[i].PeriodMonth != invoices[j].PeriodMonth {
			return invoices[i].PeriodMonth < invoices[j].PeriodMonth
		}
		return invoices[i].ID < invoices[j].ID
	})

	var plans []AllocationPlan
	remaining := amount
	for _, inv := range invoices {
		if remaining <= 0 {
			break
		}
		if inv.Balance <= 0 {
			continue
		}
		take := inv.Balance
		if remaining < take {
			take = remaining
		}
		take = Round2(take)
		if take == 0 {
			// Sub-cent residue; too small to book as an allocation row.
			continue
		}
		newPaid := Round2(inv.Paid + take)
		newBalance := Round2(inv.Total - newPaid)
		if newBalance < 0 {
			newBalance = 0
		}
		plans = append(plans, AllocationPlan{
			InvoiceID:  inv.ID,
			Amount:     take,
			NewPaid:    newPaid,
			NewBalance: newBalance,
			NewStatus:  DeriveInvoiceStatus(inv.Total, newPaid),
		})
		remaining = Round2(remaining - take)
	}

	return plans, remaining, nil
}
