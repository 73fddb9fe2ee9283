package billing

// StatementStatus is the lifecycle state of a land-rent statement.
type StatementStatus string

const (
	StatementOpen StatementStatus = "OPEN"
	StatementPaid StatementStatus = "PAID"
)

// InvoiceStatus is the lifecycle state of a waste invoice.
type InvoiceStatus string

const (
	InvoiceIssued        InvoiceStatus = "ISSUED"
	InvoiceOverdue       InvoiceStatus = "OVERDUE"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceWaived        InvoiceStatus = "WAIVED"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// Frequency is the billing cadence of a waste subscription.
type Frequency string

const (
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyYearly    Frequency = "YEARLY"
)

// SubscriptionStatus is the state of a waste subscription.
type SubscriptionStatus string

const (
	SubscriptionActive SubscriptionStatus = "ACTIVE"
	SubscriptionPaused SubscriptionStatus = "PAUSED"
)

// DeriveInvoiceStatus returns the payment-driven status for an invoice:
// PAID when fully covered, PARTIALLY_PAID when partly covered, ISSUED
// otherwise. Overdue marking is a separate scan (see OverdueEligible).
func DeriveInvoiceStatus(total, paid float64) InvoiceStatus {
	if paid <= 0 {
		return InvoiceIssued
	}
	if Round2(total-paid) <= 0 {
		return InvoicePaid
	}
	return InvoicePartiallyPaid
}

// DeriveStatementStatus flips a statement to PAID once recorded payments
// cover the total due, and keeps it OPEN otherwise.
func DeriveStatementStatus(totalDue, paidTotal float64) StatementStatus {
	if Round2(totalDue-paidTotal) <= 0 {
		return StatementPaid
	}
	return StatementOpen
}

// OverdueEligible reports whether an invoice in the given status may be
// flipped to OVERDUE. PAID, WAIVED and CANCELLED invoices are never touched.
func OverdueEligible(status InvoiceStatus) bool {
	return status == InvoiceIssued || status == InvoicePartiallyPaid
}
