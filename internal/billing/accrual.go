package billing

import "time"

// AccrualParams carries a lease's terms snapshot and the evaluation
// instant for one month's rent computation. Now is an explicit parameter
// so the computation never reads the system clock.
type AccrualParams struct {
	MonthKey       string
	SizeSqFt       float64
	RatePerSqFt    float64
	PaymentDueDay  int
	FineRatePerDay float64
	PaidForMonth   bool
	ReleasedAt     *time.Time // early termination; freezes fine accrual
	EndDate        *time.Time // agreement end, applied when CapToEndDate is set
	CapToEndDate   bool
	Now            time.Time
	UTCOffsetHours int
}

// AccrualResult is the computed view of one lease month. Callers decide
// whether to persist it as a statement or merely preview it.
type AccrualResult struct {
	MonthKey    string    `json:"month_key"`
	MonthlyRent float64   `json:"monthly_rent"`
	DueDate     time.Time `json:"due_date"`
	DaysUnpaid  int       `json:"days_unpaid"`
	FineDays    int       `json:"fine_days"`
	FineAmount  float64   `json:"fine_amount"`
	TotalDue    float64   `json:"total_due"`
}

// ComputeMonthlyAccrual computes monthly rent, unpaid days since the due
// date, fine accrual and total due for one lease month.
//
// Fines accrue per day from the due date to the civil "today", capped at
// the release date once a lease is let go (accrual stops advancing even
// when evaluated later) and, when CapToEndDate is set, at the agreement
// end date. A due date in the future yields zero unpaid days.
func ComputeMonthlyAccrual(p AccrualParams) (AccrualResult, error) {
	if p.SizeSqFt <= 0 {
		return AccrualResult{}, Invalidf("lease size must be positive, got %v", p.SizeSqFt)
	}
	if p.RatePerSqFt < 0 || p.FineRatePerDay < 0 {
		return AccrualResult{}, Invalidf("rates must not be negative")
	}

	dueDate, err := DueDate(p.MonthKey, p.PaymentDueDay)
	if err != nil {
		return AccrualResult{}, err
	}

	monthlyRent := Round2(p.SizeSqFt * p.RatePerSqFt)

	endCap := CivilToday(p.Now, p.UTCOffsetHours)
	if p.ReleasedAt != nil {
		if released := dateOnly(*p.ReleasedAt); released.Before(endCap) {
			endCap = released
		}
	}
	if p.CapToEndDate && p.EndDate != nil {
		if end := dateOnly(*p.EndDate); end.Before(endCap) {
			endCap = end
		}
	}

	result := AccrualResult{
		MonthKey:    p.MonthKey,
		MonthlyRent: monthlyRent,
		DueDate:     dueDate,
	}

	if !p.PaidForMonth {
		result.DaysUnpaid = DiffDays(dueDate, endCap)
		result.FineDays = result.DaysUnpaid
		result.FineAmount = Round2(float64(result.FineDays) * p.FineRatePerDay)
	}

	result.TotalDue = Round2(monthlyRent + result.FineAmount)
	return result, nil
}
