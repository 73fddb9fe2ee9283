package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"council-backend/internal/billing"
)

func baseParams(now time.Time) billing.AccrualParams {
	return billing.AccrualParams{
		MonthKey:       "2026-01",
		SizeSqFt:       1000,
		RatePerSqFt:    0.90,
		PaymentDueDay:  10,
		FineRatePerDay: 0.10,
		Now:            now,
		UTCOffsetHours: 0,
	}
}

func TestComputeMonthlyAccrual_ReferenceScenario(t *testing.T) {
	// GIVEN: 1000 sq ft at 0.90/sq ft, due day 10, fine 0.10/day, unpaid
	// WHEN: evaluated on 2026-01-25
	// THEN: rent 900, 15 unpaid days, fine 1.5, total 901.5

	now := time.Date(2026, time.January, 25, 9, 0, 0, 0, time.UTC)
	result, err := billing.ComputeMonthlyAccrual(baseParams(now))
	require.NoError(t, err)

	assert.Equal(t, 900.0, result.MonthlyRent)
	assert.Equal(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), result.DueDate)
	assert.Equal(t, 15, result.DaysUnpaid)
	assert.Equal(t, 15, result.FineDays)
	assert.Equal(t, 1.5, result.FineAmount)
	assert.Equal(t, 901.5, result.TotalDue)
}

func TestComputeMonthlyAccrual_PaidMonthAccruesNoFine(t *testing.T) {
	now := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	p := baseParams(now)
	p.PaidForMonth = true

	result, err := billing.ComputeMonthlyAccrual(p)
	require.NoError(t, err)

	assert.Equal(t, 0, result.DaysUnpaid)
	assert.Equal(t, 0.0, result.FineAmount)
	assert.Equal(t, 900.0, result.TotalDue)
}

func TestComputeMonthlyAccrual_FutureMonthHasZeroDays(t *testing.T) {
	// Statement for a month whose due date has not arrived yet.
	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	result, err := billing.ComputeMonthlyAccrual(baseParams(now))
	require.NoError(t, err)

	assert.Equal(t, 0, result.DaysUnpaid, "days unpaid must never go negative")
	assert.Equal(t, 900.0, result.TotalDue)
}

func TestComputeMonthlyAccrual_MonotonicFineAccrual(t *testing.T) {
	// Fine for a later "today" is never smaller than for an earlier one.
	prev := 0.0
	for day := 5; day <= 28; day++ {
		now := time.Date(2026, time.January, day, 12, 0, 0, 0, time.UTC)
		result, err := billing.ComputeMonthlyAccrual(baseParams(now))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.FineAmount, prev, "fine shrank on day %d", day)
		prev = result.FineAmount
	}
}

func TestComputeMonthlyAccrual_ReleaseFreezesAccrual(t *testing.T) {
	// GIVEN: a lease released on 2026-01-20
	// WHEN: evaluated at the release date and again far after it
	// THEN: unpaid days are identical (accrual frozen at release)

	released := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)

	atRelease := baseParams(released)
	atRelease.ReleasedAt = &released
	resultAtRelease, err := billing.ComputeMonthlyAccrual(atRelease)
	require.NoError(t, err)

	later := baseParams(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	later.ReleasedAt = &released
	resultLater, err := billing.ComputeMonthlyAccrual(later)
	require.NoError(t, err)

	assert.Equal(t, 10, resultAtRelease.DaysUnpaid)
	assert.Equal(t, resultAtRelease.DaysUnpaid, resultLater.DaysUnpaid)
	assert.Equal(t, resultAtRelease.FineAmount, resultLater.FineAmount)
}

func TestComputeMonthlyAccrual_ReleaseBeforeDueDate(t *testing.T) {
	released := time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC)
	p := baseParams(time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	p.ReleasedAt = &released

	result, err := billing.ComputeMonthlyAccrual(p)
	require.NoError(t, err)

	assert.Equal(t, 0, result.DaysUnpaid)
	assert.Equal(t, 0.0, result.FineAmount)
}

func TestComputeMonthlyAccrual_CapToEndDate(t *testing.T) {
	end := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	p := baseParams(time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC))
	p.EndDate = &end
	p.CapToEndDate = true

	result, err := billing.ComputeMonthlyAccrual(p)
	require.NoError(t, err)
	assert.Equal(t, 5, result.DaysUnpaid)

	// Without the flag the end date is ignored.
	p.CapToEndDate = false
	result, err = billing.ComputeMonthlyAccrual(p)
	require.NoError(t, err)
	assert.Equal(t, 41, result.DaysUnpaid)
}

func TestComputeMonthlyAccrual_UsesCivilOffset(t *testing.T) {
	// 20:00 UTC on Jan 24 is already Jan 25 at UTC+5, so one more fine day.
	now := time.Date(2026, time.January, 24, 20, 0, 0, 0, time.UTC)

	utc := baseParams(now)
	resultUTC, err := billing.ComputeMonthlyAccrual(utc)
	require.NoError(t, err)

	local := baseParams(now)
	local.UTCOffsetHours = 5
	resultLocal, err := billing.ComputeMonthlyAccrual(local)
	require.NoError(t, err)

	assert.Equal(t, 14, resultUTC.DaysUnpaid)
	assert.Equal(t, 15, resultLocal.DaysUnpaid)
}

func TestComputeMonthlyAccrual_RejectsBadInput(t *testing.T) {
	p := baseParams(time.Now())
	p.SizeSqFt = 0
	_, err := billing.ComputeMonthlyAccrual(p)
	var verr *billing.ValidationError
	assert.ErrorAs(t, err, &verr)

	p = baseParams(time.Now())
	p.MonthKey = "jan-2026"
	_, err = billing.ComputeMonthlyAccrual(p)
	assert.ErrorAs(t, err, &verr)
}
