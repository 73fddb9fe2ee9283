package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"council-backend/internal/billing"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 900.0, billing.Round2(1000*0.90))
	assert.Equal(t, 1.5, billing.Round2(15*0.10))
	assert.Equal(t, 0.3, billing.Round2(0.1+0.2))
	assert.Equal(t, 2.68, billing.Round2(2.675000001))
	assert.Equal(t, -1.23, billing.Round2(-1.2349))
}

func TestParseMonthKey(t *testing.T) {
	year, month, err := billing.ParseMonthKey("2026-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.January, month)

	for _, bad := range []string{"", "2026", "2026-13", "2026-00", "26-01", "2026/01", "2026-1"} {
		_, _, err := billing.ParseMonthKey(bad)
		assert.Error(t, err, "month key %q should be rejected", bad)
		var verr *billing.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
}

func TestDueDate_ClampsToMonthEnd(t *testing.T) {
	// Due day 31 in February clamps to the last day instead of rolling
	// into March.
	due, err := billing.DueDate("2026-02", 31)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), due)

	due, err = billing.DueDate("2028-02", 31)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC), due)

	due, err = billing.DueDate("2026-01", 10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), due)

	_, err = billing.DueDate("2026-01", 0)
	assert.Error(t, err)
}

func TestDiffDays_NeverNegative(t *testing.T) {
	due := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, time.January, 25, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 15, billing.DiffDays(due, later))
	assert.Equal(t, 0, billing.DiffDays(due, due))
	assert.Equal(t, 0, billing.DiffDays(later, due), "end before start must floor at zero")
}

func TestDiffDays_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, time.January, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, time.January, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, billing.DiffDays(a, b))
}

func TestCivilToday_FixedOffset(t *testing.T) {
	// 21:30 UTC is already the next civil day at UTC+5.
	now := time.Date(2026, time.January, 24, 21, 30, 0, 0, time.UTC)
	assert.Equal(t,
		time.Date(2026, time.January, 25, 0, 0, 0, 0, time.UTC),
		billing.CivilToday(now, 5))

	// Same instant at UTC+0 is still the 24th.
	assert.Equal(t,
		time.Date(2026, time.January, 24, 0, 0, 0, 0, time.UTC),
		billing.CivilToday(now, 0))
}

func TestCivilDayRange(t *testing.T) {
	start, end, err := billing.CivilDayRange("2026-01-25", 5)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 24, 19, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 25, 19, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = billing.CivilDayRange("25-01-2026", 5)
	assert.Error(t, err)
}

func TestAddMonths(t *testing.T) {
	next, err := billing.AddMonths("2026-12", 1)
	require.NoError(t, err)
	assert.Equal(t, "2027-01", next)

	prev, err := billing.AddMonths("2026-01", -2)
	require.NoError(t, err)
	assert.Equal(t, "2025-11", prev)
}
