package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"council-backend/internal/billing"
)

func TestPeriodDue_Monthly(t *testing.T) {
	for _, period := range []string{"2026-01", "2026-02", "2026-12"} {
		due, err := billing.PeriodDue(billing.FrequencyMonthly, "2026-01", "", period)
		require.NoError(t, err)
		assert.True(t, due, "monthly subscription should charge in %s", period)
	}

	due, err := billing.PeriodDue(billing.FrequencyMonthly, "2026-03", "", "2026-02")
	require.NoError(t, err)
	assert.False(t, due, "period before start month never charges")
}

func TestPeriodDue_QuarterlyBoundaries(t *testing.T) {
	cases := map[string]bool{
		"2026-02": true,  // start month itself
		"2026-03": false,
		"2026-05": true,  // +3
		"2026-08": true,  // +6
		"2026-09": false,
		"2027-02": true,  // +12
	}
	for period, want := range cases {
		due, err := billing.PeriodDue(billing.FrequencyQuarterly, "2026-02", "", period)
		require.NoError(t, err)
		assert.Equal(t, want, due, "quarterly cadence for %s", period)
	}
}

func TestPeriodDue_YearlyBoundaries(t *testing.T) {
	due, err := billing.PeriodDue(billing.FrequencyYearly, "2025-06", "", "2026-06")
	require.NoError(t, err)
	assert.True(t, due)

	due, err = billing.PeriodDue(billing.FrequencyYearly, "2025-06", "", "2026-05")
	require.NoError(t, err)
	assert.False(t, due)
}

func TestPeriodDue_EndMonthWindow(t *testing.T) {
	due, err := billing.PeriodDue(billing.FrequencyMonthly, "2025-01", "2025-06", "2025-07")
	require.NoError(t, err)
	assert.False(t, due, "period past end month never charges")

	due, err = billing.PeriodDue(billing.FrequencyMonthly, "2025-01", "2025-06", "2025-06")
	require.NoError(t, err)
	assert.True(t, due, "end month is inclusive")
}

func TestPeriodDue_BadInput(t *testing.T) {
	var verr *billing.ValidationError

	_, err := billing.PeriodDue(billing.Frequency("WEEKLY"), "2025-01", "", "2025-02")
	assert.ErrorAs(t, err, &verr)

	_, err = billing.PeriodDue(billing.FrequencyMonthly, "bad", "", "2025-02")
	assert.ErrorAs(t, err, &verr)
}
