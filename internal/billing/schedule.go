package billing

// monthIndex converts a parsed month to a linear index for cadence math.
func monthIndex(year int, month int) int {
	return year*12 + month - 1
}

// PeriodDue reports whether a subscription with the given cadence owes a
// charge for the period month. The period must fall within
// [startMonth, endMonth] (endMonth empty means open-ended) and align to
// the frequency cadence counted from startMonth: QUARTERLY charges on
// 3-month boundaries, YEARLY on 12-month boundaries.
func PeriodDue(frequency Frequency, startMonth, endMonth, period string) (bool, error) {
	startYear, startM, err := ParseMonthKey(startMonth)
	if err != nil {
		return false, err
	}
	periodYear, periodM, err := ParseMonthKey(period)
	if err != nil {
		return false, err
	}

	diff := monthIndex(periodYear, int(periodM)) - monthIndex(startYear, int(startM))
	if diff < 0 {
		return false, nil
	}

	if endMonth != "" {
		endYear, endM, err := ParseMonthKey(endMonth)
		if err != nil {
			return false, err
		}
		if monthIndex(periodYear, int(periodM)) > monthIndex(endYear, int(endM)) {
			return false, nil
		}
	}

	switch frequency {
	case FrequencyMonthly:
		return true, nil
	case FrequencyQuarterly:
		return diff%3 == 0, nil
	case FrequencyYearly:
		return diff%12 == 0, nil
	default:
		return false, Invalidf("unknown billing frequency %q", frequency)
	}
}
