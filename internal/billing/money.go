package billing

import (
	"math"
	"strconv"
	"time"
)

// MonthKeyLayout is the calendar month identifier format (e.g. "2026-01").
const MonthKeyLayout = "2006-01"

// DateLayout is the civil calendar date format used in API payloads.
const DateLayout = "2006-01-02"

// Round2 rounds a monetary amount to 2 decimal places, half-up on the
// scaled integer. Every computed monetary field in the system passes
// through this to avoid floating-point drift.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// ParseMonthKey parses a "YYYY-MM" month key.
func ParseMonthKey(monthKey string) (int, time.Month, error) {
	if len(monthKey) != 7 || monthKey[4] != '-' {
		return 0, 0, Invalidf("invalid month key %q, expected YYYY-MM", monthKey)
	}
	year, err := strconv.Atoi(monthKey[:4])
	if err != nil || year < 1 {
		return 0, 0, Invalidf("invalid month key %q, expected YYYY-MM", monthKey)
	}
	month, err := strconv.Atoi(monthKey[5:])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, Invalidf("invalid month key %q, expected YYYY-MM", monthKey)
	}
	return year, time.Month(month), nil
}

// MonthKeyOf returns the month key for the given instant's UTC date.
func MonthKeyOf(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// AddMonths shifts a month key by n calendar months.
func AddMonths(monthKey string, n int) (string, error) {
	year, month, err := ParseMonthKey(monthKey)
	if err != nil {
		return "", err
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0).Format(MonthKeyLayout), nil
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DueDate constructs the due date as the dueDay-th calendar day of the
// month in UTC. Due days past the end of the month clamp to the last day
// (due day 31 in February yields Feb 28/29) rather than rolling over.
func DueDate(monthKey string, dueDay int) (time.Time, error) {
	year, month, err := ParseMonthKey(monthKey)
	if err != nil {
		return time.Time{}, err
	}
	if dueDay < 1 {
		return time.Time{}, Invalidf("invalid payment due day %d", dueDay)
	}
	if last := DaysInMonth(year, month); dueDay > last {
		dueDay = last
	}
	return time.Date(year, month, dueDay, 0, 0, 0, 0, time.UTC), nil
}

// DiffDays returns the whole-day count from a to b on UTC-normalized
// dates, floored and never negative.
func DiffDays(a, b time.Time) int {
	d := int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// CivilToday maps an instant to the civil calendar date it falls on at a
// fixed UTC offset, returned as a UTC midnight. Accrual math uses this so
// "today" is deterministic regardless of the server's timezone.
func CivilToday(now time.Time, utcOffsetHours int) time.Time {
	shifted := now.UTC().Add(time.Duration(utcOffsetHours) * time.Hour)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
}

// CivilDayRange converts a civil calendar date at a fixed UTC offset into
// the half-open [start, end) instant range covering that day. Used to
// scope time-of-day lookups to a local civil day.
func CivilDayRange(date string, utcOffsetHours int) (time.Time, time.Time, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, time.Time{}, Invalidf("invalid date %q, expected YYYY-MM-DD", date)
	}
	start := day.Add(-time.Duration(utcOffsetHours) * time.Hour)
	return start, start.Add(24 * time.Hour), nil
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
