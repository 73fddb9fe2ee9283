package timeutil

import (
	"time"
)

// MVT is the council's local time (Maldives, UTC+5)
var MVT *time.Location

func init() {
	var err error
	MVT, err = time.LoadLocation("Indian/Maldives")
	if err != nil {
		// Fallback: create fixed zone if Indian/Maldives not available
		MVT = time.FixedZone("MVT", 5*60*60) // UTC+5
	}
}

// Now returns the current time in MVT
func Now() time.Time {
	return time.Now().In(MVT)
}

// ToMVT converts any time to MVT
func ToMVT(t time.Time) time.Time {
	return t.In(MVT)
}

// ParseInMVT parses a time string and returns it in MVT
func ParseInMVT(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, MVT)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatMVT formats a time in MVT using the given layout
func FormatMVT(t time.Time, layout string) string {
	return t.In(MVT).Format(layout)
}

// StartOfDay returns the start of day (00:00:00) in MVT for the given time
func StartOfDay(t time.Time) time.Time {
	local := t.In(MVT)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, MVT)
}

// Common layouts for MVT formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
