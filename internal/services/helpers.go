package services

import "time"

// currencySymbol prefixes every formatted currency value in API responses.
const currencySymbol = "₹"

// dateOnly truncates a timestamp to date precision in UTC. All expense,
// budget, and bill dates are stored and compared at this precision.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
