package utils

import "time"

// PastDateByMonths returns the current time shifted back by the given number
// of months.
func PastDateByMonths(months int) time.Time {
	return time.Now().AddDate(0, -months, 0)
}
