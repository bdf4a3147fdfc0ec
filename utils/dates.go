package utils

import (
	"time"

	"vinyasaclub/models"
)

// Today returns the calendar day of now in loc as YYYY-MM-DD.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(models.DateLayout)
}

// LastNDays returns the n calendar days ending today, oldest first.
func LastNDays(now time.Time, loc *time.Location, n int) []string {
	t := now.In(loc)
	days := make([]string, n)
	for i := 0; i < n; i++ {
		d := time.Date(t.Year(), t.Month(), t.Day()-(n-1-i), 0, 0, 0, 0, loc)
		days[i] = d.Format(models.DateLayout)
	}
	return days
}
