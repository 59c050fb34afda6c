package service

import (
	"time"

	"github.com/noah-isme/student-report-api/internal/models"
)

const analyticsWindowMonths = 6

// RollingMonths returns the size calendar months ending at now's month, oldest first.
// size is clamped to [1, 12].
func RollingMonths(now time.Time, size int) []models.YearMonth {
	if size < 1 {
		size = 1
	}
	if size > 12 {
		size = 12
	}
	current := int(now.Month())
	year := now.Year()

	months := make([]models.YearMonth, 0, size)
	for i := current - size + 1; i <= current; i++ {
		month, y := i, year
		switch {
		case i < 1:
			month, y = i+12, year-1
		case i > 12:
			month = i - 12
		}
		months = append(months, models.YearMonth{Year: y, Month: time.Month(month)})
	}
	return months
}

// windowBounds returns [first day of the oldest month, first day after the newest month).
func windowBounds(months []models.YearMonth) (time.Time, time.Time) {
	first := months[0]
	last := months[len(months)-1]
	from := time.Date(first.Year, first.Month, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(last.Year, last.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return from, to
}
