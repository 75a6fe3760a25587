// Package schedule holds the pure scheduling rules: booking window
// validation and room availability.
package schedule

import (
	"time"

	"github.com/navikt/mrooms/internal/models"
)

// ValidateWindow checks a proposed booking window against the business
// rules. Rules are evaluated in order and the first failure wins. The
// current time is an argument so callers and tests control the clock.
func ValidateWindow(now, start, end time.Time) error {
	if !start.After(now) {
		return models.NewValidationError("Start time must be in the future")
	}
	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return models.NewValidationError("Day must be a weekday")
	}
	if !sameDay(start, end) {
		return models.NewValidationError("Start time and end time must be in the same day")
	}
	if end.Sub(start) != time.Hour {
		return models.NewValidationError("Start time and end time must be one hour apart")
	}
	if h := start.Hour(); h < 8 || h > 19 {
		return models.NewValidationError("Start time must be between 08:00 and 19:00")
	}
	if h := end.Hour(); h < 9 || h > 20 {
		return models.NewValidationError("End time must be between 09:00 and 20:00")
	}
	// Unreachable given the one-hour rule, kept as a safety net
	if !start.Before(end) {
		return models.NewValidationError("Start time must be before end time")
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
