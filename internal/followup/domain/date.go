package domain

import (
	"strings"
	"time"
)

// DateLayout is the textual calendar-date contract used everywhere a
// follow-up date crosses a service boundary.
const DateLayout = "02/01/2006"

// ParseDate parses DD/MM/YYYY text into a date-normalized UTC instant.
func ParseDate(text string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(text), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// FormatDate renders a date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar-day difference target-today.
// Time-of-day never contributes.
func DaysBetween(target, today time.Time) int {
	return int(DateOf(target).Sub(DateOf(today)).Hours() / 24)
}
