package domain

import "time"

// Priority is the urgency tier assigned to a follow-up when it is
// created. It is frozen at creation and never recomputed afterwards.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders tiers for sorting: urgent > high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Derive maps a target date and today's date to an urgency tier using
// whole calendar days.
func Derive(target, today time.Time) Priority {
	delta := DaysBetween(target, today)
	switch {
	case delta < 0:
		return PriorityUrgent
	case delta <= 3:
		return PriorityHigh
	case delta <= 7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// DeriveFromText derives the tier from DD/MM/YYYY text. Malformed text
// yields PriorityMedium: a bad date must never block follow-up
// creation, so the engine falls back instead of failing the caller.
func DeriveFromText(targetDateText string, today time.Time) Priority {
	target, err := ParseDate(targetDateText)
	if err != nil {
		return PriorityMedium
	}
	return Derive(target, today)
}
