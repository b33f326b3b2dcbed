package utils

import "time"

// Full term is 280 days (40 weeks).
const termDays = 280

// PregnancyWeek derives the current pregnancy week from a due date, clamped
// to 1..42. Callers with no due date should fall back to a sensible default.
func PregnancyWeek(dueDate time.Time, now time.Time) int {
	daysToDue := int(dueDate.Sub(now).Hours() / 24)
	weeks := (termDays - daysToDue) / 7
	if weeks < 1 {
		return 1
	}
	if weeks > 42 {
		return 42
	}
	return weeks
}

// Trimester for a given pregnancy week.
func Trimester(week int) int {
	switch {
	case week <= 13:
		return 1
	case week <= 27:
		return 2
	default:
		return 3
	}
}
