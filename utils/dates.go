package utils

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date form used everywhere: dates are
// compared as YYYY-MM-DD strings, never as timestamps, so inputs must be
// normalized here at the boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate normalizes any timestamp to its calendar-date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a date string by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// MondayOf returns the Monday of the week containing date: Sunday goes back
// 6 days, any other weekday goes back weekday-1 days.
func MondayOf(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	back := 6
	if wd := int(t.Weekday()); wd != 0 { // Sunday == 0
		back = wd - 1
	}
	return FormatDate(t.AddDate(0, 0, -back)), nil
}

// DayOfWeek returns the English weekday label ("Monday", ...) for a date.
func DayOfWeek(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// ClockMinutes converts an "HH:MM" start time to minutes since midnight for
// numeric ordering; malformed values sort last.
func ClockMinutes(hhmm string) int {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 1<<31 - 1
	}
	return h*60 + m
}
