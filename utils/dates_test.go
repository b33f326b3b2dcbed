package utils

import (
	"testing"
	"time"
)

func TestMondayOf(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-12-31", "2025-12-29"}, // Wednesday -> back 2
		{"2025-12-29", "2025-12-29"}, // Monday -> itself
		{"2025-12-28", "2025-12-22"}, // Sunday -> back 6
		{"2026-01-03", "2025-12-29"}, // Saturday -> back 5, crosses year
	}
	for _, c := range cases {
		got, err := MondayOf(c.date)
		if err != nil {
			t.Fatalf("MondayOf(%s) failed: %v", c.date, err)
		}
		if got != c.want {
			t.Errorf("MondayOf(%s) = %s, want %s", c.date, got, c.want)
		}
	}
}

func TestMondayOfRejectsBadInput(t *testing.T) {
	if _, err := MondayOf("31/12/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-02-27", 3)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2025-03-02" {
		t.Errorf("AddDays = %s, want 2025-03-02", got)
	}
}

func TestClockMinutes(t *testing.T) {
	if ClockMinutes("06:00") >= ClockMinutes("15:30") {
		t.Error("06:00 must sort before 15:30")
	}
	if ClockMinutes("09:05") != 545 {
		t.Errorf("ClockMinutes(09:05) = %d, want 545", ClockMinutes("09:05"))
	}
	if ClockMinutes("garbage") <= ClockMinutes("23:59") {
		t.Error("malformed times must sort last")
	}
}

func TestPregnancyWeek(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	// Due in exactly 10 weeks -> week 30.
	due := now.AddDate(0, 0, 70)
	if got := PregnancyWeek(due, now); got != 30 {
		t.Errorf("PregnancyWeek = %d, want 30", got)
	}

	// Far-future due date clamps to week 1.
	if got := PregnancyWeek(now.AddDate(2, 0, 0), now); got != 1 {
		t.Errorf("PregnancyWeek clamp low = %d, want 1", got)
	}

	// Overdue clamps to 42.
	if got := PregnancyWeek(now.AddDate(0, 0, -60), now); got != 42 {
		t.Errorf("PregnancyWeek clamp high = %d, want 42", got)
	}
}
