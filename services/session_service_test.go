package services

import (
	"testing"

	"bloomtrack/models"
)

func lap(idx int, distanceM, elapsedSec float64) models.SessionLap {
	pace := 0.0
	if distanceM > 0 {
		pace = elapsedSec / (distanceM / 1000)
	}
	return models.SessionLap{LapIndex: idx, DistanceM: distanceM, ElapsedSec: elapsedSec, PaceSecPerKM: pace}
}

func TestRollupWeekEmpty(t *testing.T) {
	r := RollupWeek("2026-08-24", nil)
	if r.SessionCount != 0 || r.CompletedCount != 0 || r.AvgPaceSecPerKM != 0 {
		t.Errorf("empty rollup = %+v", r)
	}
	if r.StartDate != "2026-08-24" {
		t.Errorf("startDate = %q", r.StartDate)
	}
}

func TestRollupWeekTotalsAndPace(t *testing.T) {
	sessions := []models.TrainingSession{
		{
			Status: "completed",
			Laps:   []models.SessionLap{lap(0, 1000, 300), lap(1, 1000, 300)},
		},
		{
			Status: "planned",
			Laps:   []models.SessionLap{lap(0, 2000, 720)},
		},
	}

	r := RollupWeek("2026-08-24", sessions)
	if r.SessionCount != 2 || r.CompletedCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", r.SessionCount, r.CompletedCount)
	}
	if r.TotalDistanceM != 4000 {
		t.Errorf("distance = %v, want 4000", r.TotalDistanceM)
	}
	if r.TotalDurationSec != 1320 {
		t.Errorf("duration = %v, want 1320", r.TotalDurationSec)
	}
	// 1320s over 4km
	if r.AvgPaceSecPerKM != 330 {
		t.Errorf("avg pace = %v, want 330", r.AvgPaceSecPerKM)
	}
}

func TestSegmentLapsIntervalSession(t *testing.T) {
	laps := []models.SessionLap{
		lap(0, 1000, 360), // 6:00/km
		lap(1, 1000, 300), // 5:00/km
		lap(2, 1000, 330), // 5:30/km
		lap(3, 1000, 295), // 4:55/km
		lap(4, 1000, 370), // 6:10/km
	}

	SegmentLaps(laps)

	want := []string{SegmentWarmup, SegmentWork, SegmentSteady, SegmentWork, SegmentCooldown}
	for i, w := range want {
		if laps[i].Segment != w {
			t.Errorf("lap %d segment = %q, want %q", i, laps[i].Segment, w)
		}
	}
}

func TestSegmentLapsShortSession(t *testing.T) {
	laps := []models.SessionLap{lap(0, 1000, 300), lap(1, 1000, 310)}
	SegmentLaps(laps)
	for i := range laps {
		if laps[i].Segment == SegmentWarmup || laps[i].Segment == SegmentCooldown {
			t.Errorf("lap %d of a 2-lap session labelled %q", i, laps[i].Segment)
		}
	}
}

func TestSegmentLapsZeroDistance(t *testing.T) {
	laps := []models.SessionLap{lap(0, 1000, 300), lap(1, 0, 60), lap(2, 1000, 305)}
	SegmentLaps(laps)
	if laps[1].Segment != "" {
		t.Errorf("rest lap segment = %q, want empty", laps[1].Segment)
	}
}

func TestSessionFeedback(t *testing.T) {
	session := models.TrainingSession{
		Laps: []models.SessionLap{
			{DistanceM: 2000, ElapsedSec: 600, Segment: SegmentWork},
			{DistanceM: 3000, ElapsedSec: 1000, Segment: SegmentSteady},
		},
	}
	got := SessionFeedback(&session)
	// 5 km in 1600s is 5:20/km
	want := "5.0 km at 5:20/km average with 1 work interval(s)."
	if got != want {
		t.Errorf("feedback = %q, want %q", got, want)
	}

	empty := models.TrainingSession{}
	if got := SessionFeedback(&empty); got != "No recorded distance for this session." {
		t.Errorf("empty feedback = %q", got)
	}
}
