package services

import (
	"fmt"
	"sort"

	"bloomtrack/models"

	"gorm.io/gorm"
)

// Lap segments assigned by the analysis job.
const (
	SegmentWarmup   = "warmup"
	SegmentSteady   = "steady"
	SegmentWork     = "work"
	SegmentCooldown = "cooldown"
)

// AnalysisService runs the segmentation job for a session and pushes the
// agent frames the client listens for.
type AnalysisService struct {
	db  *gorm.DB
	hub *PushHub
}

func NewAnalysisService(db *gorm.DB, hub *PushHub) *AnalysisService {
	return &AnalysisService{db: db, hub: hub}
}

// SegmentLaps labels laps in place from their pace relative to the session
// median: the first lap is warmup and the last cooldown (when there are at
// least three), laps meaningfully faster than the median are work, the rest
// steady. Laps with no distance keep an empty segment.
func SegmentLaps(laps []models.SessionLap) {
	median := medianPace(laps)

	for i := range laps {
		lap := &laps[i]
		if lap.DistanceM <= 0 {
			lap.Segment = ""
			continue
		}
		switch {
		case i == 0 && len(laps) >= 3:
			lap.Segment = SegmentWarmup
		case i == len(laps)-1 && len(laps) >= 3:
			lap.Segment = SegmentCooldown
		case median > 0 && lap.PaceSecPerKM < median*0.95:
			lap.Segment = SegmentWork
		default:
			lap.Segment = SegmentSteady
		}
	}
}

func medianPace(laps []models.SessionLap) float64 {
	paces := make([]float64, 0, len(laps))
	for _, lap := range laps {
		if lap.DistanceM > 0 && lap.PaceSecPerKM > 0 {
			paces = append(paces, lap.PaceSecPerKM)
		}
	}
	if len(paces) == 0 {
		return 0
	}
	sort.Float64s(paces)
	mid := len(paces) / 2
	if len(paces)%2 == 1 {
		return paces[mid]
	}
	return (paces[mid-1] + paces[mid]) / 2
}

// SessionFeedback builds the one-line coach note stored on the session.
func SessionFeedback(session *models.TrainingSession) string {
	var distanceM, elapsedSec float64
	work := 0
	for _, lap := range session.Laps {
		distanceM += lap.DistanceM
		elapsedSec += lap.ElapsedSec
		if lap.Segment == SegmentWork {
			work++
		}
	}
	if distanceM <= 0 {
		return "No recorded distance for this session."
	}
	pace := elapsedSec / (distanceM / 1000)
	return fmt.Sprintf("%.1f km at %d:%02d/km average with %d work interval(s).",
		distanceM/1000, int(pace)/60, int(pace)%60, work)
}

// RunSegmentation labels the session's laps, persists the feedback, and
// broadcasts the analyser/orchestrator frames over the push channel. The job
// is idempotent; re-running replaces the previous labels.
func (a *AnalysisService) RunSegmentation(userID, date string) error {
	var session models.TrainingSession
	err := a.db.
		Preload("Laps", func(db *gorm.DB) *gorm.DB { return db.Order("lap_index ASC") }).
		First(&session, "user_id = ? AND date = ?", userID, date).Error
	if err != nil {
		return err
	}

	SegmentLaps(session.Laps)
	session.Feedback = SessionFeedback(&session)
	session.Segmented = true

	err = a.db.Transaction(func(tx *gorm.DB) error {
		for i := range session.Laps {
			if err := tx.Model(&models.SessionLap{}).
				Where("id = ?", session.Laps[i].ID).
				Update("segment", session.Laps[i].Segment).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.TrainingSession{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"feedback":  session.Feedback,
				"segmented": true,
			}).Error
	})
	if err != nil {
		return err
	}

	a.hub.Broadcast(userID, Envelope{MimeType: "text/plain", Data: "[ANALYSER_AGENT] segmentation complete", Role: "model"})
	a.hub.Broadcast(userID, Envelope{MimeType: "text/plain", Data: "[ORCHESTRATOR_AGENT] FINISH: done", Role: "model"})
	return nil
}
