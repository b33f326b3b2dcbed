package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainingSession is the scheduled/completed activity for one date. The
// client never mutates it directly; it is refetched on date changes and on
// push-channel invalidation signals.
type TrainingSession struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"type:uuid;index:idx_session_user_date,unique;not null" json:"userId"`
	Date      string `gorm:"size:10;index:idx_session_user_date,unique;not null" json:"date"` // YYYY-MM-DD
	Title     string `json:"title"`
	Sport     string `gorm:"size:20" json:"sport"`
	Status    string `gorm:"size:12;default:planned" json:"status"` // planned | completed
	Feedback  string `gorm:"type:text" json:"feedback,omitempty"`   // coach feedback, set by analysis
	Segmented bool   `json:"segmented"`

	Laps   []SessionLap    `gorm:"constraint:OnDelete:CASCADE" json:"laps"`
	Events []CalendarEvent `gorm:"constraint:OnDelete:CASCADE" json:"events"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (s *TrainingSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SessionLap is one recorded interval. PaceSecPerKM is derived at record
// time; Segment is assigned by the analysis job.
type SessionLap struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	SessionID    string  `gorm:"type:uuid;index;not null" json:"-"`
	LapIndex     int     `json:"lapIndex"`
	DistanceM    float64 `json:"distanceM"`
	ElapsedSec   float64 `json:"elapsedSec"`
	PaceSecPerKM float64 `json:"paceSecPerKm"`
	HeartRate    int     `json:"heartRate,omitempty"`
	Cadence      int     `json:"cadence,omitempty"`
	Segment      string  `gorm:"size:12" json:"segment,omitempty"` // warmup | steady | work | cooldown
}

// CalendarEvent is a scheduled item attached to a session's date. StartTime
// is "HH:MM"; clients sort events by it numerically.
type CalendarEvent struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	SessionID string `gorm:"type:uuid;index;not null" json:"-"`
	Title     string `json:"title"`
	StartTime string `gorm:"size:5" json:"startTime"`
}
