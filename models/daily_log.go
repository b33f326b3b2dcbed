package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyLog is the sleep/symptom entry, one per (user, calendar date).
// Either side may be empty; a log with both sides empty is deleted.
type DailyLog struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"type:uuid;index:idx_log_user_date,unique;not null" json:"user_id"`
	LogDate string `gorm:"size:10;index:idx_log_user_date,unique;not null" json:"log_date"` // YYYY-MM-DD

	SleepHours   *float64 `json:"sleep_hours,omitempty"`   // 0..24, one decimal
	SleepQuality string   `json:"sleep_quality,omitempty"` // poor | fair | good | excellent
	SleepNotes   string   `json:"sleep_notes,omitempty"`

	Symptoms        string `json:"-"`                         // comma-separated tags
	SymptomSeverity string `json:"symptom_severity,omitempty"` // mild | moderate | severe
	SymptomNotes    string `json:"symptom_notes,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (d *DailyLog) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
