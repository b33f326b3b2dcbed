package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyMilestone is reference content for one pregnancy week (1..42).
type WeeklyMilestone struct {
	ID                    string `gorm:"type:uuid;primaryKey" json:"id"`
	WeekNumber            int    `gorm:"uniqueIndex;not null" json:"weekNumber"`
	NHSSizeComparison     string `json:"nhsSizeComparison,omitempty"`
	DevelopmentMilestone  string `gorm:"not null" json:"developmentMilestone"`
	NutritionalFocusColor string `json:"nutritionalFocusColor,omitempty"`
	KeyNutrient           string `json:"keyNutrient,omitempty"`
	ActionTip             string `json:"actionTip,omitempty"`
	SourceURL             string `json:"sourceUrl,omitempty"`
}

func (w *WeeklyMilestone) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
