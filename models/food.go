package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MicronutrientPresence marks which of the tracked micronutrients a food
// contributes. Calcium, iron, folate and protein are the four required
// nutrients the daily summary is built from; the rest are informational.
type MicronutrientPresence struct {
	Calcium  bool `json:"calcium"`
	Iron     bool `json:"iron"`
	Folate   bool `json:"folate"`
	Protein  bool `json:"protein"`
	VitaminD bool `json:"vitaminD"`
	Omega3   bool `json:"omega3"`
	Fiber    bool `json:"fiber"`
}

// A catalog entry. Meals snapshot these at read time; the catalog row itself
// is never mutated by meal operations.
type FoodItem struct {
	ID                 string `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string `gorm:"not null;index" json:"name"`
	Portion            string `json:"portion,omitempty"`
	MacroCategory      string `json:"macroCategory,omitempty"`
	RainbowColor       string `json:"rainbowColor,omitempty"` // Red | Orange/Yellow | Green | Blue/Purple | White/Brown
	PhytonutrientFocus string `json:"phytonutrientFocus,omitempty"`

	Micronutrients MicronutrientPresence `gorm:"embedded;embeddedPrefix:nutrient_" json:"containsMicronutrients"`

	IsSafePregnancy bool   `gorm:"default:true" json:"-"`
	WarningMessage  string `json:"warningMessage,omitempty"`
	WarningType     string `json:"warningType,omitempty"` // unsafe | limit | allergen

	Tags        string `json:"-"` // comma-separated
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// HasWarnings holds by the catalog invariant: a food warns iff it is flagged
// unsafe or carries a non-empty warning message.
func (f *FoodItem) HasWarnings() bool {
	return !f.IsSafePregnancy || f.WarningMessage != ""
}
