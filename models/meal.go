package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The five fixed meal slots of a day, in display order.
const (
	SlotBreakfast = "breakfast"
	SlotSnack1    = "snack1"
	SlotLunch     = "lunch"
	SlotSnack2    = "snack2"
	SlotDinner    = "dinner"
)

// SlotKeys is the canonical slot ordering. Raw rows with any other slot key
// are never surfaced.
var SlotKeys = []string{SlotBreakfast, SlotSnack1, SlotLunch, SlotSnack2, SlotDinner}

// SlotDisplayName maps a slot key to its human label.
var SlotDisplayName = map[string]string{
	SlotBreakfast: "Breakfast",
	SlotSnack1:    "Snack 1",
	SlotLunch:     "Lunch",
	SlotSnack2:    "Snack 2",
	SlotDinner:    "Dinner",
}

// One Meal: unique per (user, calendar date, slot). A meal exists only while
// it has at least one item; removing the last item deletes the row.
type Meal struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"type:uuid;index:idx_meal_user_date_slot,unique;not null" json:"userId"`
	LogDate   string `gorm:"size:10;index:idx_meal_user_date_slot,unique;not null" json:"date"` // YYYY-MM-DD
	DayOfWeek string `gorm:"size:9" json:"dayOfWeek"`
	Slot      string `gorm:"size:10;index:idx_meal_user_date_slot,unique;not null" json:"slot"`
	Notes     string `json:"notes,omitempty"`

	Items []MealItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MealItem references a catalog food; duplicates within one slot are allowed
// and kept in sort order.
type MealItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	MealID    string `gorm:"type:uuid;index;not null" json:"-"`
	FoodID    string `gorm:"type:uuid;not null" json:"foodId"`
	SortOrder int    `json:"sortOrder"`

	Food FoodItem `gorm:"foreignKey:FoodID" json:"-"`

	CreatedAt time.Time `json:"-"`
}
