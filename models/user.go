package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	FirstName           string     `json:"firstName"`
	DueDate             *time.Time `json:"dueDate,omitempty"`
	LastPeriodDate      *time.Time `json:"lastPeriodDate,omitempty"`
	DietaryRestrictions string     `json:"-"` // comma-separated
	PreferredUnit       string     `gorm:"default:metric" json:"preferredUnit"`
	DailyCaffeineLimit  int        `gorm:"default:200" json:"dailyCaffeineLimit"`
	NotificationOptIn   bool       `gorm:"default:true" json:"notificationOptIn"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
