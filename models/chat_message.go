package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage persists one turn of the companion conversation. MessageDate
// is the calendar date the message belongs to; daily greetings are looked up
// by (user, role=system, message_date).
type ChatMessage struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string `gorm:"type:uuid;index;not null" json:"user_id"`
	SessionID   string `gorm:"size:64;index" json:"session_id"`
	Role        string `gorm:"size:10;not null" json:"role"` // user | model | system
	Content     string `gorm:"type:text" json:"content"`
	MessageDate string `gorm:"size:10;index" json:"message_date"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.MessageDate == "" {
		m.MessageDate = time.Now().Format("2006-01-02")
	}
	return nil
}
