package services

import (
	"errors"
	"time"

	"bloomtrack/models"

	"gorm.io/gorm"
)

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

func (s *ChatService) SaveMessage(msg *models.ChatMessage) error {
	return s.db.Create(msg).Error
}

// GetRecentMessages returns the newest messages for a user, oldest first so
// callers can replay them as a transcript. sinceDate ("" to skip) filters by
// message date.
func (s *ChatService) GetRecentMessages(userID string, limit int, sinceDate string) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.db.Where("user_id = ?", userID)
	if sinceDate != "" {
		q = q.Where("message_date >= ?", sinceDate)
	}

	var msgs []models.ChatMessage
	if err := q.Order("created_at DESC").Limit(limit).Find(&msgs).Error; err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// TodaysGreeting returns the stored greeting for (user, today), nil when none
// has been generated yet.
func (s *ChatService) TodaysGreeting(userID string) (*models.ChatMessage, error) {
	today := time.Now().Format("2006-01-02")
	var msg models.ChatMessage
	err := s.db.First(&msg, "user_id = ? AND role = ? AND message_date = ?", userID, "system", today).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// SaveGreeting stores today's greeting so later requests reuse it.
func (s *ChatService) SaveGreeting(userID, sessionID, content string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Role:      "system",
		Content:   content,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
