package services

import (
	"errors"

	"bloomtrack/models"
	"bloomtrack/utils"

	"gorm.io/gorm"
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// GetSessionByDate loads the session for (user, date) with laps in recorded
// order and attached calendar events. Returns nil when no session exists.
func (s *SessionService) GetSessionByDate(userID, date string) (*models.TrainingSession, error) {
	var session models.TrainingSession
	err := s.db.
		Preload("Laps", func(db *gorm.DB) *gorm.DB { return db.Order("lap_index ASC") }).
		Preload("Events").
		First(&session, "user_id = ? AND date = ?", userID, date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionsInWeek returns the sessions falling in the 7 days starting at
// startDate, oldest first, laps included.
func (s *SessionService) GetSessionsInWeek(userID, startDate string) ([]models.TrainingSession, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	endDate := utils.FormatDate(start.AddDate(0, 0, 6))

	var sessions []models.TrainingSession
	err = s.db.
		Preload("Laps", func(db *gorm.DB) *gorm.DB { return db.Order("lap_index ASC") }).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("date ASC").
		Find(&sessions).Error
	return sessions, err
}

// WeeklyRollup aggregates one week of sessions for the summary strip.
type WeeklyRollup struct {
	StartDate        string  `json:"startDate"`
	SessionCount     int     `json:"sessionCount"`
	CompletedCount   int     `json:"completedCount"`
	TotalDistanceM   float64 `json:"totalDistanceM"`
	TotalDurationSec float64 `json:"totalDurationSec"`
	AvgPaceSecPerKM  float64 `json:"avgPaceSecPerKm"`
}

// RollupWeek computes the weekly summary from loaded sessions. Average pace
// is distance-weighted; zero distance yields zero pace rather than a divide
// error.
func RollupWeek(startDate string, sessions []models.TrainingSession) WeeklyRollup {
	r := WeeklyRollup{StartDate: startDate, SessionCount: len(sessions)}
	for _, sess := range sessions {
		if sess.Status == "completed" {
			r.CompletedCount++
		}
		for _, lap := range sess.Laps {
			r.TotalDistanceM += lap.DistanceM
			r.TotalDurationSec += lap.ElapsedSec
		}
	}
	if r.TotalDistanceM > 0 {
		r.AvgPaceSecPerKM = r.TotalDurationSec / (r.TotalDistanceM / 1000)
	}
	return r
}

// GetWeeklySummary loads the week starting at startDate and rolls it up.
func (s *SessionService) GetWeeklySummary(userID, startDate string) (*WeeklyRollup, error) {
	sessions, err := s.GetSessionsInWeek(userID, startDate)
	if err != nil {
		return nil, err
	}
	rollup := RollupWeek(startDate, sessions)
	return &rollup, nil
}

// CreateSession inserts a planned session; (user, date) must be free.
func (s *SessionService) CreateSession(session *models.TrainingSession) error {
	if _, err := utils.ParseDate(session.Date); err != nil {
		return err
	}
	if session.Status == "" {
		session.Status = "planned"
	}
	return s.db.Create(session).Error
}
