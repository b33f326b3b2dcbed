package controllers

import (
	"net/http"

	"bloomtrack/models"
	"bloomtrack/services"
	"bloomtrack/utils"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Sessions *services.SessionService
}

func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{Sessions: sessions}
}

// GetSession returns the session for (user, date); 404 when none exists so
// clients can show the not-found state.
func (s *SessionController) GetSession(c *gin.Context) {
	userID := c.Param("user_id")
	date := c.Param("date")
	if date == "weekly-summary" {
		s.WeeklySummary(c)
		return
	}
	if _, err := utils.ParseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := s.Sessions.GetSessionByDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no session for that date"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *SessionController) WeeklySummary(c *gin.Context) {
	startDate := c.Query("start_date")
	if startDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date is required"})
		return
	}

	rollup, err := s.Sessions.GetWeeklySummary(c.Param("user_id"), startDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rollup)
}

type CreateSessionInput struct {
	UserID string                 `json:"user_id" binding:"required"`
	Date   string                 `json:"date" binding:"required"`
	Title  string                 `json:"title"`
	Sport  string                 `json:"sport"`
	Status string                 `json:"status"`
	Laps   []models.SessionLap    `json:"laps"`
	Events []models.CalendarEvent `json:"events"`
}

func (s *SessionController) CreateSession(c *gin.Context) {
	var input CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := models.TrainingSession{
		UserID: input.UserID,
		Date:   input.Date,
		Title:  input.Title,
		Sport:  input.Sport,
		Status: input.Status,
		Laps:   input.Laps,
		Events: input.Events,
	}
	if err := s.Sessions.CreateSession(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}
