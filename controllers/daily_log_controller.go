package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"bloomtrack/models"
	"bloomtrack/services"

	"github.com/gin-gonic/gin"
)

type DailyLogController struct {
	Logs *services.DailyLogService
}

func NewDailyLogController(logs *services.DailyLogService) *DailyLogController {
	return &DailyLogController{Logs: logs}
}

// logResponse renders symptoms as a list instead of the stored string.
func logResponse(log *models.DailyLog) gin.H {
	return gin.H{
		"id":               log.ID,
		"user_id":          log.UserID,
		"log_date":         log.LogDate,
		"sleep_hours":      log.SleepHours,
		"sleep_quality":    log.SleepQuality,
		"sleep_notes":      log.SleepNotes,
		"symptoms":         services.SymptomList(log),
		"symptom_severity": log.SymptomSeverity,
		"symptom_notes":    log.SymptomNotes,
	}
}

func (d *DailyLogController) GetLog(c *gin.Context) {
	log, err := d.Logs.GetDailyLog(c.Param("user_id"), c.Param("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no log for that date"})
		return
	}
	c.JSON(http.StatusOK, logResponse(log))
}

func (d *DailyLogController) GetLogs(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	logs, err := d.Logs.GetDailyLogsRange(c.Param("user_id"), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(logs))
	for i := range logs {
		out = append(out, logResponse(&logs[i]))
	}
	c.JSON(http.StatusOK, out)
}

type CreateLogInput struct {
	UserID          string   `json:"user_id" binding:"required"`
	LogDate         string   `json:"log_date" binding:"required"`
	SleepHours      *float64 `json:"sleep_hours"`
	SleepQuality    string   `json:"sleep_quality"`
	SleepNotes      string   `json:"sleep_notes"`
	Symptoms        []string `json:"symptoms"`
	SymptomSeverity string   `json:"symptom_severity"`
	SymptomNotes    string   `json:"symptom_notes"`
}

func (d *DailyLogController) CreateLog(c *gin.Context) {
	var input CreateLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symptoms, err := services.JoinSymptoms(input.Symptoms)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log := models.DailyLog{
		UserID:          input.UserID,
		LogDate:         input.LogDate,
		SleepHours:      input.SleepHours,
		SleepQuality:    input.SleepQuality,
		SleepNotes:      input.SleepNotes,
		Symptoms:        symptoms,
		SymptomSeverity: input.SymptomSeverity,
		SymptomNotes:    input.SymptomNotes,
	}
	if err := d.Logs.CreateDailyLog(&log); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, logResponse(&log))
}

// UpdateLog merges a tri-state patch: absent fields are preserved, explicit
// nulls clear only their own side.
func (d *DailyLogController) UpdateLog(c *gin.Context) {
	patch, done := d.bindPatch(c)
	if done {
		return
	}

	log, err := d.Logs.UpdateDailyLog(c.Param("user_id"), c.Param("date"), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no log for that date"})
		return
	}
	c.JSON(http.StatusOK, logResponse(log))
}

type UpsertLogTarget struct {
	UserID  string `json:"user_id"`
	LogDate string `json:"log_date"`
}

func (d *DailyLogController) UpsertLog(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target UpsertLogTarget
	if err := json.Unmarshal(body, &target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if target.UserID == "" || target.LogDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and log_date are required"})
		return
	}

	patch, err := services.ParseDailyLogPatch(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := d.Logs.UpsertDailyLog(target.UserID, target.LogDate, patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logResponse(log))
}

func (d *DailyLogController) DeleteLog(c *gin.Context) {
	existed, err := d.Logs.DeleteDailyLog(c.Param("user_id"), c.Param("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "no log for that date"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (d *DailyLogController) bindPatch(c *gin.Context) (services.DailyLogPatch, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return services.DailyLogPatch{}, true
	}
	patch, err := services.ParseDailyLogPatch(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return services.DailyLogPatch{}, true
	}
	return patch, false
}
