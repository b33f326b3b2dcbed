package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"bloomtrack/models"
	"bloomtrack/utils"

	"gorm.io/gorm"
)

var validSleepQuality = map[string]bool{"poor": true, "fair": true, "good": true, "excellent": true}
var validSeverity = map[string]bool{"mild": true, "moderate": true, "severe": true}

// DailyLogPatch is a tri-state partial update: every field is either absent
// (preserve), explicit null (clear), or a value (replace). JSON omission and
// JSON null mean different things here, so patches are parsed from the raw
// body rather than bound into a struct of pointers.
type DailyLogPatch struct {
	SleepHoursSet bool
	SleepHours    *float64

	SleepQualitySet bool
	SleepQuality    *string

	SleepNotesSet bool
	SleepNotes    *string

	SymptomsSet bool
	Symptoms    []string // nil with SymptomsSet means clear

	SymptomSeveritySet bool
	SymptomSeverity    *string

	SymptomNotesSet bool
	SymptomNotes    *string
}

// ParseDailyLogPatch decodes a request body preserving the absent/null/value
// distinction, and validates enums and ranges.
func ParseDailyLogPatch(body []byte) (DailyLogPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return DailyLogPatch{}, fmt.Errorf("invalid patch body: %w", err)
	}

	var p DailyLogPatch
	var err error

	if msg, ok := raw["sleep_hours"]; ok {
		p.SleepHoursSet = true
		if p.SleepHours, err = parseNullableFloat(msg); err != nil {
			return p, err
		}
		if p.SleepHours != nil {
			if *p.SleepHours < 0 || *p.SleepHours > 24 {
				return p, fmt.Errorf("sleep_hours must be between 0 and 24")
			}
			rounded := math.Round(*p.SleepHours*10) / 10
			p.SleepHours = &rounded
		}
	}
	if msg, ok := raw["sleep_quality"]; ok {
		p.SleepQualitySet = true
		if p.SleepQuality, err = parseNullableString(msg); err != nil {
			return p, err
		}
		if p.SleepQuality != nil && !validSleepQuality[*p.SleepQuality] {
			return p, fmt.Errorf("invalid sleep_quality %q", *p.SleepQuality)
		}
	}
	if msg, ok := raw["sleep_notes"]; ok {
		p.SleepNotesSet = true
		if p.SleepNotes, err = parseNullableString(msg); err != nil {
			return p, err
		}
	}
	if msg, ok := raw["symptoms"]; ok {
		p.SymptomsSet = true
		if string(msg) != "null" {
			if err := json.Unmarshal(msg, &p.Symptoms); err != nil {
				return p, fmt.Errorf("invalid symptoms: %w", err)
			}
			if p.Symptoms, err = cleanSymptomTags(p.Symptoms); err != nil {
				return p, err
			}
		}
	}
	if msg, ok := raw["symptom_severity"]; ok {
		p.SymptomSeveritySet = true
		if p.SymptomSeverity, err = parseNullableString(msg); err != nil {
			return p, err
		}
		if p.SymptomSeverity != nil && !validSeverity[*p.SymptomSeverity] {
			return p, fmt.Errorf("invalid symptom_severity %q", *p.SymptomSeverity)
		}
	}
	if msg, ok := raw["symptom_notes"]; ok {
		p.SymptomNotesSet = true
		if p.SymptomNotes, err = parseNullableString(msg); err != nil {
			return p, err
		}
	}
	return p, nil
}

func parseNullableFloat(msg json.RawMessage) (*float64, error) {
	if string(msg) == "null" {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil, fmt.Errorf("expected number or null: %w", err)
	}
	return &v, nil
}

func parseNullableString(msg json.RawMessage) (*string, error) {
	if string(msg) == "null" {
		return nil, nil
	}
	var v string
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil, fmt.Errorf("expected string or null: %w", err)
	}
	return &v, nil
}

// MergeDailyLog applies a patch to a log in place and reports whether the
// result is conceptually empty (both sleep and symptom sides cleared), in
// which case the row may be deleted. Fields absent from the patch are
// preserved exactly; explicit nulls clear only their own field.
func MergeDailyLog(log *models.DailyLog, p DailyLogPatch) (empty bool) {
	if p.SleepHoursSet {
		log.SleepHours = p.SleepHours
	}
	if p.SleepQualitySet {
		log.SleepQuality = deref(p.SleepQuality)
	}
	if p.SleepNotesSet {
		log.SleepNotes = deref(p.SleepNotes)
	}
	if p.SymptomsSet {
		log.Symptoms = strings.Join(p.Symptoms, ",")
	}
	if p.SymptomSeveritySet {
		log.SymptomSeverity = deref(p.SymptomSeverity)
	}
	if p.SymptomNotesSet {
		log.SymptomNotes = deref(p.SymptomNotes)
	}

	sleepEmpty := log.SleepHours == nil && log.SleepQuality == "" && log.SleepNotes == ""
	symptomsEmpty := log.Symptoms == "" && log.SymptomSeverity == "" && log.SymptomNotes == ""
	return sleepEmpty && symptomsEmpty
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// cleanSymptomTags trims tags and rejects commas, which the storage encoding
// reserves as the separator; a tag with one would split in two on read-back.
func cleanSymptomTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if strings.Contains(tag, ",") {
			return nil, fmt.Errorf("symptom tag %q must not contain a comma", tag)
		}
		out = append(out, tag)
	}
	return out, nil
}

// JoinSymptoms encodes symptom tags into their stored form, enforcing the
// no-comma rule.
func JoinSymptoms(tags []string) (string, error) {
	clean, err := cleanSymptomTags(tags)
	if err != nil {
		return "", err
	}
	return strings.Join(clean, ","), nil
}

// SymptomList splits the stored comma-separated tags.
func SymptomList(log *models.DailyLog) []string {
	if log.Symptoms == "" {
		return []string{}
	}
	return strings.Split(log.Symptoms, ",")
}

type DailyLogService struct {
	db *gorm.DB
}

func NewDailyLogService(db *gorm.DB) *DailyLogService {
	return &DailyLogService{db: db}
}

// GetDailyLog fetches the log for (user, date); nil when absent.
func (s *DailyLogService) GetDailyLog(userID, logDate string) (*models.DailyLog, error) {
	var log models.DailyLog
	err := s.db.First(&log, "user_id = ? AND log_date = ?", userID, logDate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetDailyLogsRange returns logs between two dates inclusive, newest first.
func (s *DailyLogService) GetDailyLogsRange(userID, startDate, endDate string) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := s.db.
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("log_date DESC").
		Find(&logs).Error
	return logs, err
}

// CreateDailyLog inserts a new log row; (user, date) must not already exist.
func (s *DailyLogService) CreateDailyLog(log *models.DailyLog) error {
	if _, err := utils.ParseDate(log.LogDate); err != nil {
		return err
	}
	if log.SleepHours != nil && (*log.SleepHours < 0 || *log.SleepHours > 24) {
		return fmt.Errorf("sleep_hours must be between 0 and 24")
	}
	if log.SleepQuality != "" && !validSleepQuality[log.SleepQuality] {
		return fmt.Errorf("invalid sleep_quality %q", log.SleepQuality)
	}
	if log.SymptomSeverity != "" && !validSeverity[log.SymptomSeverity] {
		return fmt.Errorf("invalid symptom_severity %q", log.SymptomSeverity)
	}
	return s.db.Create(log).Error
}

// UpdateDailyLog merges a patch into the stored log. Returns the merged log,
// nil when no row exists for (user, date). A patch that empties both sides
// deletes the row.
func (s *DailyLogService) UpdateDailyLog(userID, logDate string, patch DailyLogPatch) (*models.DailyLog, error) {
	log, err := s.GetDailyLog(userID, logDate)
	if err != nil || log == nil {
		return nil, err
	}

	empty := MergeDailyLog(log, patch)
	if empty {
		if err := s.db.Delete(&models.DailyLog{}, "id = ?", log.ID).Error; err != nil {
			return nil, err
		}
		return log, nil
	}

	now := time.Now()
	log.UpdatedAt = &now
	if err := s.db.Save(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

// UpsertDailyLog merges into the existing row or creates one.
func (s *DailyLogService) UpsertDailyLog(userID, logDate string, patch DailyLogPatch) (*models.DailyLog, error) {
	if _, err := utils.ParseDate(logDate); err != nil {
		return nil, err
	}
	existing, err := s.GetDailyLog(userID, logDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.UpdateDailyLog(userID, logDate, patch)
	}

	log := models.DailyLog{UserID: userID, LogDate: logDate}
	if empty := MergeDailyLog(&log, patch); empty {
		return nil, fmt.Errorf("refusing to create an empty daily log")
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteDailyLog removes the log for (user, date); reports whether a row
// existed.
func (s *DailyLogService) DeleteDailyLog(userID, logDate string) (bool, error) {
	res := s.db.Delete(&models.DailyLog{}, "user_id = ? AND log_date = ?", userID, logDate)
	return res.RowsAffected > 0, res.Error
}
