package services

import (
	"errors"
	"strings"
	"time"

	"bloomtrack/models"
	"bloomtrack/utils"

	"gorm.io/gorm"
)

// DefaultPregnancyWeek is used when a profile carries no due date.
const DefaultPregnancyWeek = 20

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserProfile is the API shape of a user plus derived pregnancy fields.
type UserProfile struct {
	models.User
	PregnancyWeek int      `json:"pregnancy_week"`
	Trimester     int      `json:"trimester"`
	Restrictions  []string `json:"restrictions"`
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUser(userID string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile returns the user with pregnancy week and trimester filled in.
func (s *UserService) GetProfile(userID string) (*UserProfile, error) {
	user, err := s.GetUser(userID)
	if err != nil || user == nil {
		return nil, err
	}
	return s.buildProfile(user, time.Now()), nil
}

func (s *UserService) buildProfile(user *models.User, now time.Time) *UserProfile {
	week := DefaultPregnancyWeek
	if user.DueDate != nil {
		week = utils.PregnancyWeek(*user.DueDate, now)
	}
	return &UserProfile{
		User:          *user,
		PregnancyWeek: week,
		Trimester:     utils.Trimester(week),
		Restrictions:  splitRestrictions(user.DietaryRestrictions),
	}
}

func splitRestrictions(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UpdatePreferences patches the mutable profile fields.
type PreferencesUpdate struct {
	FirstName           *string    `json:"first_name"`
	DueDate             *time.Time `json:"due_date"`
	DietaryRestrictions *[]string  `json:"dietary_restrictions"`
	PreferredUnit       *string    `json:"preferred_unit"`
	DailyCaffeineLimit  *int       `json:"daily_caffeine_limit"`
	NotificationOptIn   *bool      `json:"notification_opt_in"`
}

func (s *UserService) UpdatePreferences(userID string, upd PreferencesUpdate) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil || user == nil {
		return nil, err
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.DueDate != nil {
		user.DueDate = upd.DueDate
	}
	if upd.DietaryRestrictions != nil {
		user.DietaryRestrictions = strings.Join(*upd.DietaryRestrictions, ",")
	}
	if upd.PreferredUnit != nil {
		user.PreferredUnit = *upd.PreferredUnit
	}
	if upd.DailyCaffeineLimit != nil {
		user.DailyCaffeineLimit = *upd.DailyCaffeineLimit
	}
	if upd.NotificationOptIn != nil {
		user.NotificationOptIn = *upd.NotificationOptIn
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetMilestoneForUser looks up the NHS milestone for the user's current week.
func (s *UserService) GetMilestoneForUser(userID string, meals *MealService) (*models.WeeklyMilestone, int, error) {
	profile, err := s.GetProfile(userID)
	if err != nil || profile == nil {
		return nil, 0, err
	}
	m, err := meals.GetMilestoneByWeek(profile.PregnancyWeek)
	return m, profile.PregnancyWeek, err
}
