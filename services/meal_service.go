package services

import (
	"errors"
	"fmt"

	"bloomtrack/models"
	"bloomtrack/planner"
	"bloomtrack/utils"

	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// GetWeekMeals returns the dense 7-day grid starting at startDate.
func (s *MealService) GetWeekMeals(userID, startDate string) ([]planner.Day, error) {
	endDate, err := utils.AddDays(startDate, 6)
	if err != nil {
		return nil, err
	}
	raw, err := s.rawDays(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return planner.BuildWeek(startDate, raw)
}

// GetMealsByDateRange returns summarized days for every date in the range
// that has at least one meal; no empty-day synthesis outside the week view.
func (s *MealService) GetMealsByDateRange(userID, startDate, endDate string) ([]planner.Day, error) {
	if _, err := utils.ParseDate(startDate); err != nil {
		return nil, err
	}
	if _, err := utils.ParseDate(endDate); err != nil {
		return nil, err
	}
	return s.rawDays(userID, startDate, endDate)
}

// rawDays loads meal rows with their item snapshots, grouped per date with
// aggregates and summaries computed, ordered by date.
func (s *MealService) rawDays(userID, startDate, endDate string) ([]planner.Day, error) {
	var meals []models.Meal
	err := s.db.
		Where("user_id = ? AND log_date >= ? AND log_date <= ?", userID, startDate, endDate).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Items.Food").
		Order("log_date").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	dayIndex := map[string]int{}
	days := []planner.Day{}
	for _, m := range meals {
		// Slot keys outside the fixed five never reach the grid.
		if models.SlotDisplayName[m.Slot] == "" {
			continue
		}
		idx, ok := dayIndex[m.LogDate]
		if !ok {
			label, _ := utils.DayOfWeek(m.LogDate)
			days = append(days, planner.Day{ID: m.LogDate, Date: m.LogDate, DayOfWeek: label})
			idx = len(days) - 1
			dayIndex[m.LogDate] = idx
		}

		items := make([]planner.Food, 0, len(m.Items))
		for _, it := range m.Items {
			items = append(items, planner.Snapshot(&it.Food))
		}
		meal := &planner.Meal{
			ID:             m.ID,
			Type:           models.SlotDisplayName[m.Slot],
			Items:          items,
			Micronutrients: planner.AggregateMeal(items),
			Notes:          m.Notes,
		}
		days[idx].Meals.SetSlot(m.Slot, meal)
	}

	for i := range days {
		days[i].Summary = planner.Summarize(days[i].Meals)
	}
	return days, nil
}

// UpsertMeal replaces the item list of (user, date, slot), creating the meal
// row when needed. An empty item list deletes the meal: a meal exists only
// while it has items.
func (s *MealService) UpsertMeal(userID, date, dayOfWeek, slot string, foodItemIDs []string) error {
	if models.SlotDisplayName[slot] == "" {
		return fmt.Errorf("unknown meal slot %q", slot)
	}
	if _, err := utils.ParseDate(date); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		meal, err := s.getOrCreateMeal(tx, userID, date, dayOfWeek, slot)
		if err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		if len(foodItemIDs) == 0 {
			return tx.Delete(&models.Meal{}, "id = ?", meal.ID).Error
		}
		for idx, foodID := range foodItemIDs {
			item := models.MealItem{MealID: meal.ID, FoodID: foodID, SortOrder: idx}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddMealItem appends one food to (user, date, slot) with the next sort
// order, creating the meal when absent.
func (s *MealService) AddMealItem(userID, date, dayOfWeek, slot, foodItemID string) error {
	if models.SlotDisplayName[slot] == "" {
		return fmt.Errorf("unknown meal slot %q", slot)
	}
	if _, err := utils.ParseDate(date); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		meal, err := s.getOrCreateMeal(tx, userID, date, dayOfWeek, slot)
		if err != nil {
			return err
		}
		var next int
		row := tx.Model(&models.MealItem{}).
			Where("meal_id = ?", meal.ID).
			Select("COALESCE(MAX(sort_order), -1) + 1")
		if err := row.Scan(&next).Error; err != nil {
			return err
		}
		item := models.MealItem{MealID: meal.ID, FoodID: foodItemID, SortOrder: next}
		return tx.Create(&item).Error
	})
}

// RemoveMealItem removes one snapshot of a food from a meal (a single
// duplicate, not all) and deletes the meal when it empties.
func (s *MealService) RemoveMealItem(mealID, foodItemID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.MealItem
		err := tx.
			Where("meal_id = ? AND food_id = ?", mealID, foodItemID).
			Order("sort_order DESC").
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("food %s not in meal %s", foodItemID, mealID)
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.MealItem{}, item.ID).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.MealItem{}).Where("meal_id = ?", mealID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Delete(&models.Meal{}, "id = ?", mealID).Error
		}
		return nil
	})
}

// DeleteMeal removes a meal and (by cascade) its items.
func (s *MealService) DeleteMeal(mealID string) error {
	return s.db.Delete(&models.Meal{}, "id = ?", mealID).Error
}

func (s *MealService) getOrCreateMeal(tx *gorm.DB, userID, date, dayOfWeek, slot string) (*models.Meal, error) {
	if dayOfWeek == "" {
		dayOfWeek, _ = utils.DayOfWeek(date)
	}
	meal := models.Meal{UserID: userID, LogDate: date, Slot: slot}
	err := tx.
		Where("user_id = ? AND log_date = ? AND slot = ?", userID, date, slot).
		Assign(models.Meal{DayOfWeek: dayOfWeek}).
		FirstOrCreate(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// ---------- Milestones ----------

// GetMilestoneByWeek returns the milestone for one pregnancy week, nil when
// absent.
func (s *MealService) GetMilestoneByWeek(weekNumber int) (*models.WeeklyMilestone, error) {
	var m models.WeeklyMilestone
	err := s.db.First(&m, "week_number = ?", weekNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMilestones returns all milestones ordered by week.
func (s *MealService) ListMilestones() ([]models.WeeklyMilestone, error) {
	var out []models.WeeklyMilestone
	err := s.db.Order("week_number").Find(&out).Error
	return out, err
}
