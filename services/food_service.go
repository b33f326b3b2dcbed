package services

import (
	"errors"
	"fmt"

	"bloomtrack/models"
	"bloomtrack/utils"

	"gorm.io/gorm"
)

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// ListFoods returns the whole catalog ordered by name.
func (s *FoodService) ListFoods() ([]models.FoodItem, error) {
	var foods []models.FoodItem
	err := s.db.Order("name").Find(&foods).Error
	return foods, err
}

// SearchFoods matches names case-insensitively, capped at 20 results.
func (s *FoodService) SearchFoods(query string) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	err := s.db.
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").
		Limit(20).
		Find(&foods).Error
	return foods, err
}

// GetFood fetches one catalog entry; nil when absent.
func (s *FoodService) GetFood(foodID string) (*models.FoodItem, error) {
	var food models.FoodItem
	err := s.db.First(&food, "id = ?", foodID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// CreateFood normalizes the safety fields and stores a new catalog entry.
func (s *FoodService) CreateFood(food *models.FoodItem) error {
	if food.Name == "" {
		return fmt.Errorf("food name is required")
	}
	if err := utils.NormalizeFoodSafety(food); err != nil {
		return err
	}
	return s.db.Create(food).Error
}

// FoodsCoveringNutrient lists safe-first catalog foods that carry one of the
// four required nutrient flags. Used for missing-nutrient suggestions.
func (s *FoodService) FoodsCoveringNutrient(nutrient string, limit int) ([]models.FoodItem, error) {
	column, ok := map[string]string{
		"Calcium": "nutrient_calcium",
		"Iron":    "nutrient_iron",
		"Folate":  "nutrient_folate",
		"Protein": "nutrient_protein",
	}[nutrient]
	if !ok {
		return nil, fmt.Errorf("unknown required nutrient %q", nutrient)
	}
	if limit <= 0 {
		limit = 5
	}
	var foods []models.FoodItem
	err := s.db.
		Where(column+" = ?", true).
		Order("is_safe_pregnancy DESC, name").
		Limit(limit).
		Find(&foods).Error
	return foods, err
}
