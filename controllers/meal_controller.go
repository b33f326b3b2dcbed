package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"bloomtrack/models"
	"bloomtrack/services"
	"bloomtrack/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
	Foods *services.FoodService
}

func NewMealController(meals *services.MealService, foods *services.FoodService) *MealController {
	return &MealController{Meals: meals, Foods: foods}
}

// GetWeek returns the dense 7-day grid starting at ?start_date.
func (m *MealController) GetWeek(c *gin.Context) {
	userID := c.Query("user_id")
	startDate := c.Query("start_date")
	if userID == "" || startDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and start_date are required"})
		return
	}

	days, err := m.Meals.GetWeekMeals(userID, startDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (m *MealController) GetRange(c *gin.Context) {
	userID := c.Query("user_id")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if userID == "" || startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id, start_date and end_date are required"})
		return
	}

	days, err := m.Meals.GetMealsByDateRange(userID, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

type UpsertMealInput struct {
	UserID      string   `json:"user_id" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Slot        string   `json:"slot" binding:"required"`
	FoodItemIDs []string `json:"food_item_ids"`
}

// UpsertMeal replaces the item list of one (user, date, slot) meal. An empty
// list deletes the meal.
func (m *MealController) UpsertMeal(c *gin.Context) {
	var input UpsertMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := models.SlotDisplayName[input.Slot]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown slot " + input.Slot})
		return
	}

	dayName, err := utils.DayOfWeek(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := m.Meals.UpsertMeal(input.UserID, input.Date, dayName, input.Slot, input.FoodItemIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type AddItemInput struct {
	UserID     string `json:"user_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Slot       string `json:"slot" binding:"required"`
	FoodItemID string `json:"food_item_id" binding:"required"`
}

func (m *MealController) AddItem(c *gin.Context) {
	var input AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := models.SlotDisplayName[input.Slot]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown slot " + input.Slot})
		return
	}

	dayName, err := utils.DayOfWeek(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := m.Meals.AddMealItem(input.UserID, input.Date, dayName, input.Slot, input.FoodItemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// RemoveItem removes one occurrence of a food from a meal; the meal is
// deleted when its last item goes.
func (m *MealController) RemoveItem(c *gin.Context) {
	mealID := c.Query("meal_id")
	foodItemID := c.Query("food_item_id")
	if mealID == "" || foodItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_id and food_item_id are required"})
		return
	}
	if err := m.Meals.RemoveMealItem(mealID, foodItemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (m *MealController) DeleteMeal(c *gin.Context) {
	if c.Param("id") == "item" {
		m.RemoveItem(c)
		return
	}
	if err := m.Meals.DeleteMeal(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (m *MealController) ListMilestones(c *gin.Context) {
	rows, err := m.Meals.ListMilestones()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (m *MealController) GetMilestone(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be a number"})
		return
	}
	row, err := m.Meals.GetMilestoneByWeek(week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no milestone for that week"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// Suggestions lists catalog foods covering the date's missing required
// nutrients, safe options first.
func (m *MealController) Suggestions(c *gin.Context) {
	userID := c.Query("user_id")
	date := c.Query("date")
	if userID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and date are required"})
		return
	}

	days, err := m.Meals.GetMealsByDateRange(userID, date, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	missing := []string{"Calcium", "Iron", "Folate", "Protein"}
	if len(days) > 0 {
		missing = days[0].Summary.MissingNutrients
	}

	suggestions := make(map[string][]models.FoodItem, len(missing))
	for _, nutrient := range missing {
		foods, err := m.Foods.FoodsCoveringNutrient(nutrient, 5)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sort.SliceStable(foods, func(i, j int) bool {
			return utils.SafetyRank(&foods[i]) < utils.SafetyRank(&foods[j])
		})
		suggestions[nutrient] = foods
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "missingNutrients": missing, "suggestions": suggestions})
}
