package controllers

import (
	"net/http"

	"bloomtrack/models"
	"bloomtrack/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{Foods: foods}
}

// ListFoods returns the catalog, or a name search when ?q= is present.
func (f *FoodController) ListFoods(c *gin.Context) {
	var (
		foods []models.FoodItem
		err   error
	)
	if q := c.Query("q"); q != "" {
		foods, err = f.Foods.SearchFoods(q)
	} else {
		foods, err = f.Foods.ListFoods()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (f *FoodController) GetFood(c *gin.Context) {
	food, err := f.Foods.GetFood(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if food == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	c.JSON(http.StatusOK, food)
}

func (f *FoodController) CreateFood(c *gin.Context) {
	var food models.FoodItem
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if food.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := f.Foods.CreateFood(&food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, food)
}
