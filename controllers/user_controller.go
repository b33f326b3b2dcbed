package controllers

import (
	"net/http"

	"bloomtrack/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
	Meals *services.MealService
}

func NewUserController(users *services.UserService, meals *services.MealService) *UserController {
	return &UserController{Users: users, Meals: meals}
}

func (u *UserController) GetProfile(c *gin.Context) {
	profile, err := u.Users.GetProfile(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (u *UserController) UpdatePreferences(c *gin.Context) {
	var input services.PreferencesUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := u.Users.UpdatePreferences(c.Param("id"), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// CurrentMilestone resolves the user's pregnancy week and returns its
// milestone row.
func (u *UserController) CurrentMilestone(c *gin.Context) {
	milestone, week, err := u.Users.GetMilestoneForUser(c.Param("id"), u.Meals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if milestone == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no milestone for the current week", "week": week})
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": week, "milestone": milestone})
}
