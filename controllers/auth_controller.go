package controllers

import (
	"net/http"
	"os"

	"bloomtrack/services"
	"bloomtrack/utils"

	"github.com/gin-gonic/gin"
)

// Access is gated by one shared secret (APP_PASSWORD_HASH, hex SHA-256), not
// per-user credentials. Login identifies the profile by email and sets the
// session cookie.
type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

const sessionCookie = "session"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storedHash := os.Getenv("APP_PASSWORD_HASH")
	if storedHash == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: APP_PASSWORD_HASH not set"})
		return
	}
	if !utils.CheckPasswordHash(input.Password, storedHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	user, err := a.Users.GetUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateSessionToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.SetCookie(sessionCookie, token, 72*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
