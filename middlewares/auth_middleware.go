package middlewares

import (
	"net/http"
	"strings"

	"bloomtrack/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuth validates the session cookie set at login (or a bearer token,
// for non-browser clients) and stores the user id on the context.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("session")
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
			return
		}

		userID, err := utils.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
