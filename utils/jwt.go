package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken mints the signed session token set as a cookie after
// the shared-secret login succeeds.
func GenerateSessionToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("SESSION_SECRET")))
}

// ParseSessionToken validates a session token and returns the user id.
func ParseSessionToken(tokenString string) (string, error) {
	secret := []byte(os.Getenv("SESSION_SECRET"))
	if len(secret) == 0 {
		return "", errors.New("SESSION_SECRET not set")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("subject claim missing")
	}
	return sub, nil
}
