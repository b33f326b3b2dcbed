package utils

import (
	"math/rand"
	"time"
)

var tokenRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateSessionID returns a short random identifier for chat sessions and
// push-channel connections.
func GenerateSessionID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	id := make([]byte, length)
	for i := range id {
		id[i] = charset[tokenRand.Intn(len(charset))]
	}
	return string(id)
}
