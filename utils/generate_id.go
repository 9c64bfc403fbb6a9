package utils

import "github.com/google/uuid"

// GenerateID returns a new random identifier for users, sessions and
// experiences. Session ids must be unpredictable, so v4 and not v1.
func GenerateID() string {
	return uuid.New().String()
}
