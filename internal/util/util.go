package util

import (
	"github.com/google/uuid"
)

// NewID returns a new random identifier suitable for games and players
func NewID() string {
	return uuid.New().String()
}
