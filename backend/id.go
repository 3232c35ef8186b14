package backend

import "github.com/google/uuid"

// NewID returns a time-ordered identifier for a stored entry.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
