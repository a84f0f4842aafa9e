package model

import (
	"github.com/google/uuid"
)

// newID returns the primary key for a new record unless one was already assigned
func newID(current string) string {
	if current != "" {
		return current
	}
	return uuid.NewString()
}
