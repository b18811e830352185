package domain

import "github.com/google/uuid"

// NewID returns a fresh unique identity for a Document, Scene or Node.
func NewID() string {
	return uuid.NewString()
}
