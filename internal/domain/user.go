package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account holder.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
