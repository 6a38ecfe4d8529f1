package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
// Email and mobile are each unique across all users.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique).
	Email string

	// Mobile is the user's phone number (unique).
	Mobile string

	// PasswordHash is the bcrypt hash of the user's password. Never serialized to clients.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(name, email, mobile, passwordHash string) *User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
