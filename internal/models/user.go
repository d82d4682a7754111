package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user row in the database
type UserDB struct {
	ID           uuid.UUID `json:"id" db:"id"`                 // Primary key
	Email        string    `json:"email" db:"email"`           // Unique email
	Username     string    `json:"username" db:"username"`     // Display name
	PasswordHash string    `json:"-" db:"password_hash"`       // Never serialized
	CreatedAt    time.Time `json:"-" db:"created_at"`          // Creation timestamp
}

// User is the public view of a registered user returned by the API.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

// Public converts a database row into its API representation.
func (u *UserDB) Public() *User {
	return &User{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
