package models

import (
	"time"

	"github.com/google/uuid"
)

// Recognized winner values. Any other value counts as a draw.
const (
	WinnerX    = "X"
	WinnerO    = "O"
	WinnerDraw = "draw"
)

// GameDB represents a finished game row in the database.
// Rows are append-only, never updated or deleted.
type GameDB struct {
	ID        uuid.UUID `json:"id" db:"id"`                 // Primary key
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Owning user
	Winner    string    `json:"winner" db:"winner"`         // Stored verbatim as submitted
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Submission timestamp
}
