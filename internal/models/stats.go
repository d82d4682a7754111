package models

import "github.com/google/uuid"

// UserStatsDB represents the aggregate counters row for a user.
// Invariant: TotalGames == XWins + OWins + Draws.
type UserStatsDB struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	TotalGames int       `json:"total_games" db:"total_games"`
	XWins      int       `json:"x_wins" db:"x_wins"`
	OWins      int       `json:"o_wins" db:"o_wins"`
	Draws      int       `json:"draws" db:"draws"`
}
