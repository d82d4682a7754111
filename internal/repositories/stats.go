package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gamerzo/gamerzo-backend/internal/logger"
	"github.com/gamerzo/gamerzo-backend/internal/models"
)

// GameWriteRepository appends finished games.
type GameWriteRepository struct {
	db *sqlx.DB
}

func NewGameWriteRepository(db *sqlx.DB) *GameWriteRepository {
	return &GameWriteRepository{db: db}
}

// Save inserts a game row and returns its generated id. The winner string
// is stored verbatim.
func (r *GameWriteRepository) Save(ctx context.Context, userID uuid.UUID, winner string) (uuid.UUID, error) {
	const query = `
		INSERT INTO games (user_id, winner)
		VALUES ($1, $2)
		RETURNING id
	`
	args := []any{userID, winner}

	var gameID uuid.UUID
	err := r.db.GetContext(ctx, &gameID, query, args...)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", gameID,
		"error", err,
	)

	if err != nil {
		return uuid.Nil, err
	}

	return gameID, nil
}

// StatsWriteRepository maintains the per-user aggregate counters.
type StatsWriteRepository struct {
	db *sqlx.DB
}

func NewStatsWriteRepository(db *sqlx.DB) *StatsWriteRepository {
	return &StatsWriteRepository{db: db}
}

// Upsert increments the user's counters in a single atomic statement:
// creates the row on first submission, otherwise adds the increments to
// the existing counters. Exactly one of xWins/oWins/draws is expected to
// be 1. Returns the resulting row.
func (r *StatsWriteRepository) Upsert(ctx context.Context, userID uuid.UUID, xWins, oWins, draws int) (*models.UserStatsDB, error) {
	const query = `
		INSERT INTO user_stats (user_id, total_games, x_wins, o_wins, draws)
		VALUES ($1, 1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET total_games = user_stats.total_games + 1,
		              x_wins = user_stats.x_wins + EXCLUDED.x_wins,
		              o_wins = user_stats.o_wins + EXCLUDED.o_wins,
		              draws = user_stats.draws + EXCLUDED.draws
		RETURNING user_id, total_games, x_wins, o_wins, draws
	`
	args := []any{userID, xWins, oWins, draws}

	var stats models.UserStatsDB
	err := r.db.GetContext(ctx, &stats, query, args...)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", stats,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// StatsReadRepository reads the aggregate counters.
type StatsReadRepository struct {
	db *sqlx.DB
}

func NewStatsReadRepository(db *sqlx.DB) *StatsReadRepository {
	return &StatsReadRepository{db: db}
}

// GetByUserID returns the stats row for a user, or nil if the user has no
// recorded games yet.
func (r *StatsReadRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserStatsDB, error) {
	const query = `
		SELECT user_id, total_games, x_wins, o_wins, draws
		FROM user_stats
		WHERE user_id = $1
	`

	var stats models.UserStatsDB
	err := r.db.GetContext(ctx, &stats, query, userID)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", stats,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
