package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/gamerzo/gamerzo-backend/internal/logger"
	"github.com/gamerzo/gamerzo-backend/internal/models"
)

// GameWriter appends finished games.
type GameWriter interface {
	Save(ctx context.Context, userID uuid.UUID, winner string) (uuid.UUID, error)
}

// StatsUpserter atomically increments the aggregate counters for a user.
type StatsUpserter interface {
	Upsert(ctx context.Context, userID uuid.UUID, xWins, oWins, draws int) (*models.UserStatsDB, error)
}

// StatsReader reads the aggregate counters for a user.
type StatsReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserStatsDB, error)
}

// StatsService records game outcomes and serves per-user statistics.
type StatsService struct {
	games    GameWriter
	upserter StatsUpserter
	reader   StatsReader
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(games GameWriter, upserter StatsUpserter, reader StatsReader) *StatsService {
	return &StatsService{
		games:    games,
		upserter: upserter,
		reader:   reader,
	}
}

// outcomeCounts classifies a winner value into counter increments.
// Anything other than "X" or "O" counts as a draw, uniformly for first
// and subsequent games.
func outcomeCounts(winner string) (xWins, oWins, draws int) {
	switch winner {
	case models.WinnerX:
		return 1, 0, 0
	case models.WinnerO:
		return 0, 1, 0
	default:
		return 0, 0, 1
	}
}

// RecordGame appends a game row and increments the user's counters. The
// game row keeps the winner string verbatim; the counter increment is a
// single atomic upsert, so concurrent first submissions for the same user
// cannot create duplicate stats rows or lose an increment. If the counter
// update fails after the game row was written, the game stays recorded
// without updated aggregates.
func (svc *StatsService) RecordGame(ctx context.Context, userID uuid.UUID, winner string) (uuid.UUID, *models.UserStatsDB, error) {
	gameID, err := svc.games.Save(ctx, userID, winner)
	if err != nil {
		logger.Log.Errorw("failed to save game", "user_id", userID, "winner", winner, "err", err)
		return uuid.Nil, nil, err
	}

	xWins, oWins, draws := outcomeCounts(winner)
	stats, err := svc.upserter.Upsert(ctx, userID, xWins, oWins, draws)
	if err != nil {
		logger.Log.Errorw("failed to update stats", "user_id", userID, "game_id", gameID, "err", err)
		return uuid.Nil, nil, err
	}

	return gameID, stats, nil
}

// GetStats returns the user's counters. A user with no recorded games
// gets an all-zero view; absence is never an error.
func (svc *StatsService) GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStatsDB, error) {
	stats, err := svc.reader.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get stats", "user_id", userID, "err", err)
		return nil, err
	}
	if stats == nil {
		return &models.UserStatsDB{UserID: userID}, nil
	}
	return stats, nil
}
