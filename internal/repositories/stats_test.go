package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGameWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGameWriteRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	gameID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO games")).
			WithArgs(userID, "X").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(gameID.String()))

		got, err := repo.Save(ctx, userID, "X")
		assert.NoError(t, err)
		assert.Equal(t, gameID, got)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO games")).
			WithArgs(userID, "O").
			WillReturnError(errors.New("connection reset"))

		got, err := repo.Save(ctx, userID, "O")
		assert.Error(t, err)
		assert.Equal(t, uuid.Nil, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsWriteRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsWriteRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	statsCols := []string{"user_id", "total_games", "x_wins", "o_wins", "draws"}

	t.Run("first game creates row", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_stats")).
			WithArgs(userID, 1, 0, 0).
			WillReturnRows(sqlmock.NewRows(statsCols).AddRow(userID.String(), 1, 1, 0, 0))

		stats, err := repo.Upsert(ctx, userID, 1, 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, userID, stats.UserID)
		assert.Equal(t, 1, stats.TotalGames)
		assert.Equal(t, 1, stats.XWins)
	})

	t.Run("subsequent game increments counters", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_stats")).
			WithArgs(userID, 0, 0, 1).
			WillReturnRows(sqlmock.NewRows(statsCols).AddRow(userID.String(), 2, 1, 0, 1))

		stats, err := repo.Upsert(ctx, userID, 0, 0, 1)
		assert.NoError(t, err)
		assert.Equal(t, 2, stats.TotalGames)
		assert.Equal(t, stats.TotalGames, stats.XWins+stats.OWins+stats.Draws)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsReadRepository_GetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsReadRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	statsCols := []string{"user_id", "total_games", "x_wins", "o_wins", "draws"}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, total_games, x_wins, o_wins, draws")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(statsCols).AddRow(userID.String(), 3, 1, 1, 1))

		stats, err := repo.GetByUserID(ctx, userID)
		assert.NoError(t, err)
		assert.NotNil(t, stats)
		assert.Equal(t, 3, stats.TotalGames)
	})

	t.Run("absent", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, total_games, x_wins, o_wins, draws")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(statsCols))

		stats, err := repo.GetByUserID(ctx, userID)
		assert.NoError(t, err)
		assert.Nil(t, stats)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, total_games, x_wins, o_wins, draws")).
			WithArgs(userID).
			WillReturnError(errors.New("connection reset"))

		stats, err := repo.GetByUserID(ctx, userID)
		assert.Error(t, err)
		assert.Nil(t, stats)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
