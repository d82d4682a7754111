package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gamerzo/gamerzo-backend/internal/logger"
	"github.com/gamerzo/gamerzo-backend/internal/models"
)

// GameRecorder defines the interface that the stats service must implement
// for recording game outcomes.
type GameRecorder interface {
	RecordGame(ctx context.Context, userID uuid.UUID, winner string) (uuid.UUID, *models.UserStatsDB, error)
}

// StatsGetter defines the interface that the stats service must implement
// for reading per-user counters.
type StatsGetter interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStatsDB, error)
}

// RecordStatsRequest represents the JSON body for recording a game outcome
type RecordStatsRequest struct {
	UserID string `json:"user_id"`
	Winner string `json:"winner"`
}

// RecordStatsResponse represents a successful game submission response
type RecordStatsResponse struct {
	GameID uuid.UUID           `json:"game_id"`
	Stats  *models.UserStatsDB `json:"stats"`
}

// GetStatsResponse represents the per-user counters response
type GetStatsResponse struct {
	Stats *models.UserStatsDB `json:"stats"`
}

// NewRecordStatsHandler returns an HTTP handler that records a finished
// game and returns the updated counters.
func NewRecordStatsHandler(svc GameRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req RecordStatsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Missing required fields"})
			return
		}
		if req.UserID == "" || req.Winner == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Missing required fields"})
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid user_id"})
			return
		}

		gameID, stats, err := svc.RecordGame(r.Context(), userID, req.Winner)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(RecordStatsResponse{GameID: gameID, Stats: stats})
	}
}

// NewGetStatsHandler returns an HTTP handler that serves a user's
// counters. Users without recorded games get an all-zero view.
func NewGetStatsHandler(svc StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid user_id"})
			return
		}

		stats, err := svc.GetStats(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(GetStatsResponse{Stats: stats})
	}
}
