package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gamerzo/gamerzo-backend/internal/logger"
)

// Pinger checks connectivity to the relational store.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports liveness of the service and its store
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}

// RootResponse identifies the service
type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewHealthHandler returns an HTTP handler that pings the store and
// reports healthy (200) or unhealthy (503).
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := db.PingContext(r.Context()); err != nil {
			logger.Log.Errorw("health check failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(HealthResponse{Status: "unhealthy", Error: err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HealthResponse{Status: "healthy", Database: "connected"})
	}
}

// NewRootHandler returns an HTTP handler for the service banner route.
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RootResponse{Message: "Gamerzo Backend API", Status: "running"})
	}
}
