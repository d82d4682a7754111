package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gamerzo/gamerzo-backend/internal/logger"
	"github.com/gamerzo/gamerzo-backend/internal/models"
	"github.com/gamerzo/gamerzo-backend/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password, username string) (*models.User, error)
}

// RegisterRequest represents the JSON body for user registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	User *models.User `json:"user"`
}

// ErrorResponse is the uniform error body for all routes
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Missing required fields"})
			return
		}
		if req.Email == "" || req.Password == "" || req.Username == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Missing required fields"})
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Password, req.Username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "User already exists"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(RegisterResponse{User: user})
	}
}
