package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gamerzo/gamerzo-backend/internal/models"
)

func TestRecordStatsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	gameID := uuid.New()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockGameRecorder)
		expectedCode int
		checkBody    func(t *testing.T, body map[string]any)
	}{
		{
			name: "success",
			body: `{"user_id":"` + userID.String() + `","winner":"X"}`,
			mockSetup: func(m *MockGameRecorder) {
				m.EXPECT().
					RecordGame(gomock.Any(), userID, "X").
					Return(gameID, &models.UserStatsDB{UserID: userID, TotalGames: 1, XWins: 1}, nil)
			},
			expectedCode: http.StatusCreated,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, gameID.String(), body["game_id"])
				stats, ok := body["stats"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(1), stats["total_games"])
				assert.Equal(t, float64(1), stats["x_wins"])
				assert.Equal(t, float64(0), stats["o_wins"])
				assert.Equal(t, float64(0), stats["draws"])
			},
		},
		{
			name:         "missing fields",
			body:         `{"user_id":"` + userID.String() + `"}`,
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Missing required fields", body["error"])
			},
		},
		{
			name:         "invalid json",
			body:         `{not json`,
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Missing required fields", body["error"])
			},
		},
		{
			name:         "malformed user id",
			body:         `{"user_id":"not-a-uuid","winner":"X"}`,
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid user_id", body["error"])
			},
		},
		{
			name: "internal server error",
			body: `{"user_id":"` + userID.String() + `","winner":"O"}`,
			mockSetup: func(m *MockGameRecorder) {
				m.EXPECT().
					RecordGame(gomock.Any(), userID, "O").
					Return(uuid.Nil, nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Internal server error", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockGameRecorder(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRecordStatsHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/stats", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			tt.checkBody(t, body)
		})
	}
}

func TestGetStatsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		path         string
		mockSetup    func(m *MockStatsGetter)
		expectedCode int
		checkBody    func(t *testing.T, body map[string]any)
	}{
		{
			name: "existing stats",
			path: "/api/stats/" + userID.String(),
			mockSetup: func(m *MockStatsGetter) {
				m.EXPECT().
					GetStats(gomock.Any(), userID).
					Return(&models.UserStatsDB{UserID: userID, TotalGames: 2, XWins: 1, OWins: 1}, nil)
			},
			expectedCode: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]any) {
				stats := body["stats"].(map[string]any)
				assert.Equal(t, float64(2), stats["total_games"])
				assert.Equal(t, float64(1), stats["x_wins"])
				assert.Equal(t, float64(1), stats["o_wins"])
			},
		},
		{
			name: "no recorded games",
			path: "/api/stats/" + userID.String(),
			mockSetup: func(m *MockStatsGetter) {
				m.EXPECT().
					GetStats(gomock.Any(), userID).
					Return(&models.UserStatsDB{UserID: userID}, nil)
			},
			expectedCode: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]any) {
				stats := body["stats"].(map[string]any)
				assert.Equal(t, float64(0), stats["total_games"])
				assert.Equal(t, float64(0), stats["draws"])
			},
		},
		{
			name:         "malformed user id",
			path:         "/api/stats/not-a-uuid",
			expectedCode: http.StatusBadRequest,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid user_id", body["error"])
			},
		},
		{
			name: "internal server error",
			path: "/api/stats/" + userID.String(),
			mockSetup: func(m *MockStatsGetter) {
				m.EXPECT().
					GetStats(gomock.Any(), userID).
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Internal server error", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockStatsGetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			r := chi.NewRouter()
			r.Get("/api/stats/{user_id}", NewGetStatsHandler(mockSvc))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			tt.checkBody(t, body)
		})
	}
}
