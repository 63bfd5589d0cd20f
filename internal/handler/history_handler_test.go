package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/storage"
)

func TestGetUserHistoryEndpoint(t *testing.T) {
	t.Run("returns the scored history with image urls", func(t *testing.T) {
		scoreRepo := &mockScoreRepo{
			listScoresByUserFunc: func(ctx context.Context, userID string) ([]*models.ScoreRecord, error) {
				if userID != "kakao-1001" {
					t.Errorf("Expected lookup for kakao-1001, got %s", userID)
				}
				return []*models.ScoreRecord{
					{
						UserID:        "kakao-1001",
						QuestID:       42,
						City:          "Jeju",
						Town:          sql.NullString{String: "Hallim", Valid: true},
						Question:      "Take a photo of a dol hareubang",
						UserAnswer:    models.PhotoCorrectAnswer,
						CorrectAnswer: models.PhotoCorrectAnswer,
						AwardedScore:  1,
						AnsweredAt:    time.Now(),
					},
				}, nil
			},
		}
		uploadRepo := &mockUploadRepo{
			getLatestUploadForQuestFunc: func(ctx context.Context, userID string, questID uint64) (*models.UploadRecord, error) {
				return &models.UploadRecord{
					UserID:    userID,
					ObjectKey: "uploads/kakao-1001/sunset.jpg",
				}, nil
			},
		}
		store := storage.NewMockStore()
		store.Put("uploads/kakao-1001/sunset.jpg", []byte("image"))
		router := newTestRouter(&mockQuestRepo{}, scoreRepo, uploadRepo, store)

		req := httptest.NewRequest(http.MethodGet, "/users/kakao-1001/quests", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var entries []models.HistoryEntryResource
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}
		if entries[0].QuestID != 42 {
			t.Errorf("Expected quest 42, got %d", entries[0].QuestID)
		}
		if entries[0].City != "제주시" {
			t.Errorf("Expected display label for the city, got %s", entries[0].City)
		}
		if entries[0].ImageURL == nil || !strings.Contains(*entries[0].ImageURL, "uploads/kakao-1001/sunset.jpg") {
			t.Errorf("Expected presigned url for the own upload, got %v", entries[0].ImageURL)
		}
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		scoreRepo := &mockScoreRepo{
			listScoresByUserFunc: func(ctx context.Context, userID string) ([]*models.ScoreRecord, error) {
				return nil, nil
			},
		}
		router := newTestRouter(&mockQuestRepo{}, scoreRepo, &mockUploadRepo{}, storage.NewMockStore())

		req := httptest.NewRequest(http.MethodGet, "/users/kakao-1001/quests", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("Expected empty JSON array, got %s", body)
		}
	})

	t.Run("malformed user id is a validation error", func(t *testing.T) {
		router := newTestRouter(&mockQuestRepo{}, &mockScoreRepo{}, &mockUploadRepo{}, storage.NewMockStore())

		req := httptest.NewRequest(http.MethodGet, "/users/bad!id/quests", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("history outage returns 503", func(t *testing.T) {
		scoreRepo := &mockScoreRepo{
			listScoresByUserFunc: func(ctx context.Context, userID string) ([]*models.ScoreRecord, error) {
				return nil, errors.New("connection refused")
			},
		}
		router := newTestRouter(&mockQuestRepo{}, scoreRepo, &mockUploadRepo{}, storage.NewMockStore())

		req := httptest.NewRequest(http.MethodGet, "/users/kakao-1001/quests", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d", rec.Code)
		}
	})
}
