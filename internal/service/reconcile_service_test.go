package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

func TestReconcileService_Run(t *testing.T) {
	ctx := context.Background()
	log := logger.NewLogger("test")
	t1 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 7, 2, 18, 30, 0, 0, time.UTC)

	t.Run("backfills a score record per unscored pair", func(t *testing.T) {
		mockUploadRepo := &mockUploadRepository{
			listUnscoredPhotoUploadsFunc: func(ctx context.Context) ([]*models.UnscoredUpload, error) {
				return []*models.UnscoredUpload{
					{UserID: "kakao-1001", QuestID: 42, UploadedAt: t1},
					{UserID: "kakao-2002", QuestID: 42, UploadedAt: t2},
				}, nil
			},
		}
		mockQuestRepo := &mockQuestRepository{
			getQuestByIDFunc: func(ctx context.Context, questID uint64) (*models.Quest, error) {
				return photoQuest(questID), nil
			},
		}
		var records []*models.ScoreRecord
		mockScoreRepo := &mockScoreRepository{
			createScoreRecordFunc: func(ctx context.Context, record *models.ScoreRecord) (bool, error) {
				records = append(records, record)
				return true, nil
			},
		}

		scores := NewScoreService(mockQuestRepo, mockScoreRepo, nil, log)
		service := NewReconcileService(mockUploadRepo, scores, log)

		service.Run(ctx)

		if len(records) != 2 {
			t.Fatalf("Expected 2 backfilled records, got %d", len(records))
		}
		if !records[0].AnsweredAt.Equal(t1) || !records[1].AnsweredAt.Equal(t2) {
			t.Errorf("Expected answered_at dated at upload time, got %v and %v",
				records[0].AnsweredAt, records[1].AnsweredAt)
		}
		if records[0].UserAnswer != models.PhotoCorrectAnswer || records[0].AwardedScore != 1 {
			t.Errorf("Unexpected backfill record: %+v", records[0])
		}
	})

	t.Run("a failing row does not stop the job", func(t *testing.T) {
		mockUploadRepo := &mockUploadRepository{
			listUnscoredPhotoUploadsFunc: func(ctx context.Context) ([]*models.UnscoredUpload, error) {
				return []*models.UnscoredUpload{
					{UserID: "kakao-1001", QuestID: 42, UploadedAt: t1},
					{UserID: "kakao-2002", QuestID: 42, UploadedAt: t2},
				}, nil
			},
		}
		mockQuestRepo := &mockQuestRepository{
			getQuestByIDFunc: func(ctx context.Context, questID uint64) (*models.Quest, error) {
				return photoQuest(questID), nil
			},
		}
		var backfilled []string
		mockScoreRepo := &mockScoreRepository{
			createScoreRecordFunc: func(ctx context.Context, record *models.ScoreRecord) (bool, error) {
				if record.UserID == "kakao-1001" {
					return false, errors.New("connection refused")
				}
				backfilled = append(backfilled, record.UserID)
				return true, nil
			},
		}

		scores := NewScoreService(mockQuestRepo, mockScoreRepo, nil, log)
		service := NewReconcileService(mockUploadRepo, scores, log)

		service.Run(ctx)

		if len(backfilled) != 1 || backfilled[0] != "kakao-2002" {
			t.Errorf("Expected the second pair to be backfilled, got %v", backfilled)
		}
	})

	t.Run("pairs whose quest vanished are skipped", func(t *testing.T) {
		mockUploadRepo := &mockUploadRepository{
			listUnscoredPhotoUploadsFunc: func(ctx context.Context) ([]*models.UnscoredUpload, error) {
				return []*models.UnscoredUpload{
					{UserID: "kakao-1001", QuestID: 99, UploadedAt: t1},
					{UserID: "kakao-2002", QuestID: 42, UploadedAt: t2},
				}, nil
			},
		}
		mockQuestRepo := &mockQuestRepository{
			getQuestByIDFunc: func(ctx context.Context, questID uint64) (*models.Quest, error) {
				if questID == 99 {
					return nil, nil
				}
				return photoQuest(questID), nil
			},
		}
		var backfilled []string
		mockScoreRepo := &mockScoreRepository{
			createScoreRecordFunc: func(ctx context.Context, record *models.ScoreRecord) (bool, error) {
				backfilled = append(backfilled, record.UserID)
				return true, nil
			},
		}

		scores := NewScoreService(mockQuestRepo, mockScoreRepo, nil, log)
		service := NewReconcileService(mockUploadRepo, scores, log)

		service.Run(ctx)

		if len(backfilled) != 1 || backfilled[0] != "kakao-2002" {
			t.Errorf("Expected only the surviving quest to be backfilled, got %v", backfilled)
		}
	})

	t.Run("scan failure aborts quietly", func(t *testing.T) {
		mockUploadRepo := &mockUploadRepository{
			listUnscoredPhotoUploadsFunc: func(ctx context.Context) ([]*models.UnscoredUpload, error) {
				return nil, errors.New("connection refused")
			},
		}
		created := false
		mockScoreRepo := &mockScoreRepository{
			createScoreRecordFunc: func(ctx context.Context, record *models.ScoreRecord) (bool, error) {
				created = true
				return true, nil
			},
		}

		scores := NewScoreService(&mockQuestRepository{}, mockScoreRepo, nil, log)
		service := NewReconcileService(mockUploadRepo, scores, log)

		service.Run(ctx)

		if created {
			t.Errorf("Expected no backfill after a failed scan")
		}
	})
}
