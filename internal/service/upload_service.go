package service

import (
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/event"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/repository"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/storage"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

type UploadService struct {
	uploadRepo repository.UploadRepository
	store      storage.MediaStore
	scores     *ScoreService
	events     *event.EventPublisher
	presignTTL time.Duration
	log        *logger.Logger
}

func NewUploadService(
	uploadRepo repository.UploadRepository,
	store storage.MediaStore,
	scores *ScoreService,
	events *event.EventPublisher,
	presignTTL time.Duration,
	log *logger.Logger,
) *UploadService {
	return &UploadService{
		uploadRepo: uploadRepo,
		store:      store,
		scores:     scores,
		events:     events,
		presignTTL: presignTTL,
		log:        log,
	}
}

// Store writes the uploaded file to the media store and records it in the
// uploads ledger. When the upload targets a photo quest it also auto-scores
// the quest; that step and the event publish are best-effort. The returned
// resource carries a fresh signed URL, or null when signing fails.
func (s *UploadService) Store(ctx context.Context, userID string, questID *uint64, file multipart.File, header *multipart.FileHeader) (*models.UploadResource, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	objectKey := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.New().String(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.store.Upload(ctx, objectKey, file, header.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	record := &models.UploadRecord{
		UserID:      userID,
		ObjectKey:   objectKey,
		Size:        header.Size,
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}
	if questID != nil {
		record.QuestID = sql.NullInt64{Int64: int64(*questID), Valid: true}
	}

	id, err := s.uploadRepo.CreateUpload(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	if questID != nil {
		if err := s.scores.AutoScoreUpload(ctx, userID, *questID, record.UploadedAt); err != nil {
			s.log.Error("Failed to auto-score upload", "user_id", userID, "quest_id", *questID, "error", err)
		}
	}

	if err := s.events.Publish(event.UploadStored, map[string]interface{}{
		"user_id":    userID,
		"quest_id":   questID,
		"object_key": objectKey,
	}); err != nil {
		s.log.Error("Failed to publish upload.stored event", "error", err)
	}

	resource := &models.UploadResource{
		ID:          id,
		ObjectKey:   objectKey,
		QuestID:     questID,
		Size:        record.Size,
		ContentType: record.ContentType,
		UploadedAt:  record.UploadedAt,
	}

	if url, err := s.store.PresignedURL(ctx, objectKey, s.presignTTL); err != nil {
		s.log.Error("Failed to presign upload", "object_key", objectKey, "error", err)
	} else {
		resource.URL = &url
	}

	return resource, nil
}
