package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/repository"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/storage"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/helpers"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

// At most this many history entries per request borrow a default image
const maxDefaultImageSlots = 3

type HistoryService struct {
	scoreRepo  repository.ScoreRepository
	uploadRepo repository.UploadRepository
	store      storage.MediaStore
	defaults   *storage.DefaultImageDirectory
	presignTTL time.Duration
	log        *logger.Logger
}

func NewHistoryService(
	scoreRepo repository.ScoreRepository,
	uploadRepo repository.UploadRepository,
	store storage.MediaStore,
	defaults *storage.DefaultImageDirectory,
	presignTTL time.Duration,
	log *logger.Logger,
) *HistoryService {
	return &HistoryService{
		scoreRepo:  scoreRepo,
		uploadRepo: uploadRepo,
		store:      store,
		defaults:   defaults,
		presignTTL: presignTTL,
		log:        log,
	}
}

// GetUserHistory returns the user's completed quests newest first, each with
// a freshly signed image URL. An entry resolves to the user's latest upload
// for that quest, else one of the first three default images; any resolution
// or signing failure leaves image_url null and never fails the listing.
func (s *HistoryService) GetUserHistory(ctx context.Context, userID string) ([]*models.HistoryEntryResource, error) {
	records, err := s.scoreRepo.ListScoresByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest history: %w", err)
	}

	defaultKeys := s.defaults.Keys(ctx)
	defaultsUsed := 0

	entries := make([]*models.HistoryEntryResource, 0, len(records))
	for _, record := range records {
		entry := &models.HistoryEntryResource{
			QuestID:       record.QuestID,
			City:          helpers.DisplayRegionName(record.City),
			Town:          regionLabel(record.Town),
			Village:       regionLabel(record.Village),
			Question:      record.Question,
			UserAnswer:    record.UserAnswer,
			CorrectAnswer: record.CorrectAnswer,
			AwardedScore:  record.AwardedScore,
			AnsweredAt:    record.AnsweredAt,
		}

		objectKey, ok := s.resolveObjectKey(ctx, userID, record.QuestID, defaultKeys, &defaultsUsed)
		if ok {
			if url, err := s.store.PresignedURL(ctx, objectKey, s.presignTTL); err != nil {
				s.log.Error("Failed to presign history image", "object_key", objectKey, "error", err)
			} else {
				entry.ImageURL = &url
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// resolveObjectKey picks the object to show for one history entry: the
// user's latest upload for the quest when there is one, else the next
// unused default slot. A failed upload lookup yields no image rather than
// silently falling back to a default.
func (s *HistoryService) resolveObjectKey(ctx context.Context, userID string, questID uint64, defaultKeys []string, defaultsUsed *int) (string, bool) {
	upload, err := s.uploadRepo.GetLatestUploadForQuest(ctx, userID, questID)
	if err != nil {
		s.log.Error("Failed to look up quest upload", "user_id", userID, "quest_id", questID, "error", err)
		return "", false
	}
	if upload != nil {
		return upload.ObjectKey, true
	}

	if *defaultsUsed < maxDefaultImageSlots && *defaultsUsed < len(defaultKeys) {
		key := defaultKeys[*defaultsUsed]
		*defaultsUsed++
		return key, true
	}

	return "", false
}
