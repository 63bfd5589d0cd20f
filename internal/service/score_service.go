package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/event"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/repository"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/helpers"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

var ErrAnswerRequired = errors.New("answer is required")

type ScoreService struct {
	questRepo repository.QuestRepository
	scoreRepo repository.ScoreRepository
	events    *event.EventPublisher
	log       *logger.Logger
}

func NewScoreService(questRepo repository.QuestRepository, scoreRepo repository.ScoreRepository, events *event.EventPublisher, log *logger.Logger) *ScoreService {
	return &ScoreService{
		questRepo: questRepo,
		scoreRepo: scoreRepo,
		events:    events,
		log:       log,
	}
}

// CheckAnswer grades an answer against a quest and returns the full result.
// When userID is given the outcome is also persisted as a ScoreRecord; the
// ledger is write-once, so a repeat check never overwrites the first record.
// Persistence is best-effort and never fails the check itself.
func (s *ScoreService) CheckAnswer(ctx context.Context, questID uint64, answer, userID string) (*models.CheckResultResource, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, ErrAnswerRequired
	}

	quest, err := s.questRepo.GetQuestByID(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quest: %w", err)
	}
	if quest == nil {
		return nil, ErrQuestNotFound
	}

	userAnswer := strings.ToUpper(answer)
	correct := strings.EqualFold(answer, quest.CorrectAnswer)
	awarded := int32(0)
	if correct {
		awarded = 1
	}

	if userID != "" {
		record := &models.ScoreRecord{
			UserID:        userID,
			QuestID:       quest.ID,
			City:          quest.City,
			Town:          quest.Town,
			Village:       quest.Village,
			Question:      quest.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: quest.CorrectAnswer,
			AwardedScore:  awarded,
			AnsweredAt:    time.Now(),
		}

		inserted, err := s.scoreRepo.CreateScoreRecord(ctx, record)
		if err != nil {
			s.log.Error("Failed to persist score record", "user_id", userID, "quest_id", questID, "error", err)
		} else if !inserted {
			s.log.Debug("Score record already exists", "user_id", userID, "quest_id", questID)
		}
	}

	if err := s.events.Publish(event.QuestChecked, map[string]interface{}{
		"user_id":  userID,
		"quest_id": questID,
		"correct":  correct,
	}); err != nil {
		s.log.Error("Failed to publish quest.checked event", "error", err)
	}

	return buildCheckResultResource(quest, userAnswer, correct, awarded), nil
}

// AutoScoreUpload records a completed photo quest for a user. The upload
// intake calls it right after storing a photo and the startup reconciliation
// calls it for uploads that predate their score record, so both paths share
// the same write-once insert and can never double-count.
func (s *ScoreService) AutoScoreUpload(ctx context.Context, userID string, questID uint64, answeredAt time.Time) error {
	quest, err := s.questRepo.GetQuestByID(ctx, questID)
	if err != nil {
		return fmt.Errorf("failed to load quest: %w", err)
	}
	if quest == nil {
		return ErrQuestNotFound
	}
	if !quest.IsPhoto() {
		return nil
	}

	record := &models.ScoreRecord{
		UserID:        userID,
		QuestID:       quest.ID,
		City:          quest.City,
		Town:          quest.Town,
		Village:       quest.Village,
		Question:      quest.Question,
		UserAnswer:    models.PhotoCorrectAnswer,
		CorrectAnswer: models.PhotoCorrectAnswer,
		AwardedScore:  1,
		AnsweredAt:    answeredAt,
	}

	inserted, err := s.scoreRepo.CreateScoreRecord(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to persist auto score: %w", err)
	}
	if inserted {
		s.log.Info("Auto-scored photo quest", "user_id", userID, "quest_id", questID)
	}

	return nil
}

func buildCheckResultResource(quest *models.Quest, userAnswer string, correct bool, awarded int32) *models.CheckResultResource {
	resource := &models.CheckResultResource{
		QuestID:       quest.ID,
		City:          helpers.DisplayRegionName(quest.City),
		Town:          regionLabel(quest.Town),
		Village:       regionLabel(quest.Village),
		Question:      quest.Question,
		CorrectAnswer: quest.CorrectAnswer,
		UserAnswer:    userAnswer,
		Correct:       correct,
		AwardedScore:  awarded,
		Score:         quest.Score,
	}

	// Option slots of photo quests hold the sentinel text, not real choices
	if !quest.IsPhoto() {
		resource.Options = quest.Options()
	}

	return resource
}
