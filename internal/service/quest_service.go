package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/repository"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/helpers"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

var (
	ErrQuestNotFound    = errors.New("quest not found")
	ErrNoQuestsInRegion = errors.New("no quests in region")
)

// UploadEndpoint is the path photo quests point clients at for submissions
const UploadEndpoint = "/uploads"

type QuestService struct {
	questRepo repository.QuestRepository
	log       *logger.Logger

	// drawPhoto decides the requested quest type per call; tests override it
	drawPhoto func() bool
}

func NewQuestService(questRepo repository.QuestRepository, log *logger.Logger) *QuestService {
	return &QuestService{
		questRepo: questRepo,
		log:       log,
		drawPhoto: func() bool { return rand.Float64() < 0.5 },
	}
}

// GetRandomQuest picks one quest in the filtered region. The requested type
// is drawn photo/question with even odds; when the drawn type has no quests
// there, the opposite type is tried once before giving up. Selection among
// matches of a type is uniform.
func (s *QuestService) GetRandomQuest(ctx context.Context, filter models.RegionFilter) (*models.RandomQuestResource, error) {
	photo := s.drawPhoto()

	quest, err := s.questRepo.GetRandomQuest(ctx, filter, photo)
	if err != nil {
		return nil, fmt.Errorf("failed to select quest: %w", err)
	}
	if quest == nil {
		quest, err = s.questRepo.GetRandomQuest(ctx, filter, !photo)
		if err != nil {
			return nil, fmt.Errorf("failed to select fallback quest: %w", err)
		}
	}
	if quest == nil {
		return nil, ErrNoQuestsInRegion
	}

	return buildRandomQuestResource(quest), nil
}

// GetAvailableRegions lists every region tuple that has at least one quest.
// The tuples carry stored values, not display labels, so callers can feed
// them straight back into the region filter.
func (s *QuestService) GetAvailableRegions(ctx context.Context) ([]models.RegionResource, error) {
	regions, err := s.questRepo.ListQuestRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available regions: %w", err)
	}

	resources := make([]models.RegionResource, 0, len(regions))
	for _, region := range regions {
		resource := models.RegionResource{City: region.City}
		if region.Town.Valid {
			town := region.Town.String
			resource.Town = &town
		}
		if region.Village.Valid {
			village := region.Village.String
			resource.Village = &village
		}
		resources = append(resources, resource)
	}

	return resources, nil
}

func buildRandomQuestResource(quest *models.Quest) *models.RandomQuestResource {
	resource := &models.RandomQuestResource{
		ID:      quest.ID,
		City:    helpers.DisplayRegionName(quest.City),
		Town:    regionLabel(quest.Town),
		Village: regionLabel(quest.Village),
		Score:   quest.Score,
	}

	if quest.IsPhoto() {
		resource.Type = models.QuestTypePhoto
		resource.Instruction = quest.Question
		resource.UploadEndpoint = UploadEndpoint
	} else {
		resource.Type = models.QuestTypeQuestion
		resource.Question = quest.Question
		resource.Options = quest.Options()
	}

	return resource
}

// regionLabel maps a nullable stored region name to its display label
func regionLabel(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	label := helpers.DisplayRegionName(ns.String)
	return &label
}
