package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/models"
	"github.com/jihyeonseong/9oormthon-3-backend/internal/service"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

type QuestHandler struct {
	quests  *service.QuestService
	scores  *service.ScoreService
	timeout time.Duration
	log     *logger.Logger
}

func NewQuestHandler(quests *service.QuestService, scores *service.ScoreService, timeout time.Duration, log *logger.Logger) *QuestHandler {
	return &QuestHandler{
		quests:  quests,
		scores:  scores,
		timeout: timeout,
		log:     log,
	}
}

type randomQuestQuery struct {
	City    string  `form:"city" binding:"required,region_name"`
	Town    *string `form:"town" binding:"omitempty,region_name"`
	Village *string `form:"village" binding:"omitempty,region_name"`
}

type checkAnswerRequest struct {
	Answer string `json:"answer" binding:"required,quest_answer"`
	UserID string `json:"user_id" binding:"omitempty,user_ref"`
}

// GetRandomQuest handles GET /quests/random
func (h *QuestHandler) GetRandomQuest(c *gin.Context) {
	var query randomQuestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	filter := models.RegionFilter{
		City:    query.City,
		Town:    query.Town,
		Village: query.Village,
	}

	quest, err := h.quests.GetRandomQuest(ctx, filter)
	if errors.Is(err, service.ErrNoQuestsInRegion) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "no quest found for the requested region",
			"available_regions": h.availableRegions(ctx),
		})
		return
	}
	if err != nil {
		h.log.Error("Failed to pick a random quest", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quest catalog is unavailable"})
		return
	}

	c.JSON(http.StatusOK, quest)
}

// availableRegions fetches the diagnostics list for the 404 body; a failure
// degrades to an empty list so the 404 itself still renders.
func (h *QuestHandler) availableRegions(ctx context.Context) []models.RegionResource {
	regions, err := h.quests.GetAvailableRegions(ctx)
	if err != nil {
		h.log.Error("Failed to list available regions", "error", err)
		return []models.RegionResource{}
	}
	return regions
}

// CheckAnswer handles POST /quests/:id/check
func (h *QuestHandler) CheckAnswer(c *gin.Context) {
	questID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quest id must be numeric"})
		return
	}

	var req checkAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.scores.CheckAnswer(ctx, questID, req.Answer, req.UserID)
	switch {
	case errors.Is(err, service.ErrQuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
	case errors.Is(err, service.ErrAnswerRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer is required"})
	case err != nil:
		h.log.Error("Failed to check answer", "quest_id", questID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quest catalog is unavailable"})
	default:
		c.JSON(http.StatusOK, result)
	}
}
