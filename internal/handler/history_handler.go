package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/service"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

type HistoryHandler struct {
	history *service.HistoryService
	timeout time.Duration
	log     *logger.Logger
}

func NewHistoryHandler(history *service.HistoryService, timeout time.Duration, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		timeout: timeout,
		log:     log,
	}
}

type historyParams struct {
	UserID string `uri:"user_id" binding:"required,user_ref"`
}

// GetUserHistory handles GET /users/:user_id/quests
func (h *HistoryHandler) GetUserHistory(c *gin.Context) {
	var params historyParams
	if err := c.ShouldBindUri(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	entries, err := h.history.GetUserHistory(ctx, params.UserID)
	if err != nil {
		h.log.Error("Failed to load quest history", "user_id", params.UserID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quest history is unavailable"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
