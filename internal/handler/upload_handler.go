package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jihyeonseong/9oormthon-3-backend/internal/service"
	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

// maxUploadBytes caps a single uploaded file at 10 MB
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	uploads *service.UploadService
	timeout time.Duration
	log     *logger.Logger
}

func NewUploadHandler(uploads *service.UploadService, timeout time.Duration, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		timeout: timeout,
		log:     log,
	}
}

type uploadRequest struct {
	UserID  string  `form:"user_id" binding:"required,user_ref"`
	QuestID *uint64 `form:"quest_id"`
}

// Upload handles POST /uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB upload limit"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resource, err := h.uploads.Store(ctx, req.UserID, req.QuestID, file, header)
	if err != nil {
		h.log.Error("Failed to store upload", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload storage is unavailable"})
		return
	}

	c.JSON(http.StatusCreated, resource)
}
