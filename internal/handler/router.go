package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jihyeonseong/9oormthon-3-backend/pkg/helpers"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		helpers.RegisterValidations(v)
	}
}

// RegisterRoutes wires the quest engine's routes onto the gin engine
func RegisterRoutes(r *gin.Engine, quests *QuestHandler, history *HistoryHandler, uploads *UploadHandler) {
	r.GET("/quests/random", quests.GetRandomQuest)
	r.POST("/quests/:id/check", quests.CheckAnswer)
	r.GET("/users/:user_id/quests", history.GetUserHistory)
	r.POST("/uploads", uploads.Upload)
}

// respondBindingError renders a 400 for a failed bind, with per-field
// messages when the failure came from validation rules.
func respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, helpers.NewValidationErrorResponse(validationErrors, requestLocale(c)))
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func requestLocale(c *gin.Context) string {
	if strings.HasPrefix(c.GetHeader("Accept-Language"), "ko") {
		return "ko"
	}
	return helpers.GetDefaultLocale()
}
