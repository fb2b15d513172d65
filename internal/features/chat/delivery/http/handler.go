package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/common/middleware"
	"slapflip-backend/internal/features/chat/models"
	"slapflip-backend/internal/features/chat/service"
)

type ChatHandler struct {
	service service.ChatService
	limiter *middleware.RateLimiter
}

// NewChatHandler wires the handler. A nil limiter disables post rate limiting.
func NewChatHandler(service service.ChatService, limiter *middleware.RateLimiter) *ChatHandler {
	return &ChatHandler{service: service, limiter: limiter}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	chat.GET("", h.ListMessages)
	if h.limiter != nil {
		chat.POST("", h.limiter.Middleware(), h.PostMessage)
	} else {
		chat.POST("", h.PostMessage)
	}
}

// @Summary Recent chat messages
// @Description Returns the newest 100 messages in ascending time order. Storage failures yield an empty list.
// @Tags chat
// @Produce json
// @Success 200 {object} models.ListResponse
// @Router /chat [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, models.ListResponse{Messages: h.service.List(c.Request.Context())})
}

// @Summary Post a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param body body models.PostRequest true "Message"
// @Success 200 {object} models.PostResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req models.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	msg, err := h.service.Post(c.Request.Context(), req.Sender, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.PostResponse{Success: true, Message: msg})
}
