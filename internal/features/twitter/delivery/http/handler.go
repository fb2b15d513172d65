package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/twitter/service"
)

type TwitterHandler struct {
	service service.TwitterService
}

func NewTwitterHandler(service service.TwitterService) *TwitterHandler {
	return &TwitterHandler{service: service}
}

func (h *TwitterHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth/twitter")
	{
		auth.GET("", h.Begin)
		auth.GET("/callback", h.Callback)
	}
}

// @Summary Start Twitter authorization
// @Description Creates a single-use OAuth2 session for the address and returns the Twitter authorization URL.
// @Tags twitter
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} models.AuthURLResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /auth/twitter [get]
func (h *TwitterHandler) Begin(c *gin.Context) {
	url, err := h.service.Begin(c.Request.Context(), c.Query("address"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.AuthURLResponse{URL: url})
}

// @Summary Twitter OAuth2 callback
// @Description Always redirects: ?twitter=connected on success, ?error=<code> otherwise.
// @Tags twitter
// @Param code query string false "Authorization code"
// @Param state query string false "Session state"
// @Success 303
// @Router /auth/twitter/callback [get]
func (h *TwitterHandler) Callback(c *gin.Context) {
	location := h.service.Complete(c.Request.Context(), c.Query("code"), c.Query("state"))
	c.Redirect(http.StatusSeeOther, location)
}
