package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/features/user/models"
	"slapflip-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.GetUser)
		users.POST("", h.TouchUser)
	}
}

// @Summary Get user by address
// @Description Returns the user for a wallet address, or null when unknown. Lookup is case-insensitive and never fails the request.
// @Tags users
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} models.UserResponse
// @Router /users [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user := h.service.GetUser(c.Request.Context(), c.Query("address"))
	c.JSON(http.StatusOK, models.UserResponse{User: user})
}

// @Summary Create or touch user
// @Description Upserts the user for a wallet address, updating lastSeen. Responds 201 when the record was created.
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.TouchRequest true "Wallet address"
// @Success 200 {object} models.TouchResponse
// @Success 201 {object} models.TouchResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /users [post]
func (h *UserHandler) TouchUser(c *gin.Context) {
	var req models.TouchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	user, created, err := h.service.TouchUser(c.Request.Context(), req.Address)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, models.TouchResponse{User: user, Created: created})
}
