package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slapflip-backend/internal/common/admin"
	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/features/whitelist/models"
	"slapflip-backend/internal/features/whitelist/service"
)

type WhitelistHandler struct {
	service    service.WhitelistService
	gate       *admin.Gate
	tiersCache gin.HandlerFunc
}

func NewWhitelistHandler(service service.WhitelistService, gate *admin.Gate) *WhitelistHandler {
	return &WhitelistHandler{service: service, gate: gate}
}

// WithTiersCache puts a response cache in front of the tier table.
func (h *WhitelistHandler) WithTiersCache(mw gin.HandlerFunc) *WhitelistHandler {
	h.tiersCache = mw
	return h
}

func (h *WhitelistHandler) RegisterRoutes(router *gin.RouterGroup) {
	tiers := []gin.HandlerFunc{h.GetTiers}
	if h.tiersCache != nil {
		tiers = append([]gin.HandlerFunc{h.tiersCache}, tiers...)
	}

	whitelist := router.Group("/whitelist")
	{
		whitelist.GET("/status", h.GetStatus)
		whitelist.GET("/tiers", tiers...)
		whitelist.POST("/join", h.Join)
	}

	adminGroup := router.Group("/admin/whitelist")
	{
		adminGroup.GET("", h.ListApplications)
		adminGroup.POST("/approve", h.Approve)
		adminGroup.POST("/deny", h.Deny)
	}
}

// @Summary Whitelist status
// @Tags whitelist
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /whitelist/status [get]
func (h *WhitelistHandler) GetStatus(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Query("address"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary Whitelist tiers
// @Tags whitelist
// @Produce json
// @Success 200 {object} models.TiersResponse
// @Router /whitelist/tiers [get]
func (h *WhitelistHandler) GetTiers(c *gin.Context) {
	c.JSON(http.StatusOK, models.TiersResponse{Tiers: h.service.Tiers()})
}

// @Summary Join the whitelist
// @Description Requires a connected Twitter account. Re-joining while pending refreshes appliedAt.
// @Tags whitelist
// @Accept json
// @Produce json
// @Param body body models.JoinRequest true "Address and tier"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /whitelist/join [post]
func (h *WhitelistHandler) Join(c *gin.Context) {
	var req models.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	if err := h.service.Join(c.Request.Context(), req.Address, req.Tier); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// @Summary List whitelist applications
// @Tags admin
// @Produce json
// @Param address query string false "Admin address (allowlist mode)"
// @Param password query string false "Admin password (secret mode)"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/whitelist [get]
func (h *WhitelistHandler) ListApplications(c *gin.Context) {
	creds := admin.Credentials{Address: c.Query("address"), Password: c.Query("password")}
	if _, err := h.gate.Verify(creds); err != nil {
		_ = c.Error(err)
		return
	}

	apps, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.ListResponse{Applications: apps})
}

// @Summary Approve an application
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.ApproveRequest true "Target address, admin credential and optional tier"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/whitelist/approve [post]
func (h *WhitelistHandler) Approve(c *gin.Context) {
	var req models.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	by, err := h.gate.Verify(admin.Credentials{Address: req.AdminAddress, Password: req.AdminPassword})
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Approve(c.Request.Context(), req.Address, req.Tier, by); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// @Summary Deny an application
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.DenyRequest true "Target address and admin credential"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/whitelist/deny [post]
func (h *WhitelistHandler) Deny(c *gin.Context) {
	var req models.DenyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	by, err := h.gate.Verify(admin.Credentials{Address: req.AdminAddress, Password: req.AdminPassword})
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Deny(c.Request.Context(), req.Address, by); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
