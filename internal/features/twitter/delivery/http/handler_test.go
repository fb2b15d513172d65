package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "slapflip-backend/internal/common/errors"
	"slapflip-backend/internal/common/middleware"
	"slapflip-backend/internal/features/twitter/models"
)

var errMissingAddress = apperrors.NewValidationError("address", "address is required")

type stubService struct {
	gotCode, gotState string
}

func (s *stubService) Begin(_ context.Context, address string) (string, error) {
	if address == "" {
		return "", errMissingAddress
	}
	return "https://twitter.example/authorize?state=abc", nil
}

func (s *stubService) Complete(_ context.Context, code, state string) string {
	s.gotCode, s.gotState = code, state
	if code == "" {
		return "/whitelist?error=missing_code"
	}
	return "/whitelist?twitter=connected"
}

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	NewTwitterHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func TestBeginReturnsURL(t *testing.T) {
	r := newRouter(&stubService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/twitter?address=0x1111111111111111111111111111111111111111", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthURLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://twitter.example/authorize?state=abc", resp.URL)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/twitter", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallbackRedirects(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/twitter/callback?code=c0de&state=st4te", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/whitelist?twitter=connected", w.Header().Get("Location"))
	assert.Equal(t, "c0de", svc.gotCode)
	assert.Equal(t, "st4te", svc.gotState)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/twitter/callback", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/whitelist?error=missing_code", w.Header().Get("Location"))
}
