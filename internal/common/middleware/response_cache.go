package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slapflip-backend/internal/common/cache"
	"slapflip-backend/internal/common/logger"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache caches successful GET responses for ttl, keyed by the full
// request URI. Only use it on responses that do not depend on the caller.
func ResponseCache(c cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := "httpcache:" + ctx.Request.URL.RequestURI()

		var entry cachedResponse
		if found, err := c.Get(ctx.Request.Context(), key, &entry); err == nil && found {
			ctx.Header("X-Cache", "HIT")
			ctx.Data(entry.Status, entry.ContentType, entry.Body)
			ctx.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: ctx.Writer}
		ctx.Writer = rec
		ctx.Header("X-Cache", "MISS")
		ctx.Next()

		status := rec.Status()
		if status < 200 || status >= 300 || len(ctx.Errors) > 0 {
			return
		}
		entry = cachedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}
		if err := c.Set(ctx.Request.Context(), key, entry, ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to cache response")
		}
	}
}
