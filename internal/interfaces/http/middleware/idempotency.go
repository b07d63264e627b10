package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/interfaces/http/response"
	"loyaltyjo.backend/pkg/logger"
	"loyaltyjo.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// DefaultRetention is how long a completed response is replayed
	DefaultRetention = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// IdempotencyMiddleware replays the stored response when a stamp or redeem request is retried
// with the same Idempotency-Key. Keys are scoped to the caller's business, method and route.
// Requests without the header, or when redis is unavailable, run normally.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		businessID, _ := GetBusinessID(c)
		storageKey := redis.Key("idempotency", businessID.String(), c.Request.Method, c.FullPath(), key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			replay(c, val)
			return
		case errors.Is(err, redis.ErrNotConfigured):
			c.Next()
			return
		case !redis.IsNil(err):
			logger.Warn(ctx, "Idempotency lookup failed, processing without replay", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock failed, processing without replay", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.ErrorWithError(c, http.StatusConflict, domainerrors.CodeConflict, "Request already in progress")
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			payload, _ := json.Marshal(storedResponse{Status: status, Body: w.body.String()})
			if err := redisSet(ctx, storageKey, string(payload), retention); err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// failed requests may be retried with the same key
		if err := redisDel(ctx, storageKey); err != nil {
			logger.Warn(ctx, "Failed to release idempotency key", zap.Error(err))
		}
	}
}

func replay(c *gin.Context, val string) {
	if val == processingMarker {
		response.ErrorWithError(c, http.StatusConflict, domainerrors.CodeConflict, "Request already in progress")
		return
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(val), &stored); err != nil || stored.Status == 0 {
		logger.Warn(c.Request.Context(), "Discarding unreadable idempotent response")
		response.ErrorWithError(c, http.StatusConflict, domainerrors.CodeConflict, "Request already processed")
		return
	}

	c.Header("X-Idempotency-Hit", "true")
	c.Data(stored.Status, "application/json; charset=utf-8", []byte(stored.Body))
	c.Abort()
}
