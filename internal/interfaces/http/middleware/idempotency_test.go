package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"loyaltyjo.backend/pkg/logger"
	redispkg "loyaltyjo.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() {
		redispkg.SetClient(nil)
		_ = cli.Close()
	})
	return srv
}

func idempotentRouter(businessID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(BusinessIDKey, businessID); c.Next() })
	r.POST("/stamps/add", IdempotencyMiddleware(time.Hour), handler)
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/stamps/add", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	var calls int32
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.Status(http.StatusNoContent)
	})

	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, int32(2), calls)
}

func TestIdempotencyMiddleware_NoRedisPassthrough(t *testing.T) {
	redispkg.SetClient(nil)
	r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	require.Equal(t, http.StatusAccepted, postWithKey(r, "idem-key").Code)
}

func TestIdempotencyMiddleware_ReplaysSuccess(t *testing.T) {
	startMiniRedis(t)
	var calls int32
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stamp added successfully"})
	})

	first := postWithKey(r, "scan-1")
	require.Equal(t, http.StatusOK, first.Code)

	second := postWithKey(r, "scan-1")
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	require.JSONEq(t, first.Body.String(), second.Body.String())
	require.Equal(t, int32(1), calls)

	third := postWithKey(r, "scan-2")
	require.Equal(t, http.StatusOK, third.Code)
	require.Equal(t, int32(2), calls)
}

func TestIdempotencyMiddleware_KeysAreScopedPerBusiness(t *testing.T) {
	startMiniRedis(t)
	var calls int32
	handler := func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}

	require.Equal(t, http.StatusOK, postWithKey(idempotentRouter(uuid.New(), handler), "shared").Code)
	require.Equal(t, http.StatusOK, postWithKey(idempotentRouter(uuid.New(), handler), "shared").Code)
	require.Equal(t, int32(2), calls)
}

func TestIdempotencyMiddleware_FailureReleasesKey(t *testing.T) {
	srv := startMiniRedis(t)
	var calls int32
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		if atomic.AddInt32(&calls, 1) == 1 {
			c.JSON(http.StatusNotFound, gin.H{"message": "customer card not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	require.Equal(t, http.StatusNotFound, postWithKey(r, "retry").Code)
	require.Empty(t, srv.Keys())
	require.Equal(t, http.StatusOK, postWithKey(r, "retry").Code)
	require.Equal(t, int32(2), calls)
}

func TestIdempotencyMiddleware_InFlightConflict(t *testing.T) {
	srv := startMiniRedis(t)
	businessID := uuid.New()
	require.NoError(t, srv.Set(redispkg.Key("idempotency", businessID.String(), http.MethodPost, "/stamps/add", "busy"), processingMarker))

	r := idempotentRouter(businessID, func(c *gin.Context) { c.Status(http.StatusOK) })
	require.Equal(t, http.StatusConflict, postWithKey(r, "busy").Code)
}

func TestIdempotencyMiddleware_WithHookedRedis(t *testing.T) {
	origGet, origSet, origSetNX, origDel := redisGet, redisSet, redisSetNX, redisDel
	t.Cleanup(func() {
		redisGet, redisSet, redisSetNX, redisDel = origGet, origSet, origSetNX, origDel
	})
	redisSet = func(context.Context, string, interface{}, time.Duration) error { return nil }
	redisDel = func(context.Context, string) error { return nil }

	t.Run("lookup error proceeds", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", errors.New("i/o timeout") }
		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusCreated) })
		require.Equal(t, http.StatusCreated, postWithKey(r, "k").Code)
	})

	t.Run("lost lock race", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", redisv9.Nil }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return false, nil }
		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusCreated) })
		require.Equal(t, http.StatusConflict, postWithKey(r, "k").Code)
	})

	t.Run("release failure is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		prev := logger.SetLogger(zap.New(core))
		t.Cleanup(func() { logger.SetLogger(prev) })

		redisGet = func(context.Context, string) (string, error) { return "", redisv9.Nil }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return true, nil }
		redisDel = func(context.Context, string) error { return errors.New("connection reset") }
		t.Cleanup(func() { redisDel = func(context.Context, string) error { return nil } })

		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })
		require.Equal(t, http.StatusUnprocessableEntity, postWithKey(r, "k").Code)
		require.Equal(t, 1, logs.FilterMessage("Failed to release idempotency key").Len())
	})

	t.Run("unreadable stored value", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "not-json", nil }
		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusCreated) })
		require.Equal(t, http.StatusConflict, postWithKey(r, "k").Code)
	})
}
