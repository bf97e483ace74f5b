package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func accessLogRouter(t *testing.T, handler gin.HandlerFunc, skipPaths ...string) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-7")
		c.Next()
	})
	r.Use(AccessLog(zap.New(core), skipPaths...))
	r.GET("/items", handler)
	r.GET("/health", handler)
	return r, logs
}

func TestAccessLog(t *testing.T) {
	t.Run("logs one entry with correlation fields", func(t *testing.T) {
		r, logs := accessLogRouter(t, func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items?page=2", nil))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "http request", entry.Message)
		assert.Equal(t, zapcore.InfoLevel, entry.Level)

		fields := entry.ContextMap()
		assert.Equal(t, "req-7", fields["request_id"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/items", fields["path"])
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "page=2", fields["query"])
	})

	t.Run("seeds the request context for downstream loggers", func(t *testing.T) {
		var seenRequestID string
		r, _ := accessLogRouter(t, func(c *gin.Context) {
			seenRequestID = GetRequestID(c.Request.Context())
			c.Status(http.StatusNoContent)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))
		assert.Equal(t, "req-7", seenRequestID)
	})

	t.Run("server errors log at error level", func(t *testing.T) {
		r, logs := accessLogRouter(t, func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("client errors log at warn level", func(t *testing.T) {
		r, logs := accessLogRouter(t, func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("skip paths are not logged", func(t *testing.T) {
		r, logs := accessLogRouter(t, func(c *gin.Context) {
			c.Status(http.StatusOK)
		}, "/health")

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Zero(t, logs.Len())
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, "kaboom", entry.ContextMap()["panic"])
}
