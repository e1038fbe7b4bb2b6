package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("database is locked") }

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		s := setupTestServer(t)

		w := s.do(http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "Home Library API is running", response.Message)
		assert.Equal(t, "test", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("returns unavailable when the ping fails", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", NewHealthController(failingPinger{}, "1.0.0").Status)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "database is locked")
	})

	t.Run("reports a missing database", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", NewHealthController(nil, "").Status)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", decode[HealthResponse](t, w).Checks["database"])
	})
}
