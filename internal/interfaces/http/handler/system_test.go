package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystemRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewSystemHandler(nil, "Rentfolio Backend", "1.0.0").RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestSystemHandler_Ping(t *testing.T) {
	r := newSystemRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	r := newSystemRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rentfolio Backend")
	assert.Contains(t, w.Body.String(), "1.0.0")
}

func TestSystemHandler_HealthWithoutDatabase(t *testing.T) {
	r := newSystemRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}
