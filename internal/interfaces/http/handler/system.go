package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentfolio/backend/internal/infrastructure/persistence"
	"github.com/rentfolio/backend/internal/interfaces/http/dto"
)

// SystemHandler handles system and health API endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	appName   string
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		version:   version,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// HealthResponse reports liveness plus database connectivity
type HealthResponse struct {
	Status    string                       `json:"status"`
	Database  string                       `json:"database"`
	DBStats   *persistence.ConnectionStats `json:"db_stats,omitempty"`
	Timestamp string                       `json:"timestamp"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.appName,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Ping is a liveness probe that never touches dependencies
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}

// GetHealth pings the database and reports connection pool stats. A
// failed ping returns 503 so load balancers rotate the instance out.
func (h *SystemHandler) GetHealth(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "up",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.db == nil {
		response.Database = "not configured"
		c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
		return
	}

	if err := h.db.Ping(); err != nil {
		response.Status = "degraded"
		response.Database = "down"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(response))
		return
	}

	if stats, err := h.db.Stats(); err == nil {
		response.DBStats = &stats
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/ping", h.Ping)
		system.GET("/health", h.GetHealth)
	}
}
