package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/interfaces/http/dto"
)

// Context and header keys for tenant propagation
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// SkipPaths are paths that don't require tenant context, such as the
	// health endpoint and the gateway webhook (Stripe sends no tenant
	// header; the tenant travels in event metadata instead)
	SkipPaths []string
	// Required determines if tenant context is mandatory
	Required bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		SkipPaths: []string{"/health", "/healthz", "/api/v1/system", "/api/v1/webhooks"},
		Required:  true,
	}
}

// TenantMiddleware extracts the organization from the X-Tenant-ID header.
// Authentication lives in front of this service; the header is the
// contract with that layer.
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig returns tenant middleware with custom configuration
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		raw := c.GetHeader(TenantHeaderKey)
		if raw == "" {
			if cfg.Required {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeBadRequest,
					"Missing X-Tenant-ID header",
					GetRequestID(c),
				))
				return
			}
			c.Next()
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			logger.Warn("Rejected request with malformed tenant header",
				zap.String("path", path),
				zap.String("tenant_header", raw))
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Invalid X-Tenant-ID header",
				GetRequestID(c),
			))
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// GetTenantID retrieves the tenant ID set by the tenant middleware.
// Returns uuid.Nil when the middleware did not run or skipped the path.
func GetTenantID(c *gin.Context) uuid.UUID {
	value, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil
	}
	tenantID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return tenantID
}
