package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioapp "github.com/rentfolio/backend/internal/application/portfolio"
	"github.com/rentfolio/backend/internal/domain/shared"
	"github.com/rentfolio/backend/internal/interfaces/http/dto"
)

// PortfolioHandler serves property and unit reads
type PortfolioHandler struct {
	BaseHandler
	portfolioService *portfolioapp.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *portfolioapp.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// PropertyListRequest defines pagination parameters for property listing
type PropertyListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListProperties returns the organization's properties
func (h *PortfolioHandler) ListProperties(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req PropertyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	properties, err := h.portfolioService.ListProperties(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, properties)
}

// GetProperty returns one property by ID
func (h *PortfolioHandler) GetProperty(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	propertyID, ok := h.bindPropertyID(c)
	if !ok {
		return
	}

	property, err := h.portfolioService.GetProperty(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// ListUnits returns the units of a property
func (h *PortfolioHandler) ListUnits(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	propertyID, ok := h.bindPropertyID(c)
	if !ok {
		return
	}

	units, err := h.portfolioService.ListUnits(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}

func (h *PortfolioHandler) bindPropertyID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, false
	}
	propertyID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return uuid.Nil, false
	}
	return propertyID, true
}

// RegisterRoutes registers portfolio routes
func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pf := rg.Group("/portfolio")
	{
		pf.GET("/properties", h.ListProperties)
		pf.GET("/properties/:id", h.GetProperty)
		pf.GET("/properties/:id/units", h.ListUnits)
	}
}
