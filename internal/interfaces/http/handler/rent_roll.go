package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/rentfolio/backend/internal/application/report"
	"github.com/rentfolio/backend/internal/domain/report"
)

// RentRollHandler serves the rent roll reporting endpoint
type RentRollHandler struct {
	BaseHandler
	rentRollService *reportapp.RentRollService
}

// NewRentRollHandler creates a new RentRollHandler
func NewRentRollHandler(rentRollService *reportapp.RentRollService) *RentRollHandler {
	return &RentRollHandler{rentRollService: rentRollService}
}

// RentRollFilterRequest defines the query parameters for the rent roll
type RentRollFilterRequest struct {
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
}

// GetRentRoll returns the rent roll for the organization, optionally
// restricted to one property
func (h *RentRollHandler) GetRentRoll(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req RentRollFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := report.RentRollFilter{TenantID: tenantID}
	if req.PropertyID != "" {
		propertyID, err := uuid.Parse(req.PropertyID)
		if err != nil {
			h.BadRequest(c, "Invalid property_id")
			return
		}
		filter.PropertyID = &propertyID
	}

	entries, err := h.rentRollService.GetRentRoll(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, reportapp.ErrAggregationUnavailable) {
			h.Unavailable(c, "Rent roll is temporarily unavailable")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// RegisterRoutes registers rent roll routes
func (h *RentRollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/rent-roll", h.GetRentRoll)
	}
}
