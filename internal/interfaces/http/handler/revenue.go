package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/rentfolio/backend/internal/application/report"
)

// RevenueHandler serves the property manager revenue split endpoints
type RevenueHandler struct {
	BaseHandler
	revenueService *reportapp.RevenueSplitService
}

// NewRevenueHandler creates a new RevenueHandler
func NewRevenueHandler(revenueService *reportapp.RevenueSplitService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

// RevenueFilterRequest defines the query parameters shared by the
// revenue endpoints. The manager is always explicit; this service does
// not assume the caller is the manager being reported on.
type RevenueFilterRequest struct {
	ManagerID string `form:"manager_id" binding:"required,uuid"`
	Year      int    `form:"year" binding:"omitempty,min=2000,max=2100"`
}

func (r *RevenueFilterRequest) managerID() uuid.UUID {
	id, _ := uuid.Parse(r.ManagerID)
	return id
}

// GetByProperty returns one revenue row per property with an accepted
// assignment for the manager
func (h *RevenueHandler) GetByProperty(c *gin.Context) {
	tenantID, req, ok := h.bindRevenueRequest(c)
	if !ok {
		return
	}

	rows, err := h.revenueService.GetByProperty(c.Request.Context(), tenantID, req.managerID())
	if err != nil {
		h.handleRevenueError(c, err)
		return
	}
	h.Success(c, rows)
}

// GetSummary returns the manager's totals across all their properties
func (h *RevenueHandler) GetSummary(c *gin.Context) {
	tenantID, req, ok := h.bindRevenueRequest(c)
	if !ok {
		return
	}

	summary, err := h.revenueService.GetSummary(c.Request.Context(), tenantID, req.managerID())
	if err != nil {
		h.handleRevenueError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetByMonth returns twelve monthly buckets of the manager's share for
// one calendar year. Year defaults to the current year.
func (h *RevenueHandler) GetByMonth(c *gin.Context) {
	tenantID, req, ok := h.bindRevenueRequest(c)
	if !ok {
		return
	}

	year := req.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	months, err := h.revenueService.GetByMonth(c.Request.Context(), tenantID, req.managerID(), year)
	if err != nil {
		h.handleRevenueError(c, err)
		return
	}
	h.Success(c, months)
}

func (h *RevenueHandler) bindRevenueRequest(c *gin.Context) (uuid.UUID, *RevenueFilterRequest, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return uuid.Nil, nil, false
	}

	var req RevenueFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, nil, false
	}
	return tenantID, &req, true
}

func (h *RevenueHandler) handleRevenueError(c *gin.Context, err error) {
	if errors.Is(err, reportapp.ErrRevenueUnavailable) {
		h.Unavailable(c, "Revenue figures are temporarily unavailable")
		return
	}
	h.HandleError(c, err)
}

// RegisterRoutes registers revenue split routes
func (h *RevenueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	revenue := rg.Group("/reports/revenue")
	{
		revenue.GET("/by-property", h.GetByProperty)
		revenue.GET("/summary", h.GetSummary)
		revenue.GET("/by-month", h.GetByMonth)
	}
}
