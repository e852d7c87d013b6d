package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/rentfolio/backend/internal/application/ledger"
	"github.com/rentfolio/backend/internal/interfaces/http/dto"
)

// ScheduleHandler serves payment schedule generation and the status
// sweep endpoints used by the billing cron
type ScheduleHandler struct {
	BaseHandler
	scheduleService *ledgerapp.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService *ledgerapp.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// SweepRequest defines the optional as-of override for status sweeps
type SweepRequest struct {
	AsOf string `json:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// SweepResponse reports how many payments a sweep transitioned
type SweepResponse struct {
	Updated int       `json:"updated"`
	AsOf    time.Time `json:"as_of"`
}

// GenerateSchedule derives and persists the monthly payment schedule
// for a lease. Safe to call repeatedly; existing periods are skipped.
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.ValidationError(c, err)
		return
	}
	leaseID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	result, err := h.scheduleService.GenerateForLease(c.Request.Context(), tenantID, leaseID)
	if err != nil {
		switch {
		case errors.Is(err, ledgerapp.ErrScheduleLeaseNotFound):
			h.NotFound(c, "Lease not found")
		case errors.Is(err, ledgerapp.ErrScheduleLeaseNotEligible):
			h.Error(c, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState, err.Error())
		default:
			h.HandleError(c, err)
		}
		return
	}

	h.Created(c, result)
}

// MarkDue transitions upcoming payments whose due date has arrived
func (h *ScheduleHandler) MarkDue(c *gin.Context) {
	h.runSweep(c, h.scheduleService.MarkDuePayments)
}

// MarkLate transitions due and partial payments past their grace window
func (h *ScheduleHandler) MarkLate(c *gin.Context) {
	h.runSweep(c, h.scheduleService.MarkLatePayments)
}

func (h *ScheduleHandler) runSweep(c *gin.Context, sweep func(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.ValidationError(c, err)
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != "" {
		asOf, _ = time.Parse("2006-01-02", req.AsOf)
	}

	updated, err := sweep(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SweepResponse{Updated: updated, AsOf: asOf})
}

// RegisterRoutes registers schedule routes
func (h *ScheduleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.POST("/leases/:id/schedule", h.GenerateSchedule)
		ledger.POST("/sweeps/due", h.MarkDue)
		ledger.POST("/sweeps/late", h.MarkLate)
	}
}
