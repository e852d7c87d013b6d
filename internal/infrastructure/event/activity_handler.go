package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// ActivityLogHandler writes a structured audit line for every ledger
// event. It subscribes as a wildcard handler so new event types are
// picked up without registration changes.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a handler that logs domain activity
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityLogHandler{logger: logger.Named("activity")}
}

// EventTypes returns an empty slice: this handler receives all events
func (h *ActivityLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event
func (h *ActivityLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.logger.Info("Domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.String("tenant_id", evt.TenantID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

var _ shared.EventHandler = (*ActivityLogHandler)(nil)
