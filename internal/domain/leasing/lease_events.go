package leasing

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// LeaseActivatedEvent is raised when a lease enters the active status
type LeaseActivatedEvent struct {
	shared.BaseDomainEvent
	LeaseID     uuid.UUID `json:"lease_id"`
	UnitID      uuid.UUID `json:"unit_id"`
	ResidentID  uuid.UUID `json:"resident_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MonthlyRent int64     `json:"monthly_rent"`
}

// EventType returns the event type name
func (e *LeaseActivatedEvent) EventType() string {
	return "LeaseActivated"
}

// NewLeaseActivatedEvent creates a new LeaseActivatedEvent
func NewLeaseActivatedEvent(l *Lease) *LeaseActivatedEvent {
	return &LeaseActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LeaseActivated", "Lease", l.ID, l.TenantID),
		LeaseID:         l.ID,
		UnitID:          l.UnitID,
		ResidentID:      l.ResidentID,
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		MonthlyRent:     l.MonthlyRent,
	}
}

// LeaseTerminatedEvent is raised when a lease is ended early
type LeaseTerminatedEvent struct {
	shared.BaseDomainEvent
	LeaseID    uuid.UUID `json:"lease_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	ResidentID uuid.UUID `json:"resident_id"`
}

// EventType returns the event type name
func (e *LeaseTerminatedEvent) EventType() string {
	return "LeaseTerminated"
}

// NewLeaseTerminatedEvent creates a new LeaseTerminatedEvent
func NewLeaseTerminatedEvent(l *Lease) *LeaseTerminatedEvent {
	return &LeaseTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LeaseTerminated", "Lease", l.ID, l.TenantID),
		LeaseID:         l.ID,
		UnitID:          l.UnitID,
		ResidentID:      l.ResidentID,
	}
}
