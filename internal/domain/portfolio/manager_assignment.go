package portfolio

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// AssignmentStatus represents the lifecycle of a manager assignment.
// Only accepted assignments contribute to revenue splits.
type AssignmentStatus string

const (
	AssignmentStatusProposed AssignmentStatus = "proposed"
	AssignmentStatusAccepted AssignmentStatus = "accepted"
	AssignmentStatusRejected AssignmentStatus = "rejected"
)

// IsValid checks if the status is a valid AssignmentStatus
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusProposed, AssignmentStatusAccepted, AssignmentStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of AssignmentStatus
func (s AssignmentStatus) String() string {
	return string(s)
}

// PropertyManagerAssignment links a property manager to a property with
// an agreed share of collected rent
type PropertyManagerAssignment struct {
	shared.TenantAggregateRoot
	PropertyID      uuid.UUID
	ManagerID       uuid.UUID // The manager's user record
	SplitPercentage int       // Whole percent, always within [0, 100]
	Status          AssignmentStatus
}

// NewPropertyManagerAssignment proposes a manager assignment. The split
// percentage is clamped into [0, 100] rather than rejected, so a revenue
// share can never exceed the collected total.
func NewPropertyManagerAssignment(tenantID, propertyID, managerID uuid.UUID, splitPercentage int) (*PropertyManagerAssignment, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if managerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANAGER", "Manager ID cannot be empty")
	}

	return &PropertyManagerAssignment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		ManagerID:           managerID,
		SplitPercentage:     ClampSplitPercentage(splitPercentage),
		Status:              AssignmentStatusProposed,
	}, nil
}

// ClampSplitPercentage forces a percentage into the [0, 100] range
func ClampSplitPercentage(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Accept marks the assignment as accepted by the manager
func (a *PropertyManagerAssignment) Accept() error {
	if a.Status != AssignmentStatusProposed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept assignment in %s status", a.Status))
	}
	a.Status = AssignmentStatusAccepted
	a.touch()
	return nil
}

// Reject marks the assignment as rejected by the manager
func (a *PropertyManagerAssignment) Reject() error {
	if a.Status != AssignmentStatusProposed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject assignment in %s status", a.Status))
	}
	a.Status = AssignmentStatusRejected
	a.touch()
	return nil
}

// ChangeSplitPercentage updates the share on a proposed assignment
func (a *PropertyManagerAssignment) ChangeSplitPercentage(pct int) error {
	if a.Status == AssignmentStatusAccepted {
		return shared.NewDomainError("INVALID_STATE", "Cannot change split on an accepted assignment")
	}
	a.SplitPercentage = ClampSplitPercentage(pct)
	a.touch()
	return nil
}

func (a *PropertyManagerAssignment) touch() {
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
