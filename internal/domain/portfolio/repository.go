package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// PropertyRepository defines persistence operations for properties
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Property, error)
	Save(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository defines persistence operations for units
type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Unit, error)
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]Unit, error)
	Save(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssignmentRepository defines persistence operations for property
// manager assignments
type AssignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyManagerAssignment, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PropertyManagerAssignment, error)
	// FindAcceptedByManager returns the manager's accepted assignments;
	// these are the only ones the revenue split calculator consumes
	FindAcceptedByManager(ctx context.Context, tenantID, managerID uuid.UUID) ([]PropertyManagerAssignment, error)
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]PropertyManagerAssignment, error)
	Save(ctx context.Context, assignment *PropertyManagerAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
