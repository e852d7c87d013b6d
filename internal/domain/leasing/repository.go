package leasing

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// LeaseRepository defines persistence operations for leases
type LeaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lease, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lease, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lease, error)
	FindByStatuses(ctx context.Context, tenantID uuid.UUID, statuses []LeaseStatus) ([]Lease, error)
	FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID) ([]Lease, error)
	Save(ctx context.Context, lease *Lease) error
	// SaveWithLock saves using optimistic locking on the version column
	SaveWithLock(ctx context.Context, lease *Lease) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeaseChargeRepository defines persistence operations for lease charges
type LeaseChargeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LeaseCharge, error)
	FindByLease(ctx context.Context, tenantID, leaseID uuid.UUID) ([]LeaseCharge, error)
	// FindActiveByLeaseIDs batch-fetches all active charges for a set of
	// leases in a single query. Used by the rent roll aggregator.
	FindActiveByLeaseIDs(ctx context.Context, tenantID uuid.UUID, leaseIDs []uuid.UUID) ([]LeaseCharge, error)
	Save(ctx context.Context, charge *LeaseCharge) error
	Delete(ctx context.Context, id uuid.UUID) error
}
