package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/leasing"
)

// ChargeLine is one recurring charge on a rent-roll row. Amounts are
// integer cents.
type ChargeLine struct {
	Category string `json:"category"` // rent, utility, fee, other
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	IsActive bool   `json:"is_active"`
}

// RentRollEntry is the read model for one lease on the rent roll. Exactly
// one rent-category line appears per entry; when the lease carries no
// explicit rent charge the aggregator synthesizes one from monthly rent.
type RentRollEntry struct {
	LeaseID             uuid.UUID    `json:"lease_id"`
	PropertyID          uuid.UUID    `json:"property_id"`
	PropertyName        string       `json:"property_name"`
	UnitID              uuid.UUID    `json:"unit_id"`
	UnitNumber          string       `json:"unit_number"`
	ResidentID          uuid.UUID    `json:"resident_id"`
	ResidentName        string       `json:"resident_name"`
	LeaseStatus         string       `json:"lease_status"`
	MonthlyRent         int64        `json:"monthly_rent"`
	Charges             []ChargeLine `json:"charges"`
	TotalMonthlyCharges int64        `json:"total_monthly_charges"`
	CurrentBalance      int64        `json:"current_balance"`
}

// RentRollFilter defines filtering options for the rent roll
type RentRollFilter struct {
	TenantID   uuid.UUID  `json:"-"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
}

// RentRollLease is one lease row of the rent roll's first batch query,
// joined with its unit and property
type RentRollLease struct {
	LeaseID      uuid.UUID
	PropertyID   uuid.UUID
	PropertyName string
	UnitID       uuid.UUID
	UnitNumber   string
	ResidentID   uuid.UUID
	ResidentName string
	LeaseStatus  leasing.LeaseStatus
	MonthlyRent  int64
}

// RentRollRepository defines the joined lease query that feeds the rent
// roll aggregator. Charges and payment totals come from their own
// repositories; the aggregator must issue exactly these three queries.
type RentRollRepository interface {
	FindLeases(ctx context.Context, tenantID uuid.UUID, statuses []leasing.LeaseStatus, propertyID *uuid.UUID) ([]RentRollLease, error)
}
