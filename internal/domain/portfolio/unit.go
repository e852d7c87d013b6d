package portfolio

import (
	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// Unit represents a rentable unit within a property
type Unit struct {
	shared.TenantAggregateRoot
	PropertyID uuid.UUID
	UnitNumber string
	Bedrooms   int
	Bathrooms  int
}

// NewUnit creates a new unit
func NewUnit(tenantID, propertyID uuid.UUID, unitNumber string, bedrooms, bathrooms int) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if unitNumber == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot be empty")
	}
	if bedrooms < 0 || bathrooms < 0 {
		return nil, shared.NewDomainError("INVALID_ROOMS", "Room counts cannot be negative")
	}

	return &Unit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		UnitNumber:          unitNumber,
		Bedrooms:            bedrooms,
		Bathrooms:           bathrooms,
	}, nil
}
