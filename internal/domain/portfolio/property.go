package portfolio

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// Property represents a building or complex managed by an organization
type Property struct {
	shared.TenantAggregateRoot
	Name    string
	Address string
	City    string
	State   string
	ZipCode string
}

// NewProperty creates a new property
func NewProperty(tenantID uuid.UUID, name, address, city, state, zipCode string) (*Property, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}

	return &Property{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Address:             address,
		City:                city,
		State:               state,
		ZipCode:             zipCode,
	}, nil
}

// Rename changes the property's display name
func (p *Property) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
