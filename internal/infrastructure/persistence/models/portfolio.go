package models

import (
	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/portfolio"
)

// PropertyModel is the persistence model for the Property aggregate root.
type PropertyModel struct {
	TenantAggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(50)"`
	ZipCode string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *portfolio.Property {
	return &portfolio.Property{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Address:             m.Address,
		City:                m.City,
		State:               m.State,
		ZipCode:             m.ZipCode,
	}
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *portfolio.Property) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.City = p.City
	m.State = p.State
	m.ZipCode = p.ZipCode
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *portfolio.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// UnitModel is the persistence model for the Unit aggregate root.
type UnitModel struct {
	TenantAggregateModel
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_unit_property_number,priority:1"`
	UnitNumber string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_unit_property_number,priority:2"`
	Bedrooms   int       `gorm:"not null;default:0"`
	Bathrooms  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit entity.
func (m *UnitModel) ToDomain() *portfolio.Unit {
	return &portfolio.Unit{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		PropertyID:          m.PropertyID,
		UnitNumber:          m.UnitNumber,
		Bedrooms:            m.Bedrooms,
		Bathrooms:           m.Bathrooms,
	}
}

// FromDomain populates the persistence model from a domain Unit entity.
func (m *UnitModel) FromDomain(u *portfolio.Unit) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.PropertyID = u.PropertyID
	m.UnitNumber = u.UnitNumber
	m.Bedrooms = u.Bedrooms
	m.Bathrooms = u.Bathrooms
}

// UnitModelFromDomain creates a new persistence model from a domain Unit.
func UnitModelFromDomain(u *portfolio.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// PropertyManagerAssignmentModel is the persistence model for the
// PropertyManagerAssignment aggregate root.
type PropertyManagerAssignmentModel struct {
	TenantAggregateModel
	PropertyID      uuid.UUID                  `gorm:"type:uuid;not null;index"`
	ManagerID       uuid.UUID                  `gorm:"type:uuid;not null;index"`
	SplitPercentage int                        `gorm:"not null;default:0"`
	Status          portfolio.AssignmentStatus `gorm:"type:varchar(20);not null;default:'proposed';index"`
}

// TableName returns the table name for GORM
func (PropertyManagerAssignmentModel) TableName() string {
	return "property_manager_assignments"
}

// ToDomain converts the persistence model to a domain PropertyManagerAssignment entity.
func (m *PropertyManagerAssignmentModel) ToDomain() *portfolio.PropertyManagerAssignment {
	return &portfolio.PropertyManagerAssignment{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		PropertyID:          m.PropertyID,
		ManagerID:           m.ManagerID,
		SplitPercentage:     m.SplitPercentage,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain PropertyManagerAssignment entity.
func (m *PropertyManagerAssignmentModel) FromDomain(a *portfolio.PropertyManagerAssignment) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.PropertyID = a.PropertyID
	m.ManagerID = a.ManagerID
	m.SplitPercentage = a.SplitPercentage
	m.Status = a.Status
}

// PropertyManagerAssignmentModelFromDomain creates a new persistence model
// from a domain PropertyManagerAssignment.
func PropertyManagerAssignmentModelFromDomain(a *portfolio.PropertyManagerAssignment) *PropertyManagerAssignmentModel {
	m := &PropertyManagerAssignmentModel{}
	m.FromDomain(a)
	return m
}
