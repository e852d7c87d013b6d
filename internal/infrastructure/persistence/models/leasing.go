package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/leasing"
)

// LeaseModel is the persistence model for the Lease aggregate root.
type LeaseModel struct {
	TenantAggregateModel
	UnitID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	ResidentID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	ResidentName     string              `gorm:"type:varchar(200);not null"`
	StartDate        time.Time           `gorm:"not null"`
	EndDate          time.Time           `gorm:"not null"`
	MonthlyRent      int64               `gorm:"not null"`
	SecurityDeposit  *int64              `gorm:""`
	LateFeeAmount    *int64              `gorm:""`
	LateFeeGraceDays int                 `gorm:"not null;default:0"`
	Status           leasing.LeaseStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the persistence model to a domain Lease entity.
func (m *LeaseModel) ToDomain() *leasing.Lease {
	return &leasing.Lease{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		UnitID:              m.UnitID,
		ResidentID:          m.ResidentID,
		ResidentName:        m.ResidentName,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		MonthlyRent:         m.MonthlyRent,
		SecurityDeposit:     m.SecurityDeposit,
		LateFeeAmount:       m.LateFeeAmount,
		LateFeeGraceDays:    m.LateFeeGraceDays,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Lease entity.
func (m *LeaseModel) FromDomain(l *leasing.Lease) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.UnitID = l.UnitID
	m.ResidentID = l.ResidentID
	m.ResidentName = l.ResidentName
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.MonthlyRent = l.MonthlyRent
	m.SecurityDeposit = l.SecurityDeposit
	m.LateFeeAmount = l.LateFeeAmount
	m.LateFeeGraceDays = l.LateFeeGraceDays
	m.Status = l.Status
}

// LeaseModelFromDomain creates a new persistence model from a domain Lease.
func LeaseModelFromDomain(l *leasing.Lease) *LeaseModel {
	m := &LeaseModel{}
	m.FromDomain(l)
	return m
}

// LeaseChargeModel is the persistence model for the LeaseCharge aggregate root.
type LeaseChargeModel struct {
	TenantAggregateModel
	LeaseID         uuid.UUID                `gorm:"type:uuid;not null;index"`
	Category        leasing.ChargeCategory   `gorm:"type:varchar(20);not null;index"`
	Name            string                   `gorm:"type:varchar(200);not null"`
	AmountType      leasing.ChargeAmountType `gorm:"type:varchar(20);not null"`
	FixedAmount     *int64                   `gorm:""`
	EstimatedAmount *int64                   `gorm:""`
	IsActive        bool                     `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (LeaseChargeModel) TableName() string {
	return "lease_charges"
}

// ToDomain converts the persistence model to a domain LeaseCharge entity.
func (m *LeaseChargeModel) ToDomain() *leasing.LeaseCharge {
	return &leasing.LeaseCharge{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		LeaseID:             m.LeaseID,
		Category:            m.Category,
		Name:                m.Name,
		AmountType:          m.AmountType,
		FixedAmount:         m.FixedAmount,
		EstimatedAmount:     m.EstimatedAmount,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain LeaseCharge entity.
func (m *LeaseChargeModel) FromDomain(c *leasing.LeaseCharge) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.LeaseID = c.LeaseID
	m.Category = c.Category
	m.Name = c.Name
	m.AmountType = c.AmountType
	m.FixedAmount = c.FixedAmount
	m.EstimatedAmount = c.EstimatedAmount
	m.IsActive = c.IsActive
}

// LeaseChargeModelFromDomain creates a new persistence model from a domain LeaseCharge.
func LeaseChargeModelFromDomain(c *leasing.LeaseCharge) *LeaseChargeModel {
	m := &LeaseChargeModel{}
	m.FromDomain(c)
	return m
}
