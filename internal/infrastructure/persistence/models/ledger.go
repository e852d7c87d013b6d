package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/ledger"
)

// RentPaymentModel is the persistence model for the RentPayment aggregate root.
// One row is one billing period of a lease's payment schedule.
type RentPaymentModel struct {
	TenantAggregateModel
	LeaseID               uuid.UUID                  `gorm:"type:uuid;not null;index;uniqueIndex:idx_payment_lease_period,priority:1"`
	PeriodStart           time.Time                  `gorm:"not null;uniqueIndex:idx_payment_lease_period,priority:2"`
	PeriodEnd             time.Time                  `gorm:"not null"`
	DueDate               time.Time                  `gorm:"not null;index"`
	AmountDue             int64                      `gorm:"not null"`
	AmountPaid            int64                      `gorm:"not null;default:0"`
	LateFeeApplied        *int64                     `gorm:""`
	Status                ledger.PaymentStatus       `gorm:"type:varchar(20);not null;default:'upcoming';index"`
	PaidAt                *time.Time                 `gorm:"index"`
	ExternalTransactionID *string                    `gorm:"type:varchar(255)"`
	LineItems             ledger.PaymentLineItems    `gorm:"type:jsonb;default:'[]'"`
	AppliedTransactions   ledger.AppliedTransactions `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (RentPaymentModel) TableName() string {
	return "rent_payments"
}

// ToDomain converts the persistence model to a domain RentPayment entity.
func (m *RentPaymentModel) ToDomain() *ledger.RentPayment {
	return &ledger.RentPayment{
		TenantAggregateRoot:   m.ToDomainTenantAggregateRoot(),
		LeaseID:               m.LeaseID,
		PeriodStart:           m.PeriodStart,
		PeriodEnd:             m.PeriodEnd,
		DueDate:               m.DueDate,
		AmountDue:             m.AmountDue,
		AmountPaid:            m.AmountPaid,
		LateFeeApplied:        m.LateFeeApplied,
		Status:                m.Status,
		PaidAt:                m.PaidAt,
		ExternalTransactionID: m.ExternalTransactionID,
		LineItems:             m.LineItems,
		AppliedTransactions:   m.AppliedTransactions,
	}
}

// FromDomain populates the persistence model from a domain RentPayment entity.
func (m *RentPaymentModel) FromDomain(p *ledger.RentPayment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.LeaseID = p.LeaseID
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.DueDate = p.DueDate
	m.AmountDue = p.AmountDue
	m.AmountPaid = p.AmountPaid
	m.LateFeeApplied = p.LateFeeApplied
	m.Status = p.Status
	m.PaidAt = p.PaidAt
	m.ExternalTransactionID = p.ExternalTransactionID
	m.LineItems = p.LineItems
	m.AppliedTransactions = p.AppliedTransactions
}

// RentPaymentModelFromDomain creates a new persistence model from a domain RentPayment.
func RentPaymentModelFromDomain(p *ledger.RentPayment) *RentPaymentModel {
	m := &RentPaymentModel{}
	m.FromDomain(p)
	return m
}
