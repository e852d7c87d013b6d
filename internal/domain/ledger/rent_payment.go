package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// PaymentStatus represents the status of a scheduled rent payment
type PaymentStatus string

const (
	PaymentStatusUpcoming PaymentStatus = "upcoming" // Scheduled, not yet due
	PaymentStatusDue      PaymentStatus = "due"      // Due date reached, nothing received
	PaymentStatusPartial  PaymentStatus = "partial"  // Some money received, balance remains
	PaymentStatusPaid     PaymentStatus = "paid"     // Fully covered
	PaymentStatusLate     PaymentStatus = "late"     // Past due date plus grace, balance remains
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUpcoming, PaymentStatusDue, PaymentStatusPartial,
		PaymentStatusPaid, PaymentStatusLate:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsSettled returns true if the payment is fully covered
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid
}

// CanApplyPayment returns true if money can still be applied
func (s PaymentStatus) CanApplyPayment() bool {
	return s != PaymentStatusPaid
}

// Domain errors surfaced by the ledger
var (
	// ErrInvalidLeaseTerm is returned when schedule generation is requested
	// for a lease whose end date is not after its start date
	ErrInvalidLeaseTerm = shared.NewDomainError("INVALID_LEASE_TERM", "Lease end date must be after start date")
	// ErrPaymentNotFound is returned when a payment event cannot be
	// resolved to a ledger record
	ErrPaymentNotFound = shared.NewDomainError("PAYMENT_NOT_FOUND", "Rent payment not found for event")
)

// RentPayment is one billing period of a lease's payment schedule.
// It is the only ledger record mutated by payment events. All amounts
// are integer minor units (cents).
type RentPayment struct {
	shared.TenantAggregateRoot
	LeaseID               uuid.UUID
	PeriodStart           time.Time
	PeriodEnd             time.Time
	DueDate               time.Time
	AmountDue             int64
	AmountPaid            int64
	LateFeeApplied        *int64
	Status                PaymentStatus
	PaidAt                *time.Time
	ExternalTransactionID *string // Most recent gateway transaction applied
	LineItems             PaymentLineItems
	AppliedTransactions   AppliedTransactions
}

// NewRentPayment creates a scheduled payment record for one billing period
func NewRentPayment(
	tenantID, leaseID uuid.UUID,
	periodStart, periodEnd, dueDate time.Time,
	amountDue int64,
) (*RentPayment, error) {
	if leaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease ID cannot be empty")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot precede period start")
	}
	if amountDue < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount due cannot be negative")
	}

	return &RentPayment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LeaseID:             leaseID,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		DueDate:             dueDate,
		AmountDue:           amountDue,
		AmountPaid:          0,
		Status:              PaymentStatusUpcoming,
		LineItems:           PaymentLineItems{},
		AppliedTransactions: AppliedTransactions{},
	}, nil
}

// Balance returns the unpaid remainder for this period. It can be
// negative when the period was overpaid.
func (p *RentPayment) Balance() int64 {
	return p.AmountDue - p.AmountPaid
}

// HasTransaction reports whether the external transaction ID has already
// been applied to this payment. Used for idempotent webhook replay.
func (p *RentPayment) HasTransaction(transactionID string) bool {
	if transactionID == "" {
		return false
	}
	for i := range p.AppliedTransactions {
		if p.AppliedTransactions[i].TransactionID == transactionID {
			return true
		}
	}
	return false
}

// ApplyPayment applies a gateway-confirmed increment to the payment.
// Replaying an already-recorded transaction ID is a no-op that returns
// applied=false with no error. AmountPaid only ever increases here.
func (p *RentPayment) ApplyPayment(increment int64, transactionID string, occurredAt time.Time) (applied bool, err error) {
	if p.HasTransaction(transactionID) {
		return false, nil
	}
	if increment <= 0 {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Payment increment must be positive")
	}

	p.AmountPaid += increment
	if transactionID != "" {
		p.AppliedTransactions = append(p.AppliedTransactions, AppliedTransaction{
			TransactionID: transactionID,
			Amount:        increment,
			AppliedAt:     occurredAt,
		})
		txID := transactionID
		p.ExternalTransactionID = &txID
	}

	p.LineItems.Allocate(increment)

	wasSettled := p.Status.IsSettled()
	if p.AmountPaid >= p.AmountDue {
		p.Status = PaymentStatusPaid
		if p.PaidAt == nil {
			paidAt := occurredAt
			p.PaidAt = &paidAt
		}
	} else if p.Status != PaymentStatusLate {
		// A late period stays late until fully covered
		p.Status = PaymentStatusPartial
	}

	p.AddDomainEvent(NewRentPaymentReceivedEvent(p, increment, transactionID))
	if p.Status.IsSettled() && !wasSettled {
		p.AddDomainEvent(NewRentPaymentSettledEvent(p))
	}

	p.touch()
	return true, nil
}

// MarkDue transitions an upcoming payment to due once its due date has
// arrived. No-op for any other status.
func (p *RentPayment) MarkDue(now time.Time) bool {
	if p.Status != PaymentStatusUpcoming {
		return false
	}
	if now.Before(p.DueDate) {
		return false
	}
	p.Status = PaymentStatusDue
	p.touch()
	return true
}

// MarkLate transitions a due or partial payment to late once the due
// date plus the lease's grace days has passed. An optional late fee is
// added to the amount due the first time the period goes late.
func (p *RentPayment) MarkLate(now time.Time, graceDays int, lateFee *int64) (bool, error) {
	if p.Status != PaymentStatusDue && p.Status != PaymentStatusPartial {
		return false, nil
	}
	cutoff := p.DueDate.AddDate(0, 0, graceDays)
	if !now.After(cutoff) {
		return false, nil
	}
	if lateFee != nil && *lateFee < 0 {
		return false, shared.NewDomainError("INVALID_LATE_FEE", "Late fee cannot be negative")
	}

	p.Status = PaymentStatusLate
	if lateFee != nil && *lateFee > 0 && p.LateFeeApplied == nil {
		fee := *lateFee
		p.LateFeeApplied = &fee
		p.AmountDue += fee
		p.LineItems.AddLateFee(fee)
	}
	p.touch()
	return true, nil
}

// SetLineItems replaces the per-category breakdown of the amount due.
// The line item total must match the payment's amount due.
func (p *RentPayment) SetLineItems(items PaymentLineItems) error {
	var total int64
	for i := range items {
		if items[i].AmountDue < 0 {
			return shared.NewDomainError("INVALID_LINE_ITEM", "Line item amount due cannot be negative")
		}
		total += items[i].AmountDue
	}
	if len(items) > 0 && total != p.AmountDue {
		return shared.NewDomainError("INVALID_LINE_ITEMS",
			fmt.Sprintf("Line items total %d does not match amount due %d", total, p.AmountDue))
	}
	p.LineItems = items
	p.touch()
	return nil
}

func (p *RentPayment) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
