package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// RentPaymentReceivedEvent is raised each time money is applied to a
// scheduled payment
type RentPaymentReceivedEvent struct {
	shared.BaseDomainEvent
	PaymentID             uuid.UUID     `json:"payment_id"`
	LeaseID               uuid.UUID     `json:"lease_id"`
	Amount                int64         `json:"amount"`
	AmountPaid            int64         `json:"amount_paid"`
	AmountDue             int64         `json:"amount_due"`
	Status                PaymentStatus `json:"status"`
	ExternalTransactionID string        `json:"external_transaction_id,omitempty"`
}

// EventType returns the event type name
func (e *RentPaymentReceivedEvent) EventType() string {
	return "RentPaymentReceived"
}

// NewRentPaymentReceivedEvent creates a new RentPaymentReceivedEvent
func NewRentPaymentReceivedEvent(p *RentPayment, amount int64, transactionID string) *RentPaymentReceivedEvent {
	return &RentPaymentReceivedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent("RentPaymentReceived", "RentPayment", p.ID, p.TenantID),
		PaymentID:             p.ID,
		LeaseID:               p.LeaseID,
		Amount:                amount,
		AmountPaid:            p.AmountPaid,
		AmountDue:             p.AmountDue,
		Status:                p.Status,
		ExternalTransactionID: transactionID,
	}
}

// RentPaymentSettledEvent is raised when a payment first becomes fully
// covered
type RentPaymentSettledEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID `json:"payment_id"`
	LeaseID   uuid.UUID `json:"lease_id"`
	AmountDue int64     `json:"amount_due"`
	PaidAt    time.Time `json:"paid_at"`
}

// EventType returns the event type name
func (e *RentPaymentSettledEvent) EventType() string {
	return "RentPaymentSettled"
}

// NewRentPaymentSettledEvent creates a new RentPaymentSettledEvent
func NewRentPaymentSettledEvent(p *RentPayment) *RentPaymentSettledEvent {
	paidAt := time.Now()
	if p.PaidAt != nil {
		paidAt = *p.PaidAt
	}
	return &RentPaymentSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RentPaymentSettled", "RentPayment", p.ID, p.TenantID),
		PaymentID:       p.ID,
		LeaseID:         p.LeaseID,
		AmountDue:       p.AmountDue,
		PaidAt:          paidAt,
	}
}

// PaymentScheduleGeneratedEvent is raised after a lease's schedule is
// generated or back-filled
type PaymentScheduleGeneratedEvent struct {
	shared.BaseDomainEvent
	LeaseID      uuid.UUID `json:"lease_id"`
	PeriodCount  int       `json:"period_count"`
	FirstPeriod  time.Time `json:"first_period"`
	LastPeriod   time.Time `json:"last_period"`
	TotalAmount  int64     `json:"total_amount"`
}

// EventType returns the event type name
func (e *PaymentScheduleGeneratedEvent) EventType() string {
	return "PaymentScheduleGenerated"
}

// NewPaymentScheduleGeneratedEvent creates a new PaymentScheduleGeneratedEvent
func NewPaymentScheduleGeneratedEvent(tenantID, leaseID uuid.UUID, payments []*RentPayment) *PaymentScheduleGeneratedEvent {
	ev := &PaymentScheduleGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentScheduleGenerated", "Lease", leaseID, tenantID),
		LeaseID:         leaseID,
		PeriodCount:     len(payments),
	}
	for i, p := range payments {
		if i == 0 {
			ev.FirstPeriod = p.PeriodStart
		}
		ev.LastPeriod = p.PeriodStart
		ev.TotalAmount += p.AmountDue
	}
	return ev
}
