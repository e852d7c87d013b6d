package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentTotals holds the grouped due/paid sums for one lease across all
// of its scheduled payments
type PaymentTotals struct {
	AmountDue  int64
	AmountPaid int64
}

// Balance returns the lease's running balance
func (t PaymentTotals) Balance() int64 {
	return t.AmountDue - t.AmountPaid
}

// RentPaymentRepository defines persistence operations for the payment
// ledger
type RentPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentPayment, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RentPayment, error)
	FindByLease(ctx context.Context, tenantID, leaseID uuid.UUID) ([]RentPayment, error)
	// FindByLeaseAndPeriod resolves the payment covering the period that
	// starts on the given date
	FindByLeaseAndPeriod(ctx context.Context, tenantID, leaseID uuid.UUID, periodStart time.Time) (*RentPayment, error)
	// FindOldestOutstanding returns the lease's earliest period with an
	// unpaid balance, used when an event resolves only to a lease
	FindOldestOutstanding(ctx context.Context, tenantID, leaseID uuid.UUID) (*RentPayment, error)
	// ExistingPeriodStarts lists the period start dates already scheduled
	// for a lease, so re-generation can fill gaps without duplicating
	ExistingPeriodStarts(ctx context.Context, tenantID, leaseID uuid.UUID) ([]time.Time, error)
	// SaveAll inserts a batch of scheduled payments in one transaction
	SaveAll(ctx context.Context, payments []*RentPayment) error
	Save(ctx context.Context, payment *RentPayment) error
	// SaveWithLock saves using optimistic locking on the version column
	SaveWithLock(ctx context.Context, payment *RentPayment) error
	// UpdateWithLock loads the payment inside a database transaction with
	// the row locked, applies fn, and persists the result. The
	// check-then-apply sequence for duplicate events must run through
	// this method so concurrent webhook deliveries serialize.
	UpdateWithLock(ctx context.Context, tenantID, id uuid.UUID, fn func(*RentPayment) error) (*RentPayment, error)
	// TotalsByLeaseIDs batch-fetches SUM(amount_due) and SUM(amount_paid)
	// grouped by lease for the given lease set, in a single query
	TotalsByLeaseIDs(ctx context.Context, tenantID uuid.UUID, leaseIDs []uuid.UUID) (map[uuid.UUID]PaymentTotals, error)
	// FindDueOrPartialBefore returns payments in due or partial status
	// whose due date falls on or before the cutoff, for the late sweep
	FindDueOrPartialBefore(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]RentPayment, error)
	// FindUpcomingDueBy returns upcoming payments whose due date has
	// arrived, for the due sweep
	FindUpcomingDueBy(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]RentPayment, error)
}
