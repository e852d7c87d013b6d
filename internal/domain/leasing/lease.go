package leasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// LeaseStatus represents the lifecycle status of a lease
type LeaseStatus string

const (
	LeaseStatusDraft      LeaseStatus = "draft"
	LeaseStatusPending    LeaseStatus = "pending"    // Signed but not yet started
	LeaseStatusActive     LeaseStatus = "active"     // Currently in force
	LeaseStatusExpired    LeaseStatus = "expired"    // Past its end date
	LeaseStatusTerminated LeaseStatus = "terminated" // Ended early
	LeaseStatusRenewed    LeaseStatus = "renewed"    // Superseded by a renewal lease
)

// IsValid checks if the status is a valid LeaseStatus
func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusDraft, LeaseStatusPending, LeaseStatusActive,
		LeaseStatusExpired, LeaseStatusTerminated, LeaseStatusRenewed:
		return true
	}
	return false
}

// String returns the string representation of LeaseStatus
func (s LeaseStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the lease can no longer change status
func (s LeaseStatus) IsTerminal() bool {
	return s == LeaseStatusTerminated || s == LeaseStatusRenewed
}

// CanGenerateSchedule returns true if payment schedules may be generated
// for a lease in this status
func (s LeaseStatus) CanGenerateSchedule() bool {
	return s == LeaseStatusPending || s == LeaseStatusActive
}

// RentRollStatuses are the lease statuses included in rent roll reports
var RentRollStatuses = []LeaseStatus{LeaseStatusActive, LeaseStatusPending, LeaseStatusExpired}

// Lease represents a tenancy agreement aggregate root.
// All monetary amounts are integer minor units (cents).
type Lease struct {
	shared.TenantAggregateRoot
	UnitID           uuid.UUID
	ResidentID       uuid.UUID // The renting tenant's user record
	ResidentName     string    // Denormalized for reporting
	StartDate        time.Time
	EndDate          time.Time
	MonthlyRent      int64
	SecurityDeposit  *int64
	LateFeeAmount    *int64
	LateFeeGraceDays int
	Status           LeaseStatus
}

// NewLease creates a new lease in draft status
func NewLease(
	tenantID uuid.UUID,
	unitID uuid.UUID,
	residentID uuid.UUID,
	residentName string,
	startDate, endDate time.Time,
	monthlyRent int64,
) (*Lease, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident ID cannot be empty")
	}
	if residentName == "" {
		return nil, shared.NewDomainError("INVALID_RESIDENT_NAME", "Resident name cannot be empty")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_LEASE_TERM", "Lease end date must be after start date")
	}
	if monthlyRent <= 0 {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
	}

	return &Lease{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UnitID:              unitID,
		ResidentID:          residentID,
		ResidentName:        residentName,
		StartDate:           startDate,
		EndDate:             endDate,
		MonthlyRent:         monthlyRent,
		Status:              LeaseStatusDraft,
	}, nil
}

// SetLateFeePolicy configures the late fee amount and grace days
func (l *Lease) SetLateFeePolicy(amount int64, graceDays int) error {
	if amount < 0 {
		return shared.NewDomainError("INVALID_LATE_FEE", "Late fee amount cannot be negative")
	}
	if graceDays < 0 {
		return shared.NewDomainError("INVALID_GRACE_DAYS", "Grace days cannot be negative")
	}
	l.LateFeeAmount = &amount
	l.LateFeeGraceDays = graceDays
	l.UpdatedAt = time.Now()
	return nil
}

// SetSecurityDeposit records the security deposit held for the lease.
// The deposit never participates in rent roll balances.
func (l *Lease) SetSecurityDeposit(amount int64) error {
	if amount < 0 {
		return shared.NewDomainError("INVALID_DEPOSIT", "Security deposit cannot be negative")
	}
	l.SecurityDeposit = &amount
	l.UpdatedAt = time.Now()
	return nil
}

// Submit moves a draft lease to pending (signed, awaiting start)
func (l *Lease) Submit() error {
	if l.Status != LeaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit lease in %s status", l.Status))
	}
	l.Status = LeaseStatusPending
	l.touch()
	return nil
}

// Activate marks the lease as in force
func (l *Lease) Activate() error {
	if l.Status != LeaseStatusDraft && l.Status != LeaseStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot activate lease in %s status", l.Status))
	}
	l.Status = LeaseStatusActive
	l.touch()
	l.AddDomainEvent(NewLeaseActivatedEvent(l))
	return nil
}

// MarkExpired marks an active lease as past its end date
func (l *Lease) MarkExpired() error {
	if l.Status != LeaseStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire lease in %s status", l.Status))
	}
	l.Status = LeaseStatusExpired
	l.touch()
	return nil
}

// Terminate ends the lease early
func (l *Lease) Terminate() error {
	if l.Status != LeaseStatusActive && l.Status != LeaseStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot terminate lease in %s status", l.Status))
	}
	l.Status = LeaseStatusTerminated
	l.touch()
	l.AddDomainEvent(NewLeaseTerminatedEvent(l))
	return nil
}

// MarkRenewed marks the lease as superseded by a renewal
func (l *Lease) MarkRenewed() error {
	if l.Status != LeaseStatusActive && l.Status != LeaseStatusExpired {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot renew lease in %s status", l.Status))
	}
	l.Status = LeaseStatusRenewed
	l.touch()
	return nil
}

// ChangeMonthlyRent updates the rent for periods not yet scheduled.
// Already-generated payment records keep their original amountDue.
func (l *Lease) ChangeMonthlyRent(newRent int64) error {
	if newRent <= 0 {
		return shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
	}
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change rent on lease in %s status", l.Status))
	}
	l.MonthlyRent = newRent
	l.touch()
	return nil
}

func (l *Lease) touch() {
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
