package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/ledger"
	"github.com/rentfolio/backend/internal/domain/shared"
)

var (
	// ErrScheduleLeaseNotFound is returned when the lease for schedule
	// generation cannot be resolved
	ErrScheduleLeaseNotFound = errors.New("payment schedule: lease not found")
	// ErrScheduleLeaseNotEligible is returned when the lease status does
	// not allow schedule generation
	ErrScheduleLeaseNotEligible = errors.New("payment schedule: lease not eligible for generation")
)

// ScheduleResult summarizes one generation run for a lease
type ScheduleResult struct {
	LeaseID uuid.UUID `json:"lease_id"`
	Created int       `json:"created"`
	Skipped int       `json:"skipped"` // Periods that were already scheduled
}

// ScheduleService generates and maintains the payment schedule for
// leases. Generation is idempotent: periods already scheduled are
// skipped, so re-invoking for the same lease only fills gaps.
type ScheduleService struct {
	leaseRepo      leasing.LeaseRepository
	paymentRepo    ledger.RentPaymentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// ScheduleServiceConfig holds configuration for the schedule service
type ScheduleServiceConfig struct {
	LeaseRepo      leasing.LeaseRepository
	PaymentRepo    ledger.RentPaymentRepository
	EventPublisher shared.EventPublisher
	Logger         *zap.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(config ScheduleServiceConfig) *ScheduleService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ScheduleService{
		leaseRepo:      config.LeaseRepo,
		paymentRepo:    config.PaymentRepo,
		eventPublisher: config.EventPublisher,
		logger:         logger,
	}
}

// GenerateForLease derives the monthly payment schedule for a lease and
// persists the periods that do not exist yet. Nothing is written when
// the derived term is invalid.
func (s *ScheduleService) GenerateForLease(ctx context.Context, tenantID, leaseID uuid.UUID) (*ScheduleResult, error) {
	lease, err := s.leaseRepo.FindByIDForTenant(ctx, tenantID, leaseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleLeaseNotFound, err)
	}
	if lease == nil {
		return nil, ErrScheduleLeaseNotFound
	}
	if !lease.Status.CanGenerateSchedule() {
		return nil, fmt.Errorf("%w: lease is %s", ErrScheduleLeaseNotEligible, lease.Status)
	}

	payments, err := ledger.GenerateSchedule(lease)
	if err != nil {
		return nil, err
	}

	existing, err := s.paymentRepo.ExistingPeriodStarts(ctx, tenantID, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing schedule: %w", err)
	}
	scheduled := make(map[string]struct{}, len(existing))
	for _, start := range existing {
		scheduled[periodKey(start)] = struct{}{}
	}

	var missing []*ledger.RentPayment
	for _, p := range payments {
		if _, ok := scheduled[periodKey(p.PeriodStart)]; ok {
			continue
		}
		missing = append(missing, p)
	}

	result := &ScheduleResult{
		LeaseID: leaseID,
		Created: len(missing),
		Skipped: len(payments) - len(missing),
	}

	if len(missing) == 0 {
		s.logger.Info("Payment schedule already complete",
			zap.String("lease_id", leaseID.String()),
			zap.Int("periods", len(payments)))
		return result, nil
	}

	if err := s.paymentRepo.SaveAll(ctx, missing); err != nil {
		return nil, fmt.Errorf("failed to persist payment schedule: %w", err)
	}

	s.logger.Info("Payment schedule generated",
		zap.String("lease_id", leaseID.String()),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	s.publish(ctx, ledger.NewPaymentScheduleGeneratedEvent(tenantID, leaseID, missing))
	return result, nil
}

// MarkDuePayments sweeps upcoming payments whose due date has arrived
// and transitions them to due. Returns the number of payments updated.
func (s *ScheduleService) MarkDuePayments(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error) {
	payments, err := s.paymentRepo.FindUpcomingDueBy(ctx, tenantID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to load upcoming payments: %w", err)
	}

	updated := 0
	for i := range payments {
		p := &payments[i]
		if !p.MarkDue(asOf) {
			continue
		}
		if err := s.paymentRepo.SaveWithLock(ctx, p); err != nil {
			return updated, fmt.Errorf("failed to mark payment %s due: %w", p.ID, err)
		}
		updated++
	}
	return updated, nil
}

// MarkLatePayments sweeps due and partial payments past their lease's
// grace window and transitions them to late, applying the lease's late
// fee on first transition. Returns the number of payments updated.
func (s *ScheduleService) MarkLatePayments(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error) {
	payments, err := s.paymentRepo.FindDueOrPartialBefore(ctx, tenantID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to load overdue candidates: %w", err)
	}

	leases := make(map[uuid.UUID]*leasing.Lease)
	updated := 0
	for i := range payments {
		p := &payments[i]

		lease, ok := leases[p.LeaseID]
		if !ok {
			lease, err = s.leaseRepo.FindByIDForTenant(ctx, tenantID, p.LeaseID)
			if err != nil {
				s.logger.Warn("Skipping late sweep for unresolvable lease",
					zap.String("lease_id", p.LeaseID.String()),
					zap.Error(err))
				continue
			}
			leases[p.LeaseID] = lease
		}

		marked, err := p.MarkLate(asOf, lease.LateFeeGraceDays, lease.LateFeeAmount)
		if err != nil {
			return updated, err
		}
		if !marked {
			continue
		}
		if err := s.paymentRepo.SaveWithLock(ctx, p); err != nil {
			return updated, fmt.Errorf("failed to mark payment %s late: %w", p.ID, err)
		}
		updated++
	}
	return updated, nil
}

func (s *ScheduleService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish domain event",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
}

// periodKey normalizes a period start to a calendar-month key so that
// timezone or clock drift in stored dates cannot cause duplicates
func periodKey(t time.Time) string {
	return t.Format("2006-01")
}
