package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/domain/ledger"
	"github.com/rentfolio/backend/internal/domain/shared"
)

var (
	// ErrEventInvalidAmount is returned when the event amount is not a
	// positive number of cents
	ErrEventInvalidAmount = errors.New("payment event: amount must be positive")
	// ErrEventMissingTransactionID is returned when the event carries no
	// stable external transaction identifier
	ErrEventMissingTransactionID = errors.New("payment event: missing external transaction id")
)

// PaymentEvent is a gateway-confirmed payment to apply to the ledger.
// Resolution prefers an explicit payment reference, then lease plus
// period, then the lease's oldest outstanding period.
type PaymentEvent struct {
	PaymentID             *uuid.UUID
	LeaseID               *uuid.UUID
	PeriodStart           *time.Time
	Amount                int64
	ExternalTransactionID string
	OccurredAt            time.Time
}

// PaymentEventResult reports the outcome of applying one event
type PaymentEventResult struct {
	PaymentID        uuid.UUID            `json:"payment_id"`
	LeaseID          uuid.UUID            `json:"lease_id"`
	Applied          bool                 `json:"applied"`
	AlreadyProcessed bool                 `json:"already_processed"`
	Status           ledger.PaymentStatus `json:"status"`
	AmountDue        int64                `json:"amount_due"`
	AmountPaid       int64                `json:"amount_paid"`
}

// PaymentEventService applies gateway-confirmed payment events to the
// ledger idempotently. The advisory idempotency store short-circuits
// replays cheaply; the authoritative duplicate guard is the transaction
// list on the payment row, checked under a row lock.
type PaymentEventService struct {
	paymentRepo      ledger.RentPaymentRepository
	idempotencyStore shared.IdempotencyStore
	idempotencyCfg   shared.IdempotencyConfig
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
}

// PaymentEventServiceConfig holds configuration for the event service
type PaymentEventServiceConfig struct {
	PaymentRepo      ledger.RentPaymentRepository
	IdempotencyStore shared.IdempotencyStore
	Idempotency      *shared.IdempotencyConfig
	EventPublisher   shared.EventPublisher
	Logger           *zap.Logger
}

// NewPaymentEventService creates a new PaymentEventService
func NewPaymentEventService(config PaymentEventServiceConfig) *PaymentEventService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	idempotencyCfg := shared.DefaultIdempotencyConfig()
	if config.Idempotency != nil {
		idempotencyCfg = *config.Idempotency
	}

	return &PaymentEventService{
		paymentRepo:      config.PaymentRepo,
		idempotencyStore: config.IdempotencyStore,
		idempotencyCfg:   idempotencyCfg,
		eventPublisher:   config.EventPublisher,
		logger:           logger,
	}
}

// Process applies one payment event to the ledger. Replaying an event
// with an already-recorded transaction ID succeeds without changing
// state; the result carries AlreadyProcessed so callers can tell.
func (s *PaymentEventService) Process(ctx context.Context, tenantID uuid.UUID, event PaymentEvent) (*PaymentEventResult, error) {
	if event.Amount <= 0 {
		return nil, ErrEventInvalidAmount
	}
	if event.ExternalTransactionID == "" {
		return nil, ErrEventMissingTransactionID
	}
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	payment, err := s.resolvePayment(ctx, tenantID, event)
	if err != nil {
		s.logger.Warn("Payment event could not be resolved",
			zap.String("transaction_id", event.ExternalTransactionID),
			zap.Error(err))
		return nil, err
	}

	// Advisory fast path. Store failures are logged and ignored so a
	// degraded cache never blocks money from landing. A hit alone is not
	// trusted: the mark could outlive a transaction that never committed,
	// so only the ledger row confirming the transaction ID short-circuits.
	if s.idempotencyStore != nil && s.idempotencyCfg.Enabled {
		seen, err := s.idempotencyStore.IsProcessed(ctx, event.ExternalTransactionID)
		switch {
		case err != nil:
			s.logger.Warn("Idempotency store unavailable, falling back to row check",
				zap.String("transaction_id", event.ExternalTransactionID),
				zap.Error(err))
		case seen && payment.HasTransaction(event.ExternalTransactionID):
			s.logger.Info("Payment event already processed (advisory check)",
				zap.String("transaction_id", event.ExternalTransactionID))
			return s.replayResult(payment), nil
		case seen:
			s.logger.Warn("Advisory mark has no ledger record, reapplying",
				zap.String("transaction_id", event.ExternalTransactionID),
				zap.String("payment_id", payment.ID.String()))
		}
	}

	applied := false
	updated, err := s.paymentRepo.UpdateWithLock(ctx, tenantID, payment.ID, func(p *ledger.RentPayment) error {
		var applyErr error
		applied, applyErr = p.ApplyPayment(event.Amount, event.ExternalTransactionID, occurredAt)
		return applyErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply payment event: %w", err)
	}

	// The advisory mark is written only after the transaction committed;
	// a crash before this point leaves no mark for a retry to trip over.
	if s.idempotencyStore != nil && s.idempotencyCfg.Enabled {
		if _, err := s.idempotencyStore.MarkProcessed(ctx, event.ExternalTransactionID, s.idempotencyCfg.TTL); err != nil {
			s.logger.Warn("Failed to record advisory idempotency mark",
				zap.String("transaction_id", event.ExternalTransactionID),
				zap.Error(err))
		}
	}

	if applied {
		s.logger.Info("Payment event applied",
			zap.String("payment_id", updated.ID.String()),
			zap.String("lease_id", updated.LeaseID.String()),
			zap.String("transaction_id", event.ExternalTransactionID),
			zap.Int64("amount", event.Amount),
			zap.String("status", updated.Status.String()))
		s.publishEvents(ctx, updated)
	} else {
		s.logger.Info("Payment event already recorded on ledger row",
			zap.String("payment_id", updated.ID.String()),
			zap.String("transaction_id", event.ExternalTransactionID))
	}

	return &PaymentEventResult{
		PaymentID:        updated.ID,
		LeaseID:          updated.LeaseID,
		Applied:          applied,
		AlreadyProcessed: !applied,
		Status:           updated.Status,
		AmountDue:        updated.AmountDue,
		AmountPaid:       updated.AmountPaid,
	}, nil
}

// resolvePayment locates the ledger record an event refers to
func (s *PaymentEventService) resolvePayment(ctx context.Context, tenantID uuid.UUID, event PaymentEvent) (*ledger.RentPayment, error) {
	switch {
	case event.PaymentID != nil:
		payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, *event.PaymentID)
		if err != nil || payment == nil {
			return nil, ledger.ErrPaymentNotFound
		}
		return payment, nil

	case event.LeaseID != nil && event.PeriodStart != nil:
		payment, err := s.paymentRepo.FindByLeaseAndPeriod(ctx, tenantID, *event.LeaseID, *event.PeriodStart)
		if err != nil || payment == nil {
			return nil, ledger.ErrPaymentNotFound
		}
		return payment, nil

	case event.LeaseID != nil:
		payment, err := s.paymentRepo.FindOldestOutstanding(ctx, tenantID, *event.LeaseID)
		if err != nil || payment == nil {
			return nil, ledger.ErrPaymentNotFound
		}
		return payment, nil

	default:
		return nil, ledger.ErrPaymentNotFound
	}
}

func (s *PaymentEventService) replayResult(payment *ledger.RentPayment) *PaymentEventResult {
	return &PaymentEventResult{
		PaymentID:        payment.ID,
		LeaseID:          payment.LeaseID,
		Applied:          false,
		AlreadyProcessed: true,
		Status:           payment.Status,
		AmountDue:        payment.AmountDue,
		AmountPaid:       payment.AmountPaid,
	}
}

func (s *PaymentEventService) publishEvents(ctx context.Context, payment *ledger.RentPayment) {
	if s.eventPublisher == nil {
		return
	}
	events := payment.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish ledger events",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
	}
	payment.ClearDomainEvents()
}
