package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/ledger"
	"github.com/rentfolio/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockLeaseRepository is a mock implementation of leasing.LeaseRepository
type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]leasing.Lease, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByStatuses(ctx context.Context, tenantID uuid.UUID, statuses []leasing.LeaseStatus) ([]leasing.Lease, error) {
	args := m.Called(ctx, tenantID, statuses)
	return args.Get(0).([]leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID) ([]leasing.Lease, error) {
	args := m.Called(ctx, tenantID, unitID)
	return args.Get(0).([]leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Save(ctx context.Context, lease *leasing.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) SaveWithLock(ctx context.Context, lease *leasing.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRentPaymentRepository is a mock implementation of ledger.RentPaymentRepository
type MockRentPaymentRepository struct {
	mock.Mock
}

func (m *MockRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.RentPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindByLease(ctx context.Context, tenantID, leaseID uuid.UUID) ([]ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, leaseID)
	return args.Get(0).([]ledger.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindByLeaseAndPeriod(ctx context.Context, tenantID, leaseID uuid.UUID, periodStart time.Time) (*ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, leaseID, periodStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindOldestOutstanding(ctx context.Context, tenantID, leaseID uuid.UUID) (*ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) ExistingPeriodStarts(ctx context.Context, tenantID, leaseID uuid.UUID) ([]time.Time, error) {
	args := m.Called(ctx, tenantID, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockRentPaymentRepository) SaveAll(ctx context.Context, payments []*ledger.RentPayment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) Save(ctx context.Context, payment *ledger.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) SaveWithLock(ctx context.Context, payment *ledger.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) UpdateWithLock(ctx context.Context, tenantID, id uuid.UUID, fn func(*ledger.RentPayment) error) (*ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	payment := args.Get(0).(*ledger.RentPayment)
	if err := fn(payment); err != nil {
		return nil, err
	}
	return payment, args.Error(1)
}

func (m *MockRentPaymentRepository) TotalsByLeaseIDs(ctx context.Context, tenantID uuid.UUID, leaseIDs []uuid.UUID) (map[uuid.UUID]ledger.PaymentTotals, error) {
	args := m.Called(ctx, tenantID, leaseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]ledger.PaymentTotals), args.Error(1)
}

func (m *MockRentPaymentRepository) FindDueOrPartialBefore(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindUpcomingDueBy(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.RentPayment), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, transactionID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, transactionID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
