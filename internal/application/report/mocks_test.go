package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/ledger"
	"github.com/rentfolio/backend/internal/domain/portfolio"
	"github.com/rentfolio/backend/internal/domain/report"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockRentRollRepository is a mock implementation of report.RentRollRepository
type MockRentRollRepository struct {
	mock.Mock
}

func (m *MockRentRollRepository) FindLeases(ctx context.Context, tenantID uuid.UUID, statuses []leasing.LeaseStatus, propertyID *uuid.UUID) ([]report.RentRollLease, error) {
	args := m.Called(ctx, tenantID, statuses, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.RentRollLease), args.Error(1)
}

// MockLeaseChargeRepository is a mock implementation of leasing.LeaseChargeRepository
type MockLeaseChargeRepository struct {
	mock.Mock
}

func (m *MockLeaseChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.LeaseCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.LeaseCharge), args.Error(1)
}

func (m *MockLeaseChargeRepository) FindByLease(ctx context.Context, tenantID, leaseID uuid.UUID) ([]leasing.LeaseCharge, error) {
	args := m.Called(ctx, tenantID, leaseID)
	return args.Get(0).([]leasing.LeaseCharge), args.Error(1)
}

func (m *MockLeaseChargeRepository) FindActiveByLeaseIDs(ctx context.Context, tenantID uuid.UUID, leaseIDs []uuid.UUID) ([]leasing.LeaseCharge, error) {
	args := m.Called(ctx, tenantID, leaseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leasing.LeaseCharge), args.Error(1)
}

func (m *MockLeaseChargeRepository) Save(ctx context.Context, charge *leasing.LeaseCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockLeaseChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
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
	return args.Get(0).([]ledger.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindUpcomingDueBy(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]ledger.RentPayment, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).([]ledger.RentPayment), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of portfolio.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.PropertyManagerAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.PropertyManagerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*portfolio.PropertyManagerAssignment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.PropertyManagerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAcceptedByManager(ctx context.Context, tenantID, managerID uuid.UUID) ([]portfolio.PropertyManagerAssignment, error) {
	args := m.Called(ctx, tenantID, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portfolio.PropertyManagerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]portfolio.PropertyManagerAssignment, error) {
	args := m.Called(ctx, tenantID, propertyID)
	return args.Get(0).([]portfolio.PropertyManagerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *portfolio.PropertyManagerAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRevenueReportRepository is a mock implementation of report.RevenueReportRepository
type MockRevenueReportRepository struct {
	mock.Mock
}

func (m *MockRevenueReportRepository) CollectedByProperty(ctx context.Context, tenantID uuid.UUID, propertyIDs []uuid.UUID) ([]report.PropertyCollected, error) {
	args := m.Called(ctx, tenantID, propertyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.PropertyCollected), args.Error(1)
}

func (m *MockRevenueReportRepository) CollectedPaymentsForYear(ctx context.Context, tenantID uuid.UUID, propertyIDs []uuid.UUID, year int) ([]report.CollectedPayment, error) {
	args := m.Called(ctx, tenantID, propertyIDs, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.CollectedPayment), args.Error(1)
}
