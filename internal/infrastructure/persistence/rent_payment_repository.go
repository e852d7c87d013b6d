package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rentfolio/backend/internal/domain/ledger"
	"github.com/rentfolio/backend/internal/domain/shared"
	"github.com/rentfolio/backend/internal/infrastructure/persistence/models"
)

// GormRentPaymentRepository implements RentPaymentRepository using GORM
type GormRentPaymentRepository struct {
	db *gorm.DB
}

// NewGormRentPaymentRepository creates a new GormRentPaymentRepository
func NewGormRentPaymentRepository(db *gorm.DB) *GormRentPaymentRepository {
	return &GormRentPaymentRepository{db: db}
}

// FindByID finds a rent payment by its ID
func (r *GormRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a rent payment by ID within a tenant
func (r *GormRentPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLease finds all scheduled payments for a lease ordered by period
func (r *GormRentPaymentRepository) FindByLease(ctx context.Context, tenantID, leaseID uuid.UUID) ([]ledger.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lease_id = ?", tenantID, leaseID).
		Order("period_start ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByLeaseAndPeriod resolves the payment covering the period that
// starts on the given date
func (r *GormRentPaymentRepository) FindByLeaseAndPeriod(ctx context.Context, tenantID, leaseID uuid.UUID, periodStart time.Time) (*ledger.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lease_id = ? AND period_start = ?", tenantID, leaseID, periodStart).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOldestOutstanding returns the lease's earliest period with an
// unpaid balance
func (r *GormRentPaymentRepository) FindOldestOutstanding(ctx context.Context, tenantID, leaseID uuid.UUID) (*ledger.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lease_id = ? AND amount_paid < amount_due", tenantID, leaseID).
		Order("period_start ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistingPeriodStarts lists the period start dates already scheduled
// for a lease
func (r *GormRentPaymentRepository) ExistingPeriodStarts(ctx context.Context, tenantID, leaseID uuid.UUID) ([]time.Time, error) {
	var starts []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.RentPaymentModel{}).
		Where("tenant_id = ? AND lease_id = ?", tenantID, leaseID).
		Order("period_start ASC").
		Pluck("period_start", &starts).Error; err != nil {
		return nil, err
	}
	return starts, nil
}

// SaveAll inserts a batch of scheduled payments in one transaction
func (r *GormRentPaymentRepository) SaveAll(ctx context.Context, payments []*ledger.RentPayment) error {
	if len(payments) == 0 {
		return nil
	}

	paymentModels := make([]*models.RentPaymentModel, len(payments))
	for i, p := range payments {
		paymentModels[i] = models.RentPaymentModelFromDomain(p)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(paymentModels).Error
	})
}

// Save creates or updates a rent payment
func (r *GormRentPaymentRepository) Save(ctx context.Context, payment *ledger.RentPayment) error {
	model := models.RentPaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a rent payment with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormRentPaymentRepository) SaveWithLock(ctx context.Context, payment *ledger.RentPayment) error {
	model := models.RentPaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", payment.ID, payment.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The payment record has been modified by another transaction")
	}
	return nil
}

// UpdateWithLock loads the payment inside a transaction with the row
// locked, applies fn, and persists the result. Concurrent webhook
// deliveries for the same payment serialize on the row lock, so the
// duplicate-transaction check inside fn always sees the latest state.
func (r *GormRentPaymentRepository) UpdateWithLock(ctx context.Context, tenantID, id uuid.UUID, fn func(*ledger.RentPayment) error) (*ledger.RentPayment, error) {
	var payment *ledger.RentPayment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.RentPaymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		payment = model.ToDomain()
		if err := fn(payment); err != nil {
			return err
		}

		model.FromDomain(payment)
		return tx.Save(&model).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// paymentTotalsRow scans the grouped sums query
type paymentTotalsRow struct {
	LeaseID    uuid.UUID
	AmountDue  int64
	AmountPaid int64
}

// TotalsByLeaseIDs batch-fetches SUM(amount_due) and SUM(amount_paid)
// grouped by lease for the given lease set, in a single query
func (r *GormRentPaymentRepository) TotalsByLeaseIDs(ctx context.Context, tenantID uuid.UUID, leaseIDs []uuid.UUID) (map[uuid.UUID]ledger.PaymentTotals, error) {
	totals := make(map[uuid.UUID]ledger.PaymentTotals, len(leaseIDs))
	if len(leaseIDs) == 0 {
		return totals, nil
	}

	var rows []paymentTotalsRow
	if err := r.db.WithContext(ctx).
		Model(&models.RentPaymentModel{}).
		Select("lease_id, COALESCE(SUM(amount_due), 0) AS amount_due, COALESCE(SUM(amount_paid), 0) AS amount_paid").
		Where("tenant_id = ? AND lease_id IN ?", tenantID, leaseIDs).
		Group("lease_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		totals[row.LeaseID] = ledger.PaymentTotals{
			AmountDue:  row.AmountDue,
			AmountPaid: row.AmountPaid,
		}
	}
	return totals, nil
}

// FindDueOrPartialBefore returns payments in due or partial status
// whose due date falls on or before the cutoff
func (r *GormRentPaymentRepository) FindDueOrPartialBefore(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) ([]ledger.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ? AND due_date <= ?",
			tenantID, []ledger.PaymentStatus{ledger.PaymentStatusDue, ledger.PaymentStatusPartial}, cutoff).
		Order("due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindUpcomingDueBy returns upcoming payments whose due date has arrived
func (r *GormRentPaymentRepository) FindUpcomingDueBy(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]ledger.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND due_date <= ?",
			tenantID, ledger.PaymentStatusUpcoming, asOf).
		Order("due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

func toDomainPayments(paymentModels []models.RentPaymentModel) []ledger.RentPayment {
	payments := make([]ledger.RentPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

// Ensure GormRentPaymentRepository implements RentPaymentRepository
var _ ledger.RentPaymentRepository = (*GormRentPaymentRepository)(nil)
