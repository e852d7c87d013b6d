package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/shared"
	"github.com/rentfolio/backend/internal/infrastructure/persistence/models"
)

// GormLeaseChargeRepository implements LeaseChargeRepository using GORM
type GormLeaseChargeRepository struct {
	db *gorm.DB
}

// NewGormLeaseChargeRepository creates a new GormLeaseChargeRepository
func NewGormLeaseChargeRepository(db *gorm.DB) *GormLeaseChargeRepository {
	return &GormLeaseChargeRepository{db: db}
}

// FindByID finds a lease charge by its ID
func (r *GormLeaseChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.LeaseCharge, error) {
	var model models.LeaseChargeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLease finds all charges for a lease within a tenant
func (r *GormLeaseChargeRepository) FindByLease(ctx context.Context, tenantID, leaseID uuid.UUID) ([]leasing.LeaseCharge, error) {
	var chargeModels []models.LeaseChargeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lease_id = ?", tenantID, leaseID).
		Order("created_at ASC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}

	charges := make([]leasing.LeaseCharge, len(chargeModels))
	for i, model := range chargeModels {
		charges[i] = *model.ToDomain()
	}
	return charges, nil
}

// FindActiveByLeaseIDs batch-fetches all active charges for a set of
// leases in a single query
func (r *GormLeaseChargeRepository) FindActiveByLeaseIDs(ctx context.Context, tenantID uuid.UUID, leaseIDs []uuid.UUID) ([]leasing.LeaseCharge, error) {
	if len(leaseIDs) == 0 {
		return []leasing.LeaseCharge{}, nil
	}

	var chargeModels []models.LeaseChargeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lease_id IN ? AND is_active = ?", tenantID, leaseIDs, true).
		Order("created_at ASC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}

	charges := make([]leasing.LeaseCharge, len(chargeModels))
	for i, model := range chargeModels {
		charges[i] = *model.ToDomain()
	}
	return charges, nil
}

// Save creates or updates a lease charge
func (r *GormLeaseChargeRepository) Save(ctx context.Context, charge *leasing.LeaseCharge) error {
	model := models.LeaseChargeModelFromDomain(charge)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a lease charge
func (r *GormLeaseChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeaseChargeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLeaseChargeRepository implements LeaseChargeRepository
var _ leasing.LeaseChargeRepository = (*GormLeaseChargeRepository)(nil)
