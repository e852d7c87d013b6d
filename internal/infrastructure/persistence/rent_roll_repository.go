package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/report"
)

// GormRentRollRepository implements the joined lease query feeding the
// rent roll aggregator
type GormRentRollRepository struct {
	db *gorm.DB
}

// NewGormRentRollRepository creates a new GormRentRollRepository
func NewGormRentRollRepository(db *gorm.DB) *GormRentRollRepository {
	return &GormRentRollRepository{db: db}
}

// FindLeases returns one row per lease in the given statuses, joined
// with its unit and property, in a single query
func (r *GormRentRollRepository) FindLeases(ctx context.Context, tenantID uuid.UUID, statuses []leasing.LeaseStatus, propertyID *uuid.UUID) ([]report.RentRollLease, error) {
	if len(statuses) == 0 {
		return []report.RentRollLease{}, nil
	}

	query := r.db.WithContext(ctx).
		Table("leases").
		Select(`leases.id AS lease_id,
			properties.id AS property_id,
			properties.name AS property_name,
			units.id AS unit_id,
			units.unit_number AS unit_number,
			leases.resident_id AS resident_id,
			leases.resident_name AS resident_name,
			leases.status AS lease_status,
			leases.monthly_rent AS monthly_rent`).
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("leases.tenant_id = ? AND leases.status IN ?", tenantID, statuses)

	if propertyID != nil {
		query = query.Where("properties.id = ?", *propertyID)
	}

	var rows []report.RentRollLease
	if err := query.
		Order("properties.name ASC, units.unit_number ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.RentRollLease{}
	}
	return rows, nil
}

// Ensure GormRentRollRepository implements RentRollRepository
var _ report.RentRollRepository = (*GormRentRollRepository)(nil)
