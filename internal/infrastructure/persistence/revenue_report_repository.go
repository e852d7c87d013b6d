package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentfolio/backend/internal/domain/report"
)

// GormRevenueReportRepository implements the raw aggregation queries
// behind manager revenue splits
type GormRevenueReportRepository struct {
	db *gorm.DB
}

// NewGormRevenueReportRepository creates a new GormRevenueReportRepository
func NewGormRevenueReportRepository(db *gorm.DB) *GormRevenueReportRepository {
	return &GormRevenueReportRepository{db: db}
}

// CollectedByProperty returns one row per requested property with total
// collected cents and payment count. Only payments with a positive paid
// amount count; properties with nothing collected come back zero-valued
// so callers still see their names.
func (r *GormRevenueReportRepository) CollectedByProperty(ctx context.Context, tenantID uuid.UUID, propertyIDs []uuid.UUID) ([]report.PropertyCollected, error) {
	if len(propertyIDs) == 0 {
		return []report.PropertyCollected{}, nil
	}

	var rows []report.PropertyCollected
	err := r.db.WithContext(ctx).
		Table("properties").
		Select(`properties.id AS property_id,
			properties.name AS property_name,
			COALESCE(SUM(rent_payments.amount_paid), 0) AS total_collected,
			COUNT(rent_payments.id) AS payment_count`).
		Joins("LEFT JOIN units ON units.property_id = properties.id").
		Joins("LEFT JOIN leases ON leases.unit_id = units.id").
		Joins("LEFT JOIN rent_payments ON rent_payments.lease_id = leases.id AND rent_payments.amount_paid > 0").
		Where("properties.tenant_id = ? AND properties.id IN ?", tenantID, propertyIDs).
		Group("properties.id, properties.name").
		Order("properties.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.PropertyCollected{}
	}
	return rows, nil
}

// CollectedPaymentsForYear returns one row per payment with money
// received whose paid_at falls inside the calendar year, for the given
// property set
func (r *GormRevenueReportRepository) CollectedPaymentsForYear(ctx context.Context, tenantID uuid.UUID, propertyIDs []uuid.UUID, year int) ([]report.CollectedPayment, error) {
	if len(propertyIDs) == 0 {
		return []report.CollectedPayment{}, nil
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var rows []report.CollectedPayment
	err := r.db.WithContext(ctx).
		Table("rent_payments").
		Select(`properties.id AS property_id,
			rent_payments.paid_at AS paid_at,
			rent_payments.amount_paid AS amount`).
		Joins("JOIN leases ON leases.id = rent_payments.lease_id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("rent_payments.tenant_id = ? AND properties.id IN ?", tenantID, propertyIDs).
		Where("rent_payments.amount_paid > 0 AND rent_payments.paid_at IS NOT NULL").
		Where("rent_payments.paid_at >= ? AND rent_payments.paid_at < ?", yearStart, yearEnd).
		Order("rent_payments.paid_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.CollectedPayment{}
	}
	return rows, nil
}

// Ensure GormRevenueReportRepository implements RevenueReportRepository
var _ report.RevenueReportRepository = (*GormRevenueReportRepository)(nil)
