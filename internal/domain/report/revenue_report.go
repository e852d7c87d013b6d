package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PropertyRevenue is the read model for one property row in a manager's
// revenue split. PMShare is rounded half-up once on the aggregate total,
// not per payment, so small payments do not accumulate rounding drift.
type PropertyRevenue struct {
	PropertyID      uuid.UUID `json:"property_id"`
	PropertyName    string    `json:"property_name"`
	SplitPercentage int       `json:"split_percentage"`
	TotalCollected  int64     `json:"total_collected"`
	PMShare         int64     `json:"pm_share"`
	PaymentCount    int64     `json:"payment_count"`
}

// RevenueSummary sums the by-property rows for a manager
type RevenueSummary struct {
	TotalCollected int64 `json:"total_collected"`
	TotalPMShare   int64 `json:"total_pm_share"`
	PropertyCount  int   `json:"property_count"`
	PaymentCount   int64 `json:"payment_count"`
}

// MonthlyRevenue is one calendar-month bucket of a manager's collected
// rent. The share is computed per payment and then summed within the
// month. A full year always yields 12 rows, zero-valued months included.
type MonthlyRevenue struct {
	Year           int   `json:"year"`
	Month          int   `json:"month"`
	TotalCollected int64 `json:"total_collected"`
	PMShare        int64 `json:"pm_share"`
	PaymentCount   int64 `json:"payment_count"`
}

// PropertyCollected is a raw aggregation row: total collected cents and
// payment count per property, over payments with a positive paid amount
type PropertyCollected struct {
	PropertyID     uuid.UUID `json:"property_id"`
	PropertyName   string    `json:"property_name"`
	TotalCollected int64     `json:"total_collected"`
	PaymentCount   int64     `json:"payment_count"`
}

// CollectedPayment is a raw per-payment row used for monthly bucketing.
// PaidAt carries the settlement timestamp that decides the month.
type CollectedPayment struct {
	PropertyID uuid.UUID `json:"property_id"`
	PaidAt     time.Time `json:"paid_at"`
	Amount     int64     `json:"amount"`
}

// RevenueReportRepository defines the interface for revenue split queries
type RevenueReportRepository interface {
	// CollectedByProperty returns one row per requested property with the
	// total collected cents and payment count, counting only payments with
	// amount_paid > 0. Properties with nothing collected come back as
	// zero-valued rows so callers still see their names.
	CollectedByProperty(ctx context.Context, tenantID uuid.UUID, propertyIDs []uuid.UUID) ([]PropertyCollected, error)
	// CollectedPaymentsForYear returns one row per settled payment whose
	// paid_at falls inside the calendar year, for the given property set
	CollectedPaymentsForYear(ctx context.Context, tenantID uuid.UUID, propertyIDs []uuid.UUID, year int) ([]CollectedPayment, error)
}
