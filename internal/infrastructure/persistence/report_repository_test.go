package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/ledger"
	"github.com/rentfolio/backend/internal/domain/portfolio"
	"github.com/rentfolio/backend/internal/infrastructure/persistence/models"
)

// reportFixture seeds a two-property portfolio with active leases and a
// handful of settled payments
type reportFixture struct {
	tenantID uuid.UUID
	aspen    *portfolio.Property
	birch    *portfolio.Property
	aspenLse *leasing.Lease
	birchLse *leasing.Lease
}

func setupReportTestDB(t *testing.T) (*gorm.DB, reportFixture) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PropertyModel{},
		&models.UnitModel{},
		&models.LeaseModel{},
		&models.RentPaymentModel{},
	)
	require.NoError(t, err)

	ctx := context.Background()
	tenantID := uuid.New()

	propertyRepo := NewGormPropertyRepository(db)
	unitRepo := NewGormUnitRepository(db)
	leaseRepo := NewGormLeaseRepository(db)
	paymentRepo := NewGormRentPaymentRepository(db)

	aspen, err := portfolio.NewProperty(tenantID, "Aspen Court", "12 Aspen Way", "Denver", "CO", "80014")
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Save(ctx, aspen))

	birch, err := portfolio.NewProperty(tenantID, "Birchwood Flats", "9 Birch St", "Denver", "CO", "80015")
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Save(ctx, birch))

	aspenUnit, err := portfolio.NewUnit(tenantID, aspen.ID, "101", 2, 1)
	require.NoError(t, err)
	require.NoError(t, unitRepo.Save(ctx, aspenUnit))

	birchUnit, err := portfolio.NewUnit(tenantID, birch.ID, "3B", 1, 1)
	require.NoError(t, err)
	require.NoError(t, unitRepo.Save(ctx, birchUnit))

	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)

	aspenLse, err := leasing.NewLease(tenantID, aspenUnit.ID, uuid.New(), "Jordan Reyes", start, end, 150000)
	require.NoError(t, err)
	require.NoError(t, aspenLse.Activate())
	require.NoError(t, leaseRepo.Save(ctx, aspenLse))

	birchLse, err := leasing.NewLease(tenantID, birchUnit.ID, uuid.New(), "Sam Okafor", start, end, 90000)
	require.NoError(t, err)
	require.NoError(t, birchLse.Activate())
	require.NoError(t, leaseRepo.Save(ctx, birchLse))

	// Aspen collects January and February, Birchwood collects nothing
	for month := 1; month <= 2; month++ {
		periodStart := time.Date(2026, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		payment, err := ledger.NewRentPayment(tenantID, aspenLse.ID, periodStart, periodStart.AddDate(0, 1, -1), periodStart, 150000)
		require.NoError(t, err)
		_, err = payment.ApplyPayment(150000, "txn_aspen_"+periodStart.Month().String(), periodStart.AddDate(0, 0, 2))
		require.NoError(t, err)
		require.NoError(t, paymentRepo.Save(ctx, payment))
	}

	// An unpaid Birchwood period must not count as collected
	unpaid, err := ledger.NewRentPayment(tenantID, birchLse.ID, start, start.AddDate(0, 1, -1), start, 90000)
	require.NoError(t, err)
	require.NoError(t, paymentRepo.Save(ctx, unpaid))

	return db, reportFixture{
		tenantID: tenantID,
		aspen:    aspen,
		birch:    birch,
		aspenLse: aspenLse,
		birchLse: birchLse,
	}
}

func TestGormRentRollRepository_FindLeases(t *testing.T) {
	db, fx := setupReportTestDB(t)
	repo := NewGormRentRollRepository(db)
	ctx := context.Background()

	t.Run("joins leases with units and properties", func(t *testing.T) {
		rows, err := repo.FindLeases(ctx, fx.tenantID, leasing.RentRollStatuses, nil)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		// Ordered by property name, then unit number
		assert.Equal(t, "Aspen Court", rows[0].PropertyName)
		assert.Equal(t, "101", rows[0].UnitNumber)
		assert.Equal(t, fx.aspenLse.ID, rows[0].LeaseID)
		assert.Equal(t, "Jordan Reyes", rows[0].ResidentName)
		assert.Equal(t, int64(150000), rows[0].MonthlyRent)
		assert.Equal(t, leasing.LeaseStatusActive, rows[0].LeaseStatus)

		assert.Equal(t, "Birchwood Flats", rows[1].PropertyName)
		assert.Equal(t, fx.birchLse.ID, rows[1].LeaseID)
	})

	t.Run("filters by property", func(t *testing.T) {
		rows, err := repo.FindLeases(ctx, fx.tenantID, leasing.RentRollStatuses, &fx.birch.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, fx.birchLse.ID, rows[0].LeaseID)
	})

	t.Run("excludes out-of-scope statuses", func(t *testing.T) {
		rows, err := repo.FindLeases(ctx, fx.tenantID, []leasing.LeaseStatus{leasing.LeaseStatusDraft}, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("other tenant sees nothing", func(t *testing.T) {
		rows, err := repo.FindLeases(ctx, uuid.New(), leasing.RentRollStatuses, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestGormRevenueReportRepository_CollectedByProperty(t *testing.T) {
	db, fx := setupReportTestDB(t)
	repo := NewGormRevenueReportRepository(db)
	ctx := context.Background()

	rows, err := repo.CollectedByProperty(ctx, fx.tenantID, []uuid.UUID{fx.aspen.ID, fx.birch.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Aspen Court", rows[0].PropertyName)
	assert.Equal(t, int64(300000), rows[0].TotalCollected)
	assert.Equal(t, int64(2), rows[0].PaymentCount)

	// The property with nothing collected still returns a named zero row
	assert.Equal(t, "Birchwood Flats", rows[1].PropertyName)
	assert.Equal(t, fx.birch.ID, rows[1].PropertyID)
	assert.Equal(t, int64(0), rows[1].TotalCollected)
	assert.Equal(t, int64(0), rows[1].PaymentCount)

	t.Run("empty property set short-circuits", func(t *testing.T) {
		rows, err := repo.CollectedByProperty(ctx, fx.tenantID, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestGormRevenueReportRepository_CollectedPaymentsForYear(t *testing.T) {
	db, fx := setupReportTestDB(t)
	repo := NewGormRevenueReportRepository(db)
	ctx := context.Background()

	rows, err := repo.CollectedPaymentsForYear(ctx, fx.tenantID, []uuid.UUID{fx.aspen.ID, fx.birch.ID}, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, fx.aspen.ID, row.PropertyID)
		assert.Equal(t, int64(150000), row.Amount)
		assert.Equal(t, 2026, row.PaidAt.Year())
	}
	assert.Equal(t, time.January, rows[0].PaidAt.Month())
	assert.Equal(t, time.February, rows[1].PaidAt.Month())

	t.Run("year with no settlements is empty", func(t *testing.T) {
		rows, err := repo.CollectedPaymentsForYear(ctx, fx.tenantID, []uuid.UUID{fx.aspen.ID}, 2027)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
