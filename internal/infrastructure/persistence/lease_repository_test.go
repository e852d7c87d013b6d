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
	"github.com/rentfolio/backend/internal/domain/shared"
	"github.com/rentfolio/backend/internal/infrastructure/persistence/models"
)

func setupLeaseTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.LeaseModel{}, &models.LeaseChargeModel{})
	require.NoError(t, err)

	return db
}

func newTestLease(t *testing.T, tenantID uuid.UUID, rent int64) *leasing.Lease {
	t.Helper()
	lease, err := leasing.NewLease(
		tenantID,
		uuid.New(),
		uuid.New(),
		"Jordan Reyes",
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		rent,
	)
	require.NoError(t, err)
	return lease
}

func TestGormLeaseRepository_SaveAndFind(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	lease := newTestLease(t, tenantID, 150000)
	deposit := int64(150000)
	require.NoError(t, lease.SetSecurityDeposit(deposit))
	require.NoError(t, lease.SetLateFeePolicy(5000, 3))

	require.NoError(t, repo.Save(ctx, lease))

	t.Run("finds by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, lease.ID)
		require.NoError(t, err)
		assert.Equal(t, lease.ID, found.ID)
		assert.Equal(t, "Jordan Reyes", found.ResidentName)
		assert.Equal(t, int64(150000), found.MonthlyRent)
		require.NotNil(t, found.SecurityDeposit)
		assert.Equal(t, deposit, *found.SecurityDeposit)
		require.NotNil(t, found.LateFeeAmount)
		assert.Equal(t, int64(5000), *found.LateFeeAmount)
		assert.Equal(t, 3, found.LateFeeGraceDays)
		assert.Equal(t, leasing.LeaseStatusDraft, found.Status)
	})

	t.Run("finds by ID for tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, lease.ID)
		require.NoError(t, err)
		assert.Equal(t, lease.ID, found.ID)
	})

	t.Run("wrong tenant returns not found", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), lease.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown ID returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLeaseRepository_FindByStatuses(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	active := newTestLease(t, tenantID, 150000)
	require.NoError(t, active.Activate())
	require.NoError(t, repo.Save(ctx, active))

	draft := newTestLease(t, tenantID, 120000)
	require.NoError(t, repo.Save(ctx, draft))

	terminated := newTestLease(t, tenantID, 90000)
	require.NoError(t, terminated.Activate())
	require.NoError(t, terminated.Terminate())
	require.NoError(t, repo.Save(ctx, terminated))

	// A lease on another tenant must never leak in
	other := newTestLease(t, uuid.New(), 200000)
	require.NoError(t, other.Activate())
	require.NoError(t, repo.Save(ctx, other))

	leases, err := repo.FindByStatuses(ctx, tenantID, leasing.RentRollStatuses)
	require.NoError(t, err)
	require.Len(t, leases, 1)
	assert.Equal(t, active.ID, leases[0].ID)

	t.Run("empty status list returns nothing", func(t *testing.T) {
		leases, err := repo.FindByStatuses(ctx, tenantID, nil)
		require.NoError(t, err)
		assert.Empty(t, leases)
	})
}

func TestGormLeaseRepository_SaveWithLock(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	lease := newTestLease(t, uuid.New(), 150000)
	require.NoError(t, repo.Save(ctx, lease))

	t.Run("saves with matching version", func(t *testing.T) {
		require.NoError(t, lease.Activate())

		err := repo.SaveWithLock(ctx, lease)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, lease.ID)
		require.NoError(t, err)
		assert.Equal(t, leasing.LeaseStatusActive, found.Status)
		assert.Equal(t, lease.Version, found.Version)
	})

	t.Run("rejects stale version", func(t *testing.T) {
		stale := *lease
		stale.Version = lease.Version + 5

		err := repo.SaveWithLock(ctx, &stale)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", derr.Code)
	})
}

func TestGormLeaseChargeRepository_FindActiveByLeaseIDs(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseChargeRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	leaseA := uuid.New()
	leaseB := uuid.New()

	water, err := leasing.NewFixedLeaseCharge(tenantID, leaseA, leasing.ChargeCategoryUtility, "Water", 4500)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, water))

	parking, err := leasing.NewFixedLeaseCharge(tenantID, leaseB, leasing.ChargeCategoryFee, "Parking", 10000)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, parking))

	cancelled, err := leasing.NewFixedLeaseCharge(tenantID, leaseA, leasing.ChargeCategoryOther, "Storage", 2500)
	require.NoError(t, err)
	cancelled.Deactivate()
	require.NoError(t, repo.Save(ctx, cancelled))

	charges, err := repo.FindActiveByLeaseIDs(ctx, tenantID, []uuid.UUID{leaseA, leaseB})
	require.NoError(t, err)
	require.Len(t, charges, 2, "inactive charges are excluded")

	names := []string{charges[0].Name, charges[1].Name}
	assert.Contains(t, names, "Water")
	assert.Contains(t, names, "Parking")

	t.Run("empty lease set short-circuits", func(t *testing.T) {
		charges, err := repo.FindActiveByLeaseIDs(ctx, tenantID, nil)
		require.NoError(t, err)
		assert.Empty(t, charges)
	})
}
