package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/shared"
)

// Test helpers
func createTestPayment(t *testing.T, amountDue int64) *RentPayment {
	p, err := NewRentPayment(
		uuid.New(),
		uuid.New(),
		date(2026, 3, 1),
		date(2026, 3, 31),
		date(2026, 3, 1),
		amountDue,
	)
	require.NoError(t, err)
	return p
}

// ============================================
// PaymentStatus Tests
// ============================================

func TestPaymentStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PaymentStatus
		isValid bool
	}{
		{PaymentStatusUpcoming, true},
		{PaymentStatusDue, true},
		{PaymentStatusPartial, true},
		{PaymentStatusPaid, true},
		{PaymentStatusLate, true},
		{PaymentStatus("INVALID"), false},
		{PaymentStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

// ============================================
// ApplyPayment Tests
// ============================================

func TestRentPayment_ApplyPayment_FullSettlement(t *testing.T) {
	p := createTestPayment(t, 150000)
	occurredAt := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

	applied, err := p.ApplyPayment(150000, "txn_abc", occurredAt)
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, int64(150000), p.AmountPaid)
	assert.Equal(t, PaymentStatusPaid, p.Status)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, occurredAt, *p.PaidAt)
	require.NotNil(t, p.ExternalTransactionID)
	assert.Equal(t, "txn_abc", *p.ExternalTransactionID)
	assert.Equal(t, int64(0), p.Balance())
}

func TestRentPayment_ApplyPayment_Partial(t *testing.T) {
	p := createTestPayment(t, 150000)

	applied, err := p.ApplyPayment(50000, "txn_1", time.Now())
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, int64(50000), p.AmountPaid)
	assert.Equal(t, PaymentStatusPartial, p.Status)
	assert.Nil(t, p.PaidAt)
	assert.Equal(t, int64(100000), p.Balance())
}

func TestRentPayment_ApplyPayment_DuplicateTransactionIsNoOp(t *testing.T) {
	p := createTestPayment(t, 150000)

	applied, err := p.ApplyPayment(50000, "txn_dup", time.Now())
	require.NoError(t, err)
	require.True(t, applied)

	// Same transaction ID replayed: success, nothing changes
	applied, err = p.ApplyPayment(50000, "txn_dup", time.Now())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, int64(50000), p.AmountPaid)
	assert.Len(t, p.AppliedTransactions, 1)
}

func TestRentPayment_ApplyPayment_ReplayAfterSettlement(t *testing.T) {
	p := createTestPayment(t, 100000)
	paidAt := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := p.ApplyPayment(100000, "txn_settle", paidAt)
	require.NoError(t, err)
	require.Equal(t, PaymentStatusPaid, p.Status)

	applied, err := p.ApplyPayment(100000, "txn_settle", time.Now())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, int64(100000), p.AmountPaid)
	assert.Equal(t, paidAt, *p.PaidAt)
}

func TestRentPayment_ApplyPayment_MultipleTransactions(t *testing.T) {
	p := createTestPayment(t, 150000)

	_, err := p.ApplyPayment(60000, "txn_1", time.Now())
	require.NoError(t, err)
	_, err = p.ApplyPayment(90000, "txn_2", time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(150000), p.AmountPaid)
	assert.Equal(t, PaymentStatusPaid, p.Status)
	assert.Len(t, p.AppliedTransactions, 2)
	assert.True(t, p.HasTransaction("txn_1"))
	assert.True(t, p.HasTransaction("txn_2"))
	assert.False(t, p.HasTransaction("txn_3"))
}

func TestRentPayment_ApplyPayment_Overpayment(t *testing.T) {
	p := createTestPayment(t, 100000)

	_, err := p.ApplyPayment(120000, "txn_over", time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(120000), p.AmountPaid)
	assert.Equal(t, PaymentStatusPaid, p.Status)
	assert.Equal(t, int64(-20000), p.Balance())
}

func TestRentPayment_ApplyPayment_RejectsNonPositiveIncrement(t *testing.T) {
	p := createTestPayment(t, 100000)

	for _, increment := range []int64{0, -500} {
		applied, err := p.ApplyPayment(increment, "txn_bad", time.Now())
		assert.False(t, applied)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_AMOUNT", derr.Code)
	}
	assert.Equal(t, int64(0), p.AmountPaid)
}

func TestRentPayment_ApplyPayment_LateStaysLateUntilCovered(t *testing.T) {
	p := createTestPayment(t, 150000)
	p.MarkDue(p.DueDate)
	fee := int64(0)
	_, err := p.MarkLate(p.DueDate.AddDate(0, 0, 10), 5, &fee)
	require.NoError(t, err)
	require.Equal(t, PaymentStatusLate, p.Status)

	_, err = p.ApplyPayment(50000, "txn_1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusLate, p.Status)

	_, err = p.ApplyPayment(100000, "txn_2", time.Now())
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, p.Status)
}

func TestRentPayment_ApplyPayment_Events(t *testing.T) {
	p := createTestPayment(t, 100000)

	_, err := p.ApplyPayment(40000, "txn_1", time.Now())
	require.NoError(t, err)
	_, err = p.ApplyPayment(60000, "txn_2", time.Now())
	require.NoError(t, err)

	var received, settled int
	for _, e := range p.GetDomainEvents() {
		switch e.EventType() {
		case "RentPaymentReceived":
			received++
		case "RentPaymentSettled":
			settled++
		}
	}
	assert.Equal(t, 2, received)
	assert.Equal(t, 1, settled)
}

// ============================================
// Due / Late Transition Tests
// ============================================

func TestRentPayment_MarkDue(t *testing.T) {
	p := createTestPayment(t, 150000)

	assert.False(t, p.MarkDue(p.DueDate.AddDate(0, 0, -1)))
	assert.Equal(t, PaymentStatusUpcoming, p.Status)

	assert.True(t, p.MarkDue(p.DueDate))
	assert.Equal(t, PaymentStatusDue, p.Status)

	// Only upcoming payments transition
	assert.False(t, p.MarkDue(p.DueDate))
}

func TestRentPayment_MarkLate_AppliesFeeOnce(t *testing.T) {
	p := createTestPayment(t, 150000)
	p.MarkDue(p.DueDate)
	fee := int64(5000)

	// Inside grace window: no transition
	marked, err := p.MarkLate(p.DueDate.AddDate(0, 0, 5), 5, &fee)
	require.NoError(t, err)
	assert.False(t, marked)

	marked, err = p.MarkLate(p.DueDate.AddDate(0, 0, 6), 5, &fee)
	require.NoError(t, err)
	assert.True(t, marked)
	assert.Equal(t, PaymentStatusLate, p.Status)
	assert.Equal(t, int64(155000), p.AmountDue)
	require.NotNil(t, p.LateFeeApplied)
	assert.Equal(t, int64(5000), *p.LateFeeApplied)

	// A second sweep never double-charges
	marked, err = p.MarkLate(p.DueDate.AddDate(0, 0, 30), 5, &fee)
	require.NoError(t, err)
	assert.False(t, marked)
	assert.Equal(t, int64(155000), p.AmountDue)
}

func TestRentPayment_MarkLate_NoFeeConfigured(t *testing.T) {
	p := createTestPayment(t, 150000)
	p.MarkDue(p.DueDate)

	marked, err := p.MarkLate(p.DueDate.AddDate(0, 0, 1), 0, nil)
	require.NoError(t, err)
	assert.True(t, marked)
	assert.Equal(t, int64(150000), p.AmountDue)
	assert.Nil(t, p.LateFeeApplied)
}

// ============================================
// Line Item Tests
// ============================================

func TestRentPayment_SetLineItems(t *testing.T) {
	p := createTestPayment(t, 150000)

	items := PaymentLineItems{
		NewPaymentLineItem(leasing.ChargeCategoryRent, "Base rent", 130000),
		NewPaymentLineItem(leasing.ChargeCategoryUtility, "Water", 20000),
	}
	require.NoError(t, p.SetLineItems(items))
	assert.Equal(t, int64(150000), p.LineItems.TotalDue())
}

func TestRentPayment_SetLineItems_TotalMismatch(t *testing.T) {
	p := createTestPayment(t, 150000)

	items := PaymentLineItems{
		NewPaymentLineItem(leasing.ChargeCategoryRent, "Base rent", 100000),
	}
	err := p.SetLineItems(items)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_LINE_ITEMS", derr.Code)
}

func TestRentPayment_ApplyPayment_AllocatesRentFirst(t *testing.T) {
	p := createTestPayment(t, 150000)
	require.NoError(t, p.SetLineItems(PaymentLineItems{
		NewPaymentLineItem(leasing.ChargeCategoryUtility, "Water", 20000),
		NewPaymentLineItem(leasing.ChargeCategoryRent, "Base rent", 130000),
	}))

	_, err := p.ApplyPayment(140000, "txn_1", time.Now())
	require.NoError(t, err)

	// Rent fills first regardless of slice order, then utilities
	var rentPaid, utilityPaid int64
	for _, item := range p.LineItems {
		switch item.Category {
		case leasing.ChargeCategoryRent:
			rentPaid = item.AmountPaid
		case leasing.ChargeCategoryUtility:
			utilityPaid = item.AmountPaid
		}
	}
	assert.Equal(t, int64(130000), rentPaid)
	assert.Equal(t, int64(10000), utilityPaid)
}

func TestPaymentLineItems_AllocateOverpaymentLandsOnFirstItem(t *testing.T) {
	items := PaymentLineItems{
		NewPaymentLineItem(leasing.ChargeCategoryRent, "Base rent", 100000),
		NewPaymentLineItem(leasing.ChargeCategoryFee, "Pet fee", 5000),
	}

	items.Allocate(110000)

	assert.Equal(t, int64(105000), items[0].AmountPaid)
	assert.Equal(t, int64(5000), items[1].AmountPaid)
	assert.Equal(t, int64(110000), items.TotalPaid())
}

// ============================================
// Creation Tests
// ============================================

func TestNewRentPayment_Validation(t *testing.T) {
	tenantID := uuid.New()
	leaseID := uuid.New()

	_, err := NewRentPayment(tenantID, uuid.Nil, date(2026, 3, 1), date(2026, 3, 31), date(2026, 3, 1), 100)
	assert.Error(t, err)

	_, err = NewRentPayment(tenantID, leaseID, date(2026, 3, 31), date(2026, 3, 1), date(2026, 3, 1), 100)
	assert.Error(t, err)

	_, err = NewRentPayment(tenantID, leaseID, date(2026, 3, 1), date(2026, 3, 31), date(2026, 3, 1), -1)
	assert.Error(t, err)
}
