package leasing

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/internal/domain/shared"
)

// ChargeCategory classifies a recurring lease charge.
// The set is closed so aggregation code can be checked for exhaustiveness.
type ChargeCategory string

const (
	ChargeCategoryRent    ChargeCategory = "rent"
	ChargeCategoryUtility ChargeCategory = "utility"
	ChargeCategoryFee     ChargeCategory = "fee"
	ChargeCategoryOther   ChargeCategory = "other"
)

// IsValid checks if the category is a valid ChargeCategory
func (c ChargeCategory) IsValid() bool {
	switch c {
	case ChargeCategoryRent, ChargeCategoryUtility, ChargeCategoryFee, ChargeCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ChargeCategory
func (c ChargeCategory) String() string {
	return string(c)
}

// ChargeAmountType distinguishes fixed from variable (estimated) charges
type ChargeAmountType string

const (
	ChargeAmountFixed    ChargeAmountType = "fixed"
	ChargeAmountVariable ChargeAmountType = "variable"
)

// IsValid checks if the amount type is valid
func (t ChargeAmountType) IsValid() bool {
	return t == ChargeAmountFixed || t == ChargeAmountVariable
}

// LeaseCharge represents a recurring monetary obligation attached to a
// lease beyond (or including) base rent. Amounts are integer cents.
type LeaseCharge struct {
	shared.TenantAggregateRoot
	LeaseID         uuid.UUID
	Category        ChargeCategory
	Name            string
	AmountType      ChargeAmountType
	FixedAmount     *int64
	EstimatedAmount *int64 // Used when AmountType is variable
	IsActive        bool
}

// NewFixedLeaseCharge creates a charge with a fixed monthly amount
func NewFixedLeaseCharge(
	tenantID, leaseID uuid.UUID,
	category ChargeCategory,
	name string,
	amount int64,
) (*LeaseCharge, error) {
	if err := validateChargeCommon(leaseID, category, name); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charge amount cannot be negative")
	}

	return &LeaseCharge{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LeaseID:             leaseID,
		Category:            category,
		Name:                name,
		AmountType:          ChargeAmountFixed,
		FixedAmount:         &amount,
		IsActive:            true,
	}, nil
}

// NewVariableLeaseCharge creates a charge whose actual amount varies
// month to month; the estimate is used for rent roll projections.
func NewVariableLeaseCharge(
	tenantID, leaseID uuid.UUID,
	category ChargeCategory,
	name string,
	estimatedAmount int64,
) (*LeaseCharge, error) {
	if err := validateChargeCommon(leaseID, category, name); err != nil {
		return nil, err
	}
	if estimatedAmount < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Estimated amount cannot be negative")
	}

	return &LeaseCharge{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LeaseID:             leaseID,
		Category:            category,
		Name:                name,
		AmountType:          ChargeAmountVariable,
		EstimatedAmount:     &estimatedAmount,
		IsActive:            true,
	}, nil
}

func validateChargeCommon(leaseID uuid.UUID, category ChargeCategory, name string) error {
	if leaseID == uuid.Nil {
		return shared.NewDomainError("INVALID_LEASE", "Lease ID cannot be empty")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Charge category is not valid")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Charge name cannot be empty")
	}
	return nil
}

// MonthlyAmount returns the amount this charge contributes to a month:
// the fixed amount for fixed charges, the estimate for variable ones.
func (c *LeaseCharge) MonthlyAmount() int64 {
	switch c.AmountType {
	case ChargeAmountFixed:
		if c.FixedAmount != nil {
			return *c.FixedAmount
		}
	case ChargeAmountVariable:
		if c.EstimatedAmount != nil {
			return *c.EstimatedAmount
		}
	}
	return 0
}

// Deactivate excludes the charge from future schedules and aggregation
func (c *LeaseCharge) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Reactivate includes the charge in schedules and aggregation again
func (c *LeaseCharge) Reactivate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
