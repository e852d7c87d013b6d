package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/domain/leasing"
	"github.com/rentfolio/backend/internal/domain/ledger"
	"github.com/rentfolio/backend/internal/domain/report"
)

// ErrAggregationUnavailable is returned when any of the rent roll's
// batch queries fails. The aggregator never returns a partially merged
// result.
var ErrAggregationUnavailable = errors.New("rent roll: aggregation unavailable")

// RentRollService assembles the rent roll read model. It issues exactly
// three batch queries regardless of portfolio size: the joined lease
// rows, the active charges for those leases, and the grouped payment
// totals. All merging happens in memory.
type RentRollService struct {
	rentRollRepo report.RentRollRepository
	chargeRepo   leasing.LeaseChargeRepository
	paymentRepo  ledger.RentPaymentRepository
	logger       *zap.Logger
}

// RentRollServiceConfig holds configuration for the rent roll service
type RentRollServiceConfig struct {
	RentRollRepo report.RentRollRepository
	ChargeRepo   leasing.LeaseChargeRepository
	PaymentRepo  ledger.RentPaymentRepository
	Logger       *zap.Logger
}

// NewRentRollService creates a new RentRollService
func NewRentRollService(config RentRollServiceConfig) *RentRollService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RentRollService{
		rentRollRepo: config.RentRollRepo,
		chargeRepo:   config.ChargeRepo,
		paymentRepo:  config.PaymentRepo,
		logger:       logger,
	}
}

// GetRentRoll builds the rent roll for an organization, optionally
// restricted to one property. Rows are ordered by property name, then
// unit number.
func (s *RentRollService) GetRentRoll(ctx context.Context, filter report.RentRollFilter) ([]report.RentRollEntry, error) {
	// Query 1: leases joined with unit and property
	leases, err := s.rentRollRepo.FindLeases(ctx, filter.TenantID, leasing.RentRollStatuses, filter.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: leases: %v", ErrAggregationUnavailable, err)
	}
	if len(leases) == 0 {
		return []report.RentRollEntry{}, nil
	}

	leaseIDs := make([]uuid.UUID, len(leases))
	for i := range leases {
		leaseIDs[i] = leases[i].LeaseID
	}

	// Query 2: active charges for the whole lease set
	charges, err := s.chargeRepo.FindActiveByLeaseIDs(ctx, filter.TenantID, leaseIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: charges: %v", ErrAggregationUnavailable, err)
	}
	chargesByLease := make(map[uuid.UUID][]leasing.LeaseCharge)
	for i := range charges {
		chargesByLease[charges[i].LeaseID] = append(chargesByLease[charges[i].LeaseID], charges[i])
	}

	// Query 3: grouped payment totals for the whole lease set
	totals, err := s.paymentRepo.TotalsByLeaseIDs(ctx, filter.TenantID, leaseIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: payment totals: %v", ErrAggregationUnavailable, err)
	}

	entries := make([]report.RentRollEntry, 0, len(leases))
	for i := range leases {
		entries = append(entries, buildEntry(&leases[i], chargesByLease[leases[i].LeaseID], totals[leases[i].LeaseID]))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PropertyName != entries[j].PropertyName {
			return entries[i].PropertyName < entries[j].PropertyName
		}
		return entries[i].UnitNumber < entries[j].UnitNumber
	})

	s.logger.Debug("Rent roll assembled",
		zap.String("tenant_id", filter.TenantID.String()),
		zap.Int("entries", len(entries)))

	return entries, nil
}

// buildEntry merges one lease's charges and totals into a rent roll row.
// Exactly one rent line appears: the lease's explicit rent charge when
// present, otherwise one synthesized from the monthly rent.
func buildEntry(lease *report.RentRollLease, charges []leasing.LeaseCharge, totals ledger.PaymentTotals) report.RentRollEntry {
	lines := make([]report.ChargeLine, 0, len(charges)+1)

	var rentLine *report.ChargeLine
	var nonRentTotal int64
	for i := range charges {
		charge := &charges[i]
		line := report.ChargeLine{
			Category: charge.Category.String(),
			Name:     charge.Name,
			Amount:   charge.MonthlyAmount(),
			IsActive: charge.IsActive,
		}
		if charge.Category == leasing.ChargeCategoryRent {
			// Keep only the first explicit rent charge so rent never
			// appears twice
			if rentLine == nil {
				rentLine = &line
			}
			continue
		}
		nonRentTotal += line.Amount
		lines = append(lines, line)
	}

	if rentLine == nil {
		rentLine = &report.ChargeLine{
			Category: leasing.ChargeCategoryRent.String(),
			Name:     "Rent",
			Amount:   lease.MonthlyRent,
			IsActive: true,
		}
	}
	lines = append([]report.ChargeLine{*rentLine}, lines...)

	return report.RentRollEntry{
		LeaseID:             lease.LeaseID,
		PropertyID:          lease.PropertyID,
		PropertyName:        lease.PropertyName,
		UnitID:              lease.UnitID,
		UnitNumber:          lease.UnitNumber,
		ResidentID:          lease.ResidentID,
		ResidentName:        lease.ResidentName,
		LeaseStatus:         lease.LeaseStatus.String(),
		MonthlyRent:         lease.MonthlyRent,
		Charges:             lines,
		TotalMonthlyCharges: lease.MonthlyRent + nonRentTotal,
		CurrentBalance:      totals.Balance(),
	}
}
