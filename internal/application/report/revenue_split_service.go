package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/domain/portfolio"
	"github.com/rentfolio/backend/internal/domain/report"
)

// ErrRevenueUnavailable is returned when the revenue queries fail; the
// calculator never returns partial figures
var ErrRevenueUnavailable = errors.New("revenue split: aggregation unavailable")

// RevenueSplitService computes a property manager's earned share of
// collected rent from their accepted assignments. Only accepted
// assignments contribute; proposed and rejected ones are ignored even
// when payments exist for the property.
type RevenueSplitService struct {
	assignmentRepo portfolio.AssignmentRepository
	revenueRepo    report.RevenueReportRepository
	logger         *zap.Logger
}

// RevenueSplitServiceConfig holds configuration for the revenue service
type RevenueSplitServiceConfig struct {
	AssignmentRepo portfolio.AssignmentRepository
	RevenueRepo    report.RevenueReportRepository
	Logger         *zap.Logger
}

// NewRevenueSplitService creates a new RevenueSplitService
func NewRevenueSplitService(config RevenueSplitServiceConfig) *RevenueSplitService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RevenueSplitService{
		assignmentRepo: config.AssignmentRepo,
		revenueRepo:    config.RevenueRepo,
		logger:         logger,
	}
}

// GetByProperty returns one row per property where the manager holds an
// accepted assignment. The share is rounded half-up once on the
// aggregate collected total per property, never per payment, so many
// small payments cannot accumulate rounding drift.
func (s *RevenueSplitService) GetByProperty(ctx context.Context, tenantID, managerID uuid.UUID) ([]report.PropertyRevenue, error) {
	assignments, err := s.acceptedAssignments(ctx, tenantID, managerID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []report.PropertyRevenue{}, nil
	}

	collected, err := s.revenueRepo.CollectedByProperty(ctx, tenantID, propertyIDs(assignments))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRevenueUnavailable, err)
	}
	collectedByProperty := make(map[uuid.UUID]report.PropertyCollected, len(collected))
	for _, row := range collected {
		collectedByProperty[row.PropertyID] = row
	}

	rows := make([]report.PropertyRevenue, 0, len(assignments))
	for _, a := range assignments {
		row := collectedByProperty[a.PropertyID]
		rows = append(rows, report.PropertyRevenue{
			PropertyID:      a.PropertyID,
			PropertyName:    row.PropertyName,
			SplitPercentage: a.SplitPercentage,
			TotalCollected:  row.TotalCollected,
			PMShare:         share(row.TotalCollected, a.SplitPercentage),
			PaymentCount:    row.PaymentCount,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].PropertyName < rows[j].PropertyName
	})
	return rows, nil
}

// GetSummary sums the by-property rows for a manager
func (s *RevenueSplitService) GetSummary(ctx context.Context, tenantID, managerID uuid.UUID) (*report.RevenueSummary, error) {
	rows, err := s.GetByProperty(ctx, tenantID, managerID)
	if err != nil {
		return nil, err
	}

	summary := &report.RevenueSummary{PropertyCount: len(rows)}
	for _, row := range rows {
		summary.TotalCollected += row.TotalCollected
		summary.TotalPMShare += row.PMShare
		summary.PaymentCount += row.PaymentCount
	}
	return summary, nil
}

// GetByMonth buckets the manager's collected payments by settlement
// month for one calendar year, always returning 12 rows. Within a month
// the share is computed per payment and then summed, which keeps the
// granularity consistent when a manager's properties carry different
// percentages.
func (s *RevenueSplitService) GetByMonth(ctx context.Context, tenantID, managerID uuid.UUID, year int) ([]report.MonthlyRevenue, error) {
	assignments, err := s.acceptedAssignments(ctx, tenantID, managerID)
	if err != nil {
		return nil, err
	}

	months := make([]report.MonthlyRevenue, 12)
	for i := range months {
		months[i] = report.MonthlyRevenue{Year: year, Month: i + 1}
	}
	if len(assignments) == 0 {
		return months, nil
	}

	pctByProperty := make(map[uuid.UUID]int, len(assignments))
	for _, a := range assignments {
		pctByProperty[a.PropertyID] = a.SplitPercentage
	}

	payments, err := s.revenueRepo.CollectedPaymentsForYear(ctx, tenantID, propertyIDs(assignments), year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRevenueUnavailable, err)
	}

	for _, p := range payments {
		pct, ok := pctByProperty[p.PropertyID]
		if !ok {
			continue
		}
		bucket := &months[int(p.PaidAt.Month())-1]
		bucket.TotalCollected += p.Amount
		bucket.PMShare += share(p.Amount, pct)
		bucket.PaymentCount++
	}

	return months, nil
}

func (s *RevenueSplitService) acceptedAssignments(ctx context.Context, tenantID, managerID uuid.UUID) ([]portfolio.PropertyManagerAssignment, error) {
	assignments, err := s.assignmentRepo.FindAcceptedByManager(ctx, tenantID, managerID)
	if err != nil {
		return nil, fmt.Errorf("%w: assignments: %v", ErrRevenueUnavailable, err)
	}
	return assignments, nil
}

func propertyIDs(assignments []portfolio.PropertyManagerAssignment) []uuid.UUID {
	ids := make([]uuid.UUID, len(assignments))
	for i := range assignments {
		ids[i] = assignments[i].PropertyID
	}
	return ids
}

// share computes round-half-up(collected * pct / 100) in decimal and
// converts back to integer cents. decimal.Round rounds half away from
// zero, which is half-up for the non-negative amounts handled here.
func share(collected int64, pct int) int64 {
	if collected == 0 || pct == 0 {
		return 0
	}
	return decimal.NewFromInt(collected).
		Mul(decimal.NewFromInt(int64(pct))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
