package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/internal/domain/portfolio"
	"github.com/rentfolio/backend/internal/domain/shared"
)

// PortfolioService serves the property and unit reads backing the
// portfolio browse pages. Lease and ledger state is never touched here.
type PortfolioService struct {
	propertyRepo portfolio.PropertyRepository
	unitRepo     portfolio.UnitRepository
	logger       *zap.Logger
}

// PortfolioServiceConfig holds configuration for the portfolio service
type PortfolioServiceConfig struct {
	PropertyRepo portfolio.PropertyRepository
	UnitRepo     portfolio.UnitRepository
	Logger       *zap.Logger
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(config PortfolioServiceConfig) *PortfolioService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PortfolioService{
		propertyRepo: config.PropertyRepo,
		unitRepo:     config.UnitRepo,
		logger:       logger,
	}
}

// ListProperties returns the tenant's properties
func (s *PortfolioService) ListProperties(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
	properties, err := s.propertyRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetProperty returns one property scoped to the tenant
func (s *PortfolioService) GetProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (*portfolio.Property, error) {
	return s.propertyRepo.FindByIDForTenant(ctx, tenantID, propertyID)
}

// ListUnits returns a property's units. The property is resolved first
// so a missing property is a not-found, not an empty list.
func (s *PortfolioService) ListUnits(ctx context.Context, tenantID, propertyID uuid.UUID) ([]portfolio.Unit, error) {
	if _, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, propertyID); err != nil {
		return nil, err
	}

	units, err := s.unitRepo.FindByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}
