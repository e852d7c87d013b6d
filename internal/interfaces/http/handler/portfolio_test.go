package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portfolioapp "github.com/rentfolio/backend/internal/application/portfolio"
	"github.com/rentfolio/backend/internal/domain/portfolio"
	"github.com/rentfolio/backend/internal/domain/shared"
	"github.com/rentfolio/backend/internal/interfaces/http/middleware"
)

type stubPropertyRepo struct {
	portfolio.PropertyRepository
	all   func(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error)
	byID  func(ctx context.Context, tenantID, id uuid.UUID) (*portfolio.Property, error)
}

func (s *stubPropertyRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
	return s.all(ctx, tenantID, filter)
}

func (s *stubPropertyRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*portfolio.Property, error) {
	return s.byID(ctx, tenantID, id)
}

type stubUnitRepo struct {
	portfolio.UnitRepository
	byProperty func(ctx context.Context, tenantID, propertyID uuid.UUID) ([]portfolio.Unit, error)
}

func (s *stubUnitRepo) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]portfolio.Unit, error) {
	return s.byProperty(ctx, tenantID, propertyID)
}

func newPortfolioRouter(propertyRepo portfolio.PropertyRepository, unitRepo portfolio.UnitRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.TenantMiddleware())

	service := portfolioapp.NewPortfolioService(portfolioapp.PortfolioServiceConfig{
		PropertyRepo: propertyRepo,
		UnitRepo:     unitRepo,
	})
	NewPortfolioHandler(service).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestPortfolioHandler_ListProperties(t *testing.T) {
	tenantID := uuid.New()

	property, err := portfolio.NewProperty(tenantID, "Aspen Court", "12 Main St", "Boulder", "CO", "80301")
	require.NoError(t, err)

	propertyRepo := &stubPropertyRepo{
		all: func(_ context.Context, gotTenant uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
			assert.Equal(t, tenantID, gotTenant)
			assert.Equal(t, "name", filter.OrderBy)
			assert.Equal(t, 5, filter.PageSize)
			return []portfolio.Property{*property}, nil
		},
	}

	r := newPortfolioRouter(propertyRepo, &stubUnitRepo{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/properties?page_size=5", nil)
	req.Header.Set(middleware.TenantHeaderKey, tenantID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aspen Court")
}

func TestPortfolioHandler_ListUnits(t *testing.T) {
	tenantID := uuid.New()
	propertyID := uuid.New()

	property, err := portfolio.NewProperty(tenantID, "Aspen Court", "", "", "", "")
	require.NoError(t, err)
	unit, err := portfolio.NewUnit(tenantID, propertyID, "101", 2, 1)
	require.NoError(t, err)

	propertyRepo := &stubPropertyRepo{
		byID: func(_ context.Context, _, gotID uuid.UUID) (*portfolio.Property, error) {
			assert.Equal(t, propertyID, gotID)
			return property, nil
		},
	}
	unitRepo := &stubUnitRepo{
		byProperty: func(_ context.Context, _, gotProperty uuid.UUID) ([]portfolio.Unit, error) {
			assert.Equal(t, propertyID, gotProperty)
			return []portfolio.Unit{*unit}, nil
		},
	}

	r := newPortfolioRouter(propertyRepo, unitRepo)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/properties/"+propertyID.String()+"/units", nil)
	req.Header.Set(middleware.TenantHeaderKey, tenantID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []portfolio.Unit `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "101", resp.Data[0].UnitNumber)
}

func TestPortfolioHandler_ListUnits_PropertyNotFound(t *testing.T) {
	propertyRepo := &stubPropertyRepo{
		byID: func(context.Context, uuid.UUID, uuid.UUID) (*portfolio.Property, error) {
			return nil, shared.ErrNotFound
		},
	}

	r := newPortfolioRouter(propertyRepo, &stubUnitRepo{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/properties/"+uuid.NewString()+"/units", nil)
	req.Header.Set(middleware.TenantHeaderKey, uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioHandler_GetProperty_InvalidID(t *testing.T) {
	r := newPortfolioRouter(&stubPropertyRepo{}, &stubUnitRepo{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/properties/nope", nil)
	req.Header.Set(middleware.TenantHeaderKey, uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
