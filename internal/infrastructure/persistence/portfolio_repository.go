package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentfolio/backend/internal/domain/portfolio"
	"github.com/rentfolio/backend/internal/domain/shared"
	"github.com/rentfolio/backend/internal/infrastructure/persistence/models"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a property by ID within a tenant
func (r *GormPropertyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*portfolio.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// propertySortFields contains allowed sort fields for properties
var propertySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
	"state":      true,
}

// FindAllForTenant finds all properties for a tenant
func (r *GormPropertyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
	orderBy := ValidateSortField(filter.OrderBy, propertySortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)

	query := r.db.WithContext(ctx).
		Model(&models.PropertyModel{}).
		Where("tenant_id = ?", tenantID).
		Order(fmt.Sprintf("%s %s", orderBy, orderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var propertyModels []models.PropertyModel
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]portfolio.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, property *portfolio.Property) error {
	model := models.PropertyModelFromDomain(property)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a unit by ID within a tenant
func (r *GormUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*portfolio.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty finds all units for a property within a tenant
func (r *GormUnitRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]portfolio.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("unit_number ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}

	units := make([]portfolio.Unit, len(unitModels))
	for i, model := range unitModels {
		units[i] = *model.ToDomain()
	}
	return units, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *portfolio.Unit) error {
	model := models.UnitModelFromDomain(unit)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByID finds an assignment by its ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.PropertyManagerAssignment, error) {
	var model models.PropertyManagerAssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an assignment by ID within a tenant
func (r *GormAssignmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*portfolio.PropertyManagerAssignment, error) {
	var model models.PropertyManagerAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAcceptedByManager returns the manager's accepted assignments
func (r *GormAssignmentRepository) FindAcceptedByManager(ctx context.Context, tenantID, managerID uuid.UUID) ([]portfolio.PropertyManagerAssignment, error) {
	var assignmentModels []models.PropertyManagerAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND manager_id = ? AND status = ?",
			tenantID, managerID, portfolio.AssignmentStatusAccepted).
		Order("created_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainAssignments(assignmentModels), nil
}

// FindByProperty finds all assignments for a property within a tenant
func (r *GormAssignmentRepository) FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]portfolio.PropertyManagerAssignment, error) {
	var assignmentModels []models.PropertyManagerAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("created_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainAssignments(assignmentModels), nil
}

// Save creates or updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, assignment *portfolio.PropertyManagerAssignment) error {
	model := models.PropertyManagerAssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an assignment
func (r *GormAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyManagerAssignmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainAssignments(assignmentModels []models.PropertyManagerAssignmentModel) []portfolio.PropertyManagerAssignment {
	assignments := make([]portfolio.PropertyManagerAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments
}

// Interface conformance checks
var (
	_ portfolio.PropertyRepository   = (*GormPropertyRepository)(nil)
	_ portfolio.UnitRepository       = (*GormUnitRepository)(nil)
	_ portfolio.AssignmentRepository = (*GormAssignmentRepository)(nil)
)
