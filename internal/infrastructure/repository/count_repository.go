package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	domainRepo "github.com/venuecount/stocktake-api/internal/domain/repository"
	"gorm.io/gorm"
)

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) domainRepo.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	var department entity.Department
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Preload("Areas").
		First(&department, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &department, err
}

func (r *departmentRepository) Update(ctx context.Context, department *entity.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Delete(&entity.Department{}, "id = ?", id).Error
}

func (r *departmentRepository) ListAll(ctx context.Context) ([]entity.Department, error) {
	var departments []entity.Department
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

type areaRepository struct {
	db *gorm.DB
}

// NewAreaRepository creates a new area repository
func NewAreaRepository(db *gorm.DB) domainRepo.AreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) Create(ctx context.Context, area *entity.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *areaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Area, error) {
	var area entity.Area
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Preload("Items").
		First(&area, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &area, err
}

func (r *areaRepository) Update(ctx context.Context, area *entity.Area) error {
	return r.db.WithContext(ctx).Save(area).Error
}

func (r *areaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Delete(&entity.Area{}, "id = ?", id).Error
}

func (r *areaRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entity.Area, error) {
	var areas []entity.Area
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Where("department_id = ?", departmentID).
		Order("name ASC").
		Find(&areas).Error
	return areas, err
}

type areaItemRepository struct {
	db *gorm.DB
}

// NewAreaItemRepository creates a new area item repository
func NewAreaItemRepository(db *gorm.DB) domainRepo.AreaItemRepository {
	return &areaItemRepository{db: db}
}

func (r *areaItemRepository) Create(ctx context.Context, item *entity.AreaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *areaItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AreaItem, error) {
	var item entity.AreaItem
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Preload("Product").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *areaItemRepository) Update(ctx context.Context, item *entity.AreaItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *areaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Delete(&entity.AreaItem{}, "id = ?", id).Error
}

func (r *areaItemRepository) ListByArea(ctx context.Context, areaID uuid.UUID) ([]entity.AreaItem, error) {
	var items []entity.AreaItem
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Where("area_id = ?", areaID).
		Preload("Product").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *areaItemRepository) ListAll(ctx context.Context) ([]entity.AreaItem, error) {
	var items []entity.AreaItem
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Find(&items).Error
	return items, err
}

func (r *areaItemRepository) RecordCount(ctx context.Context, id uuid.UUID, quantity float64) error {
	return r.db.WithContext(ctx).Model(&entity.AreaItem{}).
		Scopes(VenueScope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_count": quantity,
			"counted_at": time.Now(),
		}).Error
}
