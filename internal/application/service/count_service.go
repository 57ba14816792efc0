package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/pkg/apperror"
)

// CountService manages the department/area/item counting hierarchy and the
// last-count snapshot writes.
type CountService struct {
	departmentRepo repository.DepartmentRepository
	areaRepo       repository.AreaRepository
	itemRepo       repository.AreaItemRepository
	productRepo    repository.ProductRepository
}

// NewCountService creates a new count service
func NewCountService(
	departmentRepo repository.DepartmentRepository,
	areaRepo repository.AreaRepository,
	itemRepo repository.AreaItemRepository,
	productRepo repository.ProductRepository,
) *CountService {
	return &CountService{
		departmentRepo: departmentRepo,
		areaRepo:       areaRepo,
		itemRepo:       itemRepo,
		productRepo:    productRepo,
	}
}

// CreateDepartment creates a counting department
func (s *CountService) CreateDepartment(ctx context.Context, name string) (*entity.Department, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Department name is required")
	}
	department := &entity.Department{VenueID: venueID, Name: name}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// ListDepartments returns every department in the venue
func (s *CountService) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	return s.departmentRepo.ListAll(ctx)
}

// CreateArea creates a counting area under a department
func (s *CountService) CreateArea(ctx context.Context, departmentID uuid.UUID, name string) (*entity.Area, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Area name is required")
	}
	department, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperror.NewNotFoundError("Department")
	}
	area := &entity.Area{VenueID: venueID, DepartmentID: departmentID, Name: name}
	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// ListAreas returns the areas under a department
func (s *CountService) ListAreas(ctx context.Context, departmentID uuid.UUID) ([]entity.Area, error) {
	return s.areaRepo.ListByDepartment(ctx, departmentID)
}

// AddItemInput represents the add area item input. ProductID nil creates a
// free-text orphan item.
type AddItemInput struct {
	AreaID     uuid.UUID
	ProductID  *uuid.UUID
	SupplierID *uuid.UUID
	Name       string
	PackSize   *int
	UnitCost   *int64 // cents, per-location override
}

// AddItem adds an item to a counting area
func (s *CountService) AddItem(ctx context.Context, input *AddItemInput) (*entity.AreaItem, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}

	area, err := s.areaRepo.GetByID(ctx, input.AreaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, apperror.NewNotFoundError("Area")
	}

	name := input.Name
	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		if name == "" {
			name = product.Name
		}
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}

	item := &entity.AreaItem{
		VenueID:    venueID,
		AreaID:     input.AreaID,
		ProductID:  input.ProductID,
		SupplierID: input.SupplierID,
		Name:       name,
		PackSize:   input.PackSize,
		UnitCost:   input.UnitCost,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RecordCount overwrites the last-counted quantity for an item. The previous
// value is discarded: on-hand is a snapshot, not a ledger.
func (s *CountService) RecordCount(ctx context.Context, itemID uuid.UUID, quantity float64) (*entity.AreaItem, error) {
	if quantity < 0 {
		return nil, apperror.NewBadRequestError("Count cannot be negative")
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if err := s.itemRepo.RecordCount(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	now := time.Now()
	item.LastCount = &quantity
	item.CountedAt = &now
	return item, nil
}

// ListItems returns the items in an area
func (s *CountService) ListItems(ctx context.Context, areaID uuid.UUID) ([]entity.AreaItem, error) {
	return s.itemRepo.ListByArea(ctx, areaID)
}

// RemoveItem deletes an item from a counting area
func (s *CountService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, itemID)
}
