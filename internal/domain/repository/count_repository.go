package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
)

// DepartmentRepository defines the interface for department data operations
type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Department, error)
	Update(ctx context.Context, department *entity.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]entity.Department, error)
}

// AreaRepository defines the interface for area data operations
type AreaRepository interface {
	Create(ctx context.Context, area *entity.Area) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Area, error)
	Update(ctx context.Context, area *entity.Area) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entity.Area, error)
}

// AreaItemRepository defines the interface for counted-item data operations
type AreaItemRepository interface {
	Create(ctx context.Context, item *entity.AreaItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AreaItem, error)
	Update(ctx context.Context, item *entity.AreaItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]entity.AreaItem, error)
	// ListAll returns every counted item across every department and area in
	// the venue. On-hand aggregation walks this full set.
	ListAll(ctx context.Context) ([]entity.AreaItem, error)
	// RecordCount overwrites the last-counted quantity for an item
	RecordCount(ctx context.Context, id uuid.UUID, quantity float64) error
}
