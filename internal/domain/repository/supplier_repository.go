package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/pkg/pagination"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error)
	// ListAll returns every supplier for the venue without pagination
	ListAll(ctx context.Context) ([]entity.Supplier, error)
	// GetUnassigned returns the venue's sentinel "unassigned" supplier,
	// creating it if it does not exist yet.
	GetUnassigned(ctx context.Context) (*entity.Supplier, error)
}
