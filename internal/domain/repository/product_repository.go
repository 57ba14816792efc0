package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListAll returns the full venue catalog without pagination. The suggested
	// order and variance builds aggregate over every product.
	ListAll(ctx context.Context) ([]entity.Product, error)
	// AssignSupplier sets (or clears) the supplier reference on a product
	AssignSupplier(ctx context.Context, id uuid.UUID, supplierID *uuid.UUID) error
	// SetParLevel sets (or clears) the par level on a product
	SetParLevel(ctx context.Context, id uuid.UUID, par *float64) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	SupplierID *uuid.UUID
	// MissingPar limits results to products with no usable par level
	MissingPar bool
	// MissingSupplier limits results to products with no supplier reference
	MissingSupplier bool
	SortBy          string
	SortOrder       string
}
