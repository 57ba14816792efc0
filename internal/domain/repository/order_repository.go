package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"github.com/venuecount/stocktake-api/pkg/pagination"
)

// OrderRepository defines the interface for supplier order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// CreateWithLines creates an order and its lines as one atomic group.
	// Draft creation across suppliers calls this once per supplier; each call
	// commits or rolls back independently.
	CreateWithLines(ctx context.Context, order *entity.Order, lines []entity.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderLineRepository defines the interface for order line data operations
type OrderLineRepository interface {
	Create(ctx context.Context, line *entity.OrderLine) error
	CreateBatch(ctx context.Context, lines []entity.OrderLine) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
