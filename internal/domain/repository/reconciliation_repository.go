package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
)

// ReconciliationRepository defines the interface for reconciliation snapshot
// data operations. Records are append-only after creation.
type ReconciliationRepository interface {
	Create(ctx context.Context, record *entity.ReconciliationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReconciliationRecord, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.ReconciliationRecord, error)
}
