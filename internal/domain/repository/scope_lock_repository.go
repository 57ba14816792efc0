package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
)

// ScopeLockRepository defines the interface for supplier scope lock
// operations. Claim must be a transactional read-modify-write: read any
// existing lock for the supplier, decide, and insert only when no conflicting
// lock exists, relying on the (venue, supplier) unique index to reject racing
// claims.
type ScopeLockRepository interface {
	// GetBySupplier returns the current lock for a supplier, or nil
	GetBySupplier(ctx context.Context, supplierID uuid.UUID) (*entity.SupplierScopeLock, error)
	// Claim atomically inserts the lock if no lock exists for the supplier.
	// Returns the winning lock (the existing one on conflict) and whether the
	// claim succeeded.
	Claim(ctx context.Context, lock *entity.SupplierScopeLock) (*entity.SupplierScopeLock, bool, error)
	// Release removes the lock for a supplier (when the draft is submitted or discarded)
	Release(ctx context.Context, supplierID uuid.UUID) error
}
