package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	domainRepo "github.com/venuecount/stocktake-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scopeLockRepository struct {
	db *gorm.DB
}

// NewScopeLockRepository creates a new scope lock repository
func NewScopeLockRepository(db *gorm.DB) domainRepo.ScopeLockRepository {
	return &scopeLockRepository{db: db}
}

func (r *scopeLockRepository) GetBySupplier(ctx context.Context, supplierID uuid.UUID) (*entity.SupplierScopeLock, error) {
	var lock entity.SupplierScopeLock
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		First(&lock, "supplier_id = ?", supplierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lock, err
}

// Claim inserts the lock, relying on the (venue, supplier) unique index to
// reject racing claims. ON CONFLICT DO NOTHING turns a lost race into zero
// affected rows instead of an error, after which the winning row is read back.
func (r *scopeLockRepository) Claim(ctx context.Context, lock *entity.SupplierScopeLock) (*entity.SupplierScopeLock, bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "venue_id"}, {Name: "supplier_id"}},
			DoNothing: true,
		}).
		Create(lock)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		return lock, true, nil
	}

	winner, err := r.GetBySupplier(ctx, lock.SupplierID)
	if err != nil {
		return nil, false, err
	}
	if winner == nil {
		// The conflicting lock was released between insert and read.
		// Treat as lost; the caller may retry.
		return nil, false, nil
	}
	return winner, false, nil
}

func (r *scopeLockRepository) Release(ctx context.Context, supplierID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Where("supplier_id = ?", supplierID).
		Delete(&entity.SupplierScopeLock{}).Error
}
