package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	domainRepo "github.com/venuecount/stocktake-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reconciliationRepository struct {
	db *gorm.DB
}

// NewReconciliationRepository creates a new reconciliation repository
func NewReconciliationRepository(db *gorm.DB) domainRepo.ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Create(ctx context.Context, record *entity.ReconciliationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *reconciliationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReconciliationRecord, error) {
	var record entity.ReconciliationRecord
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *reconciliationRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.ReconciliationRecord, error) {
	var records []entity.ReconciliationRecord
	err := r.db.WithContext(ctx).
		Scopes(VenueScope(ctx)).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
