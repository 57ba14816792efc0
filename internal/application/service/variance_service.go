package service

import (
	"context"

	"github.com/venuecount/stocktake-api/internal/domain/repository"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/pkg/apperror"
)

// VarianceService reports par vs. on-hand discrepancy valued in currency.
type VarianceService struct {
	productRepo repository.ProductRepository
	itemRepo    repository.AreaItemRepository
}

// NewVarianceService creates a new variance service
func NewVarianceService(productRepo repository.ProductRepository, itemRepo repository.AreaItemRepository) *VarianceService {
	return &VarianceService{productRepo: productRepo, itemRepo: itemRepo}
}

// Report computes the venue's shortage/excess report from the current count
// snapshot.
func (s *VarianceService) Report(ctx context.Context) (*VarianceResult, error) {
	if _, ok := infraRepo.GetVenueID(ctx); !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeVariance(products, items), nil
}
