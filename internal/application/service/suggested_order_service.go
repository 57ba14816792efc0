package service

import (
	"context"

	"github.com/venuecount/stocktake-api/internal/domain/repository"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/pkg/apperror"
)

// SuggestedOrderService builds per-supplier replenishment plans from the
// venue's current counts and par levels.
type SuggestedOrderService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.AreaItemRepository
	defaults     BuildOptions
}

// NewSuggestedOrderService creates a new suggested order service. The
// defaults come from configuration and apply when a request does not
// override them.
func NewSuggestedOrderService(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.AreaItemRepository,
	defaults BuildOptions,
) *SuggestedOrderService {
	return &SuggestedOrderService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		defaults:     defaults,
	}
}

// Options applies per-request overrides to the configured build defaults.
func (s *SuggestedOrderService) Options(roundToPack *bool, defaultPar *float64) BuildOptions {
	opts := s.defaults
	if roundToPack != nil {
		opts.RoundToPack = *roundToPack
	}
	if defaultPar != nil {
		opts.DefaultPar = *defaultPar
	}
	return opts
}

// Build computes a fresh replenishment plan. The reads are sequential and
// not transactionally isolated: counts written by another session during the
// walk may or may not be included. The plan is display/draft input, never
// authoritative state, so this is acceptable.
func (s *SuggestedOrderService) Build(ctx context.Context, opts BuildOptions) (*SuggestedOrderMap, error) {
	if _, ok := infraRepo.GetVenueID(ctx); !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}

	// Ensure the sentinel exists before listing so it lands in the bucket set.
	if _, err := s.supplierRepo.GetUnassigned(ctx); err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.supplierRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return BuildSuggestedOrders(products, suppliers, items, opts)
}
