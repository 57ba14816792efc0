package service

import (
	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
)

// OnHandSnapshot is the aggregated view of a venue's last count cycle:
// per-product totals summed across every area, plus the counted items that
// carry no catalog link.
type OnHandSnapshot struct {
	// ByProduct sums last-counted quantities per product id. A product that
	// was never counted anywhere has no entry.
	ByProduct map[uuid.UUID]float64
	// Orphans are counted items with no product reference.
	Orphans []entity.AreaItem
}

// AggregateOnHand folds every counting-location item into a per-product
// on-hand snapshot. Items with a nil LastCount contribute nothing but still
// register the product as counted.
func AggregateOnHand(items []entity.AreaItem) *OnHandSnapshot {
	snap := &OnHandSnapshot{ByProduct: make(map[uuid.UUID]float64)}
	for i := range items {
		item := &items[i]
		if item.IsOrphan() {
			snap.Orphans = append(snap.Orphans, *item)
			continue
		}
		qty := 0.0
		if item.LastCount != nil {
			qty = *item.LastCount
		}
		snap.ByProduct[*item.ProductID] += qty
	}
	return snap
}

// OnHand returns the aggregate for a product, and whether it was counted at all.
func (s *OnHandSnapshot) OnHand(productID uuid.UUID) (float64, bool) {
	qty, ok := s.ByProduct[productID]
	return qty, ok
}
