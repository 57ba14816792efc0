package service

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"github.com/venuecount/stocktake-api/pkg/apperror"
)

// SuggestedLine is one replenishment suggestion. ItemID is the product id,
// or the area item's own id for orphan items. Lines are recomputed fresh on
// every build and are never authoritative state.
type SuggestedLine struct {
	ItemID        uuid.UUID          `json:"item_id"`
	Orphan        bool               `json:"orphan,omitempty"`
	Name          string             `json:"name"`
	Quantity      float64            `json:"quantity"`
	UnitCost      int64              `json:"unit_cost"` // cents
	NeedsPar      bool               `json:"needs_par"`
	NeedsSupplier bool               `json:"needs_supplier"`
	Reason        enum.SuggestReason `json:"reason"`
}

// BuildOptions controls a suggested-order build.
type BuildOptions struct {
	// RoundToPack rounds suggested quantities up to the next pack multiple.
	// Rounding never rounds down; under-ordering is disallowed.
	RoundToPack bool
	// DefaultPar is the quantity suggested for a zero-stock item whose pack
	// size is absent or zero.
	DefaultPar float64
}

// SuggestedOrderMap buckets suggested lines per supplier. Keys are supplier
// UUID strings; any spelling of "no supplier" resolves to the sentinel
// unassigned bucket, so lookups by keys that were never populated stay safe.
type SuggestedOrderMap struct {
	unassignedKey string
	buckets       map[string][]SuggestedLine
}

// noSupplierAliases are raw keys callers have historically used to mean "no
// supplier". All of them resolve to the unassigned bucket.
var noSupplierAliases = map[string]bool{
	"":            true,
	"none":        true,
	"nosupplier":  true,
	"no_supplier": true,
	"no supplier": true,
	"unassigned":  true,
}

// ResolveSupplierKey maps a raw bucket key to its canonical form.
func (m *SuggestedOrderMap) ResolveSupplierKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if noSupplierAliases[key] || key == uuid.Nil.String() {
		return m.unassignedKey
	}
	return key
}

// UnassignedKey returns the canonical key of the sentinel bucket.
func (m *SuggestedOrderMap) UnassignedKey() string {
	return m.unassignedKey
}

// Lines returns the bucket for a raw supplier key, resolving aliases.
// Unknown keys yield an empty bucket, never a panic.
func (m *SuggestedOrderMap) Lines(raw string) []SuggestedLine {
	return m.buckets[m.ResolveSupplierKey(raw)]
}

// SupplierKeys returns every canonical bucket key, populated or empty.
func (m *SuggestedOrderMap) SupplierKeys() []string {
	keys := make([]string, 0, len(m.buckets))
	for k := range m.buckets {
		keys = append(keys, k)
	}
	return keys
}

// Buckets exposes the key→lines mapping for serialization.
func (m *SuggestedOrderMap) Buckets() map[string][]SuggestedLine {
	return m.buckets
}

// getOrCreateBucket is the explicit accessor behind every write; missing
// keys get a live empty bucket.
func (m *SuggestedOrderMap) getOrCreateBucket(raw string) []SuggestedLine {
	key := m.ResolveSupplierKey(raw)
	if _, ok := m.buckets[key]; !ok {
		m.buckets[key] = []SuggestedLine{}
	}
	return m.buckets[key]
}

func (m *SuggestedOrderMap) append(raw string, line SuggestedLine) {
	key := m.ResolveSupplierKey(raw)
	m.buckets[key] = append(m.getOrCreateBucket(key), line)
}

// roundUpToPack rounds a quantity up to the next multiple of packSize.
func roundUpToPack(qty float64, packSize int) float64 {
	if packSize <= 0 {
		return qty
	}
	return math.Ceil(qty/float64(packSize)) * float64(packSize)
}

// BuildSuggestedOrders computes a per-supplier replenishment plan from the
// venue's catalog, supplier list and counted items. The suppliers slice must
// include the venue's sentinel unassigned supplier; every supplier appears
// in the result even with zero suggestions so downstream screens can
// enumerate all buckets.
func BuildSuggestedOrders(products []entity.Product, suppliers []entity.Supplier, items []entity.AreaItem, opts BuildOptions) (*SuggestedOrderMap, error) {
	var sentinel *entity.Supplier
	for i := range suppliers {
		if suppliers[i].IsUnassigned {
			sentinel = &suppliers[i]
			break
		}
	}
	if sentinel == nil {
		return nil, apperror.NewBadRequestError("Supplier list is missing the unassigned sentinel")
	}

	result := &SuggestedOrderMap{
		unassignedKey: sentinel.ID.String(),
		buckets:       make(map[string][]SuggestedLine),
	}
	for i := range suppliers {
		result.getOrCreateBucket(suppliers[i].ID.String())
	}

	snap := AggregateOnHand(items)

	for i := range products {
		p := &products[i]
		onHand, counted := snap.OnHand(p.ID)
		if !counted {
			continue
		}

		var line SuggestedLine
		switch {
		case p.HasPar():
			deficit := *p.ParLevel - onHand
			if deficit <= 0 {
				continue
			}
			qty := deficit
			if opts.RoundToPack && p.PackSize != nil {
				qty = roundUpToPack(deficit, *p.PackSize)
			}
			line = SuggestedLine{
				ItemID:   p.ID,
				Name:     p.Name,
				Quantity: qty,
				UnitCost: p.UnitCost,
				Reason:   enum.SuggestReasonBelowPar,
			}
		case onHand <= 0:
			line = SuggestedLine{
				ItemID:   p.ID,
				Name:     p.Name,
				Quantity: onePack(p.PackSize, opts.DefaultPar),
				UnitCost: p.UnitCost,
				NeedsPar: true,
				Reason:   enum.SuggestReasonNoParZeroStock,
			}
		default:
			// No usable par but stock is positive: nothing to suggest.
			continue
		}

		bucketKey := ""
		if p.SupplierID != nil {
			bucketKey = p.SupplierID.String()
		} else {
			line.NeedsSupplier = true
			line.Reason = enum.SuggestReasonNoSupplier
		}
		result.append(bucketKey, line)
	}

	for i := range snap.Orphans {
		item := &snap.Orphans[i]
		if item.LastCount != nil && *item.LastCount > 0 {
			continue
		}
		line := SuggestedLine{
			ItemID:   item.ID,
			Orphan:   true,
			Name:     item.Name,
			Quantity: onePack(item.PackSize, opts.DefaultPar),
			NeedsPar: true,
			Reason:   enum.SuggestReasonNoParZeroStock,
		}
		if item.UnitCost != nil {
			line.UnitCost = *item.UnitCost
		}
		bucketKey := ""
		if item.SupplierID != nil {
			bucketKey = item.SupplierID.String()
		} else {
			line.NeedsSupplier = true
			line.Reason = enum.SuggestReasonNoSupplier
		}
		result.append(bucketKey, line)
	}

	return result, nil
}

// onePack is the fallback quantity for items with no usable par: one reorder
// pack, or the caller's default when the pack size is absent or zero.
func onePack(packSize *int, defaultPar float64) float64 {
	if packSize != nil && *packSize > 0 {
		return float64(*packSize)
	}
	return defaultPar
}
