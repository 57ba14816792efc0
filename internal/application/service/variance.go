package service

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
)

// VarianceRow reports one product's discrepancy between par and on-hand,
// valued in currency units.
type VarianceRow struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Par         float64   `json:"par"`
	OnHand      float64   `json:"on_hand"`
	Variance    float64   `json:"variance"`     // on-hand − par
	UnitCost    float64   `json:"unit_cost"`    // currency units
	ValueImpact float64   `json:"value_impact"` // variance × unit cost
}

// VarianceResult is the full shortage/excess report for a venue.
// Products without a defined par level are excluded entirely: they are not
// "no variance", they are not applicable.
type VarianceResult struct {
	Shortages     []VarianceRow `json:"shortages"`
	Excesses      []VarianceRow `json:"excesses"`
	ShortageValue float64       `json:"shortage_value"` // ≤ 0 by construction
	ExcessValue   float64       `json:"excess_value"`   // ≥ 0 by construction
}

// ComputeVariance builds the variance report from the catalog and the
// current count snapshot. A product counted nowhere has an on-hand of zero.
func ComputeVariance(products []entity.Product, items []entity.AreaItem) *VarianceResult {
	snap := AggregateOnHand(items)
	result := &VarianceResult{}

	for i := range products {
		p := &products[i]
		if p.ParLevel == nil {
			continue
		}
		par := *p.ParLevel
		onHand, _ := snap.OnHand(p.ID)
		variance := onHand - par
		if variance == 0 {
			continue
		}

		unitCost := p.GetUnitCostDecimal()
		row := VarianceRow{
			ProductID:   p.ID,
			Name:        p.Name,
			Par:         par,
			OnHand:      onHand,
			Variance:    variance,
			UnitCost:    unitCost,
			ValueImpact: variance * unitCost,
		}
		if variance < 0 {
			result.Shortages = append(result.Shortages, row)
			result.ShortageValue += row.ValueImpact
		} else {
			result.Excesses = append(result.Excesses, row)
			result.ExcessValue += row.ValueImpact
		}
	}

	sortVarianceRows(result.Shortages)
	sortVarianceRows(result.Excesses)
	return result
}

// sortVarianceRows orders rows by descending absolute value impact, ties
// broken by name ascending.
func sortVarianceRows(rows []VarianceRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ai, aj := math.Abs(rows[i].ValueImpact), math.Abs(rows[j].ValueImpact)
		if ai != aj {
			return ai > aj
		}
		return rows[i].Name < rows[j].Name
	})
}
