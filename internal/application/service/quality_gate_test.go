package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
)

func fptr(v float64) *float64 { return &v }

func orderLine(name string, qty float64, unitCostCents int64) entity.OrderLine {
	return entity.OrderLine{Name: name, Quantity: qty, UnitCost: unitCostCents}
}

func invoiceLine(name string, qty float64, price *float64) InvoiceLine {
	return InvoiceLine{Name: name, Quantity: qty, UnitPrice: price}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Grey Goose Vodka", "grey goose vodka"},
		{"strips punctuation", "  Gordon's Gin (70cl)! ", "gordons gin 70cl"},
		{"collapses whitespace", "house\t red   wine", "house red wine"},
		{"drops non ascii letters", "café crème", "caf crme"},
		{"empty stays empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeName(got), "normalization must be idempotent")
		})
	}
}

func TestMatchLines_ExactNormalizedMatch(t *testing.T) {
	orders := []entity.OrderLine{
		orderLine("Grey Goose Vodka", 2, 3500),
		orderLine("House Red Wine", 6, 900),
	}
	invoices := []InvoiceLine{
		invoiceLine("GREY GOOSE VODKA!", 2, fptr(35.00)),
		invoiceLine("house red wine", 6, fptr(9.00)),
	}

	matches, unmatched := MatchLines(orders, invoices)
	require.Len(t, matches, 2)
	assert.Empty(t, unmatched)
	assert.Equal(t, "Grey Goose Vodka", matches[0].OrderLine.Name)
	assert.Equal(t, "House Red Wine", matches[1].OrderLine.Name)
}

func TestMatchLines_SubstringFallback(t *testing.T) {
	orders := []entity.OrderLine{
		orderLine("House Red Wine 75cl", 6, 900),
	}
	invoices := []InvoiceLine{
		invoiceLine("House Red Wine", 6, fptr(9.00)),
	}

	matches, unmatched := MatchLines(orders, invoices)
	require.Len(t, matches, 1)
	assert.Empty(t, unmatched)
	assert.Equal(t, "House Red Wine 75cl", matches[0].OrderLine.Name)
}

func TestMatchLines_ShortNamesNeverFallbackMatch(t *testing.T) {
	// "ipa" is under the containment length guard, so it must not absorb
	// into the longer order name.
	orders := []entity.OrderLine{
		orderLine("IPA Craft Beer", 24, 250),
	}
	invoices := []InvoiceLine{
		invoiceLine("IPA", 24, fptr(2.50)),
	}

	matches, unmatched := MatchLines(orders, invoices)
	assert.Empty(t, matches)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "IPA", unmatched[0].Name)
}

func TestMatchLines_OrderLineClaimedOnce(t *testing.T) {
	orders := []entity.OrderLine{
		orderLine("Tonic Water", 12, 120),
	}
	invoices := []InvoiceLine{
		invoiceLine("Tonic Water", 6, fptr(1.20)),
		invoiceLine("Tonic Water", 6, fptr(1.20)),
	}

	matches, unmatched := MatchLines(orders, invoices)
	require.Len(t, matches, 1)
	require.Len(t, unmatched, 1)
}

func TestComputeQualityScore_Bounds(t *testing.T) {
	t.Run("empty inputs stay within clamp", func(t *testing.T) {
		b := ComputeQualityScore(0, 0, nil, 0)
		assert.InDelta(t, 0.35, b.Score, 1e-9)
		assert.Zero(t, b.OverlapRatio)
	})

	t.Run("total miss bottoms out above the floor", func(t *testing.T) {
		// With zero matches there is no priced pair, so the price term
		// contributes its full weight and 0.25 is the lowest reachable score.
		b := ComputeQualityScore(1, 1, nil, 1)
		assert.InDelta(t, 0.25, b.Score, 1e-9)
		assert.GreaterOrEqual(t, b.Score, 0.15)
	})

	t.Run("perfect match hits the ceiling", func(t *testing.T) {
		orders := []entity.OrderLine{orderLine("Lime Juice", 4, 300)}
		invoices := []InvoiceLine{invoiceLine("Lime Juice", 4, fptr(3.00))}
		matches, unmatched := MatchLines(orders, invoices)
		require.Len(t, matches, 1)
		b := ComputeQualityScore(1, 1, matches, len(unmatched))
		assert.InDelta(t, 0.98, b.Score, 1e-9)
		assert.Zero(t, b.AvgPriceDiff)
		assert.Zero(t, b.MissRatio)
	})
}

func TestComputeQualityScore_PriceDiffAveragedOverPricedMatches(t *testing.T) {
	orders := []entity.OrderLine{
		orderLine("Gin Bottle", 2, 2000),   // ordered at 20.00
		orderLine("Soda Syphon", 1, 1000),  // no invoice price
	}
	invoices := []InvoiceLine{
		invoiceLine("Gin Bottle", 2, fptr(25.00)), // 5/25 = 0.2 relative diff
		invoiceLine("Soda Syphon", 1, nil),
	}
	matches, unmatched := MatchLines(orders, invoices)
	require.Len(t, matches, 2)

	b := ComputeQualityScore(2, 2, matches, len(unmatched))
	assert.InDelta(t, 0.2, b.AvgPriceDiff, 1e-9)
}

func TestTierForConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		want       enum.ConfidenceTier
	}{
		{0.98, enum.ConfidenceTierHigh},
		{0.95, enum.ConfidenceTierHigh},
		{0.9499, enum.ConfidenceTierMedium},
		{0.80, enum.ConfidenceTierMedium},
		{0.7999, enum.ConfidenceTierLow},
		{0, enum.ConfidenceTierLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForConfidence(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestApplyQualityGate_POMismatchForcesZero(t *testing.T) {
	orders := []entity.OrderLine{orderLine("Grey Goose Vodka", 2, 3500)}
	invoices := []InvoiceLine{invoiceLine("Grey Goose Vodka", 2, fptr(35.00))}

	result := ApplyQualityGate("PO-123", "PO-456", fptr(0.99), orders, invoices)

	assert.True(t, result.POMismatch)
	assert.Zero(t, result.FinalConfidence)
	assert.Equal(t, enum.ConfidenceTierLow, result.Tier)
	assert.Equal(t, GateDecisionManual, result.Decision())
	// The match run still reports its tallies for the audit record.
	assert.Equal(t, 1, result.MatchedCount)
}

func TestApplyQualityGate_BlankPONeverMismatches(t *testing.T) {
	orders := []entity.OrderLine{orderLine("Tonic Water", 12, 120)}
	invoices := []InvoiceLine{invoiceLine("Tonic Water", 12, fptr(1.20))}

	result := ApplyQualityGate("PO-123", "", fptr(0.99), orders, invoices)
	assert.False(t, result.POMismatch)

	result = ApplyQualityGate("  PO-123  ", "PO-123", fptr(0.99), orders, invoices)
	assert.False(t, result.POMismatch)
}

func TestApplyQualityGate_ParserConfidenceIsACeiling(t *testing.T) {
	orders := []entity.OrderLine{orderLine("Lime Juice", 4, 300)}
	invoices := []InvoiceLine{invoiceLine("Lime Juice", 4, fptr(3.00))}

	// Perfect lines cannot lift a mediocre parse above its own confidence.
	result := ApplyQualityGate("PO-1", "PO-1", fptr(0.90), orders, invoices)
	assert.InDelta(t, 0.90, result.FinalConfidence, 1e-9)
	assert.Equal(t, enum.ConfidenceTierMedium, result.Tier)
	assert.Equal(t, GateDecisionReview, result.Decision())
}

func TestApplyQualityGate_MissingParserConfidenceDefaults(t *testing.T) {
	orders := []entity.OrderLine{orderLine("Lime Juice", 4, 300)}
	invoices := []InvoiceLine{invoiceLine("Lime Juice", 4, fptr(3.00))}

	result := ApplyQualityGate("PO-1", "PO-1", nil, orders, invoices)
	assert.InDelta(t, 0.5, result.FinalConfidence, 1e-9)
	assert.Equal(t, enum.ConfidenceTierLow, result.Tier)
	assert.Equal(t, GateDecisionManual, result.Decision())
}

func TestApplyQualityGate_HighConfidenceAutoPosts(t *testing.T) {
	orders := []entity.OrderLine{
		orderLine("Grey Goose Vodka", 2, 3500),
		orderLine("Tonic Water", 12, 120),
	}
	invoices := []InvoiceLine{
		invoiceLine("Grey Goose Vodka", 2, fptr(35.00)),
		invoiceLine("Tonic Water", 12, fptr(1.20)),
	}

	result := ApplyQualityGate("PO-1", "PO-1", fptr(0.99), orders, invoices)
	assert.InDelta(t, 0.98, result.FinalConfidence, 1e-9)
	assert.Equal(t, enum.ConfidenceTierHigh, result.Tier)
	assert.Equal(t, GateDecisionAutoPost, result.Decision())
}

func TestApplyQualityGate_TotalsAndPriceChanges(t *testing.T) {
	orders := []entity.OrderLine{
		orderLine("Gin Bottle", 2, 2000), // 4000 cents ordered
	}
	invoices := []InvoiceLine{
		invoiceLine("Gin Bottle", 2, fptr(22.50)), // 4500 cents invoiced
	}

	result := ApplyQualityGate("PO-1", "PO-1", fptr(0.99), orders, invoices)
	assert.Equal(t, int64(4000), result.OrderedTotal)
	assert.Equal(t, int64(4500), result.InvoicedTotal)
	assert.Equal(t, 1, result.PriceChangedCount)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Zero(t, result.UnmatchedCount)
}
