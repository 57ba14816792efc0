package service

import (
	"math"
	"regexp"
	"strings"

	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
)

// Quality gate: scores how trustworthy a parsed invoice is against the
// submitted order before it is allowed to update purchasing records.

const (
	qualityScoreFloor = 0.15
	qualityScoreCeil  = 0.98

	// defaultParserConfidence is assumed when the parser reports none.
	defaultParserConfidence = 0.5

	// minSubstringLen guards the containment fallback against trivial
	// matches on short tokens.
	minSubstringLen = 4

	tierHighThreshold   = 0.95
	tierMediumThreshold = 0.80
)

// GateDecision is the caller-facing routing decision for a scored invoice
type GateDecision string

const (
	// GateDecisionAutoPost: safe to post without human confirmation
	GateDecisionAutoPost GateDecision = "auto_post"
	// GateDecisionReview: stage for explicit confirmation
	GateDecisionReview GateDecision = "review"
	// GateDecisionManual: suggest line-by-line manual entry
	GateDecisionManual GateDecision = "manual"
)

// InvoiceLine is one parsed line from the external invoice parser
type InvoiceLine struct {
	Name      string   `json:"name"`
	Code      string   `json:"code,omitempty"`
	Quantity  float64  `json:"quantity"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// LineMatch pairs an invoice line with the order line it matched
type LineMatch struct {
	OrderLine   *entity.OrderLine
	InvoiceLine *InvoiceLine
}

// QualityBreakdown carries the components of the quality score
type QualityBreakdown struct {
	OverlapRatio float64 `json:"overlap_ratio"`
	AvgPriceDiff float64 `json:"avg_price_diff"`
	MissRatio    float64 `json:"miss_ratio"`
	Score        float64 `json:"score"`
}

// GateResult is the outcome of applying the quality gate to one parse attempt
type GateResult struct {
	POMismatch      bool                `json:"po_mismatch"`
	FinalConfidence float64             `json:"final_confidence"`
	Tier            enum.ConfidenceTier `json:"tier"`
	Breakdown       QualityBreakdown    `json:"breakdown"`

	MatchedCount      int `json:"matched_count"`
	UnmatchedCount    int `json:"unmatched_count"`
	PriceChangedCount int `json:"price_changed_count"`

	OrderedTotal  int64 `json:"ordered_total"`  // cents
	InvoicedTotal int64 `json:"invoiced_total"` // cents

	Matches []LineMatch `json:"-"`
}

// Decision maps the gate result to the caller's routing contract. A PO
// mismatch always requires manual resolution regardless of score.
func (r *GateResult) Decision() GateDecision {
	if r.POMismatch {
		return GateDecisionManual
	}
	switch r.Tier {
	case enum.ConfidenceTierHigh:
		return GateDecisionAutoPost
	case enum.ConfidenceTierMedium:
		return GateDecisionReview
	default:
		return GateDecisionManual
	}
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)
var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeName canonicalizes a product name for comparison: lowercase,
// strip everything outside [a-z0-9\s], collapse whitespace, trim.
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = nonAlnumRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// MatchLines pairs invoice lines with order lines. Exact normalized-name
// matches win first (index lookup); remaining lines fall back to a linear
// scan testing mutual substring containment, skipped when the shorter name
// has fewer than four characters. First satisfying order line wins; this is
// best effort, not a globally optimal assignment.
func MatchLines(orderLines []entity.OrderLine, invoiceLines []InvoiceLine) (matches []LineMatch, unmatched []InvoiceLine) {
	index := make(map[string]int, len(orderLines))
	for i := range orderLines {
		key := NormalizeName(orderLines[i].Name)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	claimed := make(map[int]bool, len(orderLines))

	for i := range invoiceLines {
		inv := &invoiceLines[i]
		key := NormalizeName(inv.Name)

		if j, ok := index[key]; ok && !claimed[j] && key != "" {
			claimed[j] = true
			matches = append(matches, LineMatch{OrderLine: &orderLines[j], InvoiceLine: inv})
			continue
		}

		found := false
		for j := range orderLines {
			if claimed[j] {
				continue
			}
			if namesContain(NormalizeName(orderLines[j].Name), key) {
				claimed[j] = true
				matches = append(matches, LineMatch{OrderLine: &orderLines[j], InvoiceLine: inv})
				found = true
				break
			}
		}
		if !found {
			unmatched = append(unmatched, *inv)
		}
	}
	return matches, unmatched
}

// namesContain tests mutual substring containment between two normalized
// names, requiring the shorter one to be at least minSubstringLen long.
func namesContain(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	shorter := a
	if len(b) < len(a) {
		shorter = b
	}
	if len(shorter) < minSubstringLen {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ComputeQualityScore derives the quality breakdown from a match run.
// The score is clamped to [0.15, 0.98] for any finite non-negative input,
// including empty line sets.
func ComputeQualityScore(orderLineCount, invoiceLineCount int, matches []LineMatch, unmatchedInvoice int) QualityBreakdown {
	larger := orderLineCount
	if invoiceLineCount > larger {
		larger = invoiceLineCount
	}
	if larger < 1 {
		larger = 1
	}
	overlap := float64(len(matches)) / float64(larger)

	var diffSum float64
	var priced int
	for _, m := range matches {
		if m.InvoiceLine.UnitPrice == nil {
			continue
		}
		orderPrice := m.OrderLine.GetUnitCostDecimal()
		invoicePrice := *m.InvoiceLine.UnitPrice
		if orderPrice <= 0 || invoicePrice <= 0 {
			continue
		}
		diff := math.Abs(orderPrice-invoicePrice) / math.Max(orderPrice, invoicePrice)
		diffSum += math.Min(1, diff)
		priced++
	}
	avgPriceDiff := 0.0
	if priced > 0 {
		avgPriceDiff = diffSum / float64(priced)
	}

	missRatio := 0.0
	if invoiceLineCount > 0 {
		missRatio = float64(unmatchedInvoice) / float64(invoiceLineCount)
	}

	score := 0.65*overlap + 0.25*(1-math.Min(1, avgPriceDiff)) + 0.10*(1-missRatio)
	score = math.Max(qualityScoreFloor, math.Min(qualityScoreCeil, score))

	return QualityBreakdown{
		OverlapRatio: overlap,
		AvgPriceDiff: avgPriceDiff,
		MissRatio:    missRatio,
		Score:        score,
	}
}

// TierForConfidence buckets a final confidence into the caller-facing tier.
func TierForConfidence(confidence float64) enum.ConfidenceTier {
	switch {
	case confidence >= tierHighThreshold:
		return enum.ConfidenceTierHigh
	case confidence >= tierMediumThreshold:
		return enum.ConfidenceTierMedium
	default:
		return enum.ConfidenceTierLow
	}
}

// ApplyQualityGate runs the full gate: line matching, quality score, the PO
// override, and the parser-confidence ceiling.
//
// The quality score is a ceiling on the raw parser confidence, never a
// credit toward it. Differing non-empty PO numbers force the final
// confidence to zero no matter how well the lines match.
func ApplyQualityGate(orderPO, invoicePO string, parserConfidence *float64, orderLines []entity.OrderLine, invoiceLines []InvoiceLine) *GateResult {
	matches, unmatched := MatchLines(orderLines, invoiceLines)
	breakdown := ComputeQualityScore(len(orderLines), len(invoiceLines), matches, len(unmatched))

	result := &GateResult{
		Breakdown:      breakdown,
		MatchedCount:   len(matches),
		UnmatchedCount: len(unmatched),
		Matches:        matches,
	}

	for _, line := range orderLines {
		result.OrderedTotal += int64(math.Round(line.Quantity * float64(line.UnitCost)))
	}
	for _, line := range invoiceLines {
		if line.UnitPrice != nil {
			result.InvoicedTotal += int64(math.Round(line.Quantity * *line.UnitPrice * 100))
		}
	}
	for _, m := range matches {
		if m.InvoiceLine.UnitPrice == nil {
			continue
		}
		orderPrice := m.OrderLine.GetUnitCostDecimal()
		if orderPrice > 0 && *m.InvoiceLine.UnitPrice > 0 && orderPrice != *m.InvoiceLine.UnitPrice {
			result.PriceChangedCount++
		}
	}

	orderPO = strings.TrimSpace(orderPO)
	invoicePO = strings.TrimSpace(invoicePO)
	if orderPO != "" && invoicePO != "" && orderPO != invoicePO {
		result.POMismatch = true
		result.FinalConfidence = 0
		result.Tier = TierForConfidence(0)
		return result
	}

	parsed := defaultParserConfidence
	if parserConfidence != nil {
		parsed = *parserConfidence
	}
	result.FinalConfidence = math.Min(parsed, breakdown.Score)
	result.Tier = TierForConfidence(result.FinalConfidence)
	return result
}
