package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/pkg/apperror"
	"github.com/venuecount/stocktake-api/pkg/invoiceparser"
	"github.com/venuecount/stocktake-api/pkg/reconcile"
)

// InvoiceParser extracts lines from a stored invoice file. Implemented by
// the hosted extraction service client; this core never reads file formats.
type InvoiceParser interface {
	Parse(ctx context.Context, storagePath, source string) (*invoiceparser.ParseResult, error)
}

// RemoteReconciler scores an invoice remotely (alternate deployment mode).
type RemoteReconciler interface {
	Reconcile(ctx context.Context, req *reconcile.Request) (*reconcile.Response, error)
}

// ReconciliationService runs the invoice quality gate against submitted
// orders and persists audit snapshots.
type ReconciliationService struct {
	orderRepo repository.OrderRepository
	reconRepo repository.ReconciliationRepository
	parser    InvoiceParser
	remote    RemoteReconciler // nil in local scoring mode
}

// NewReconciliationService creates a new reconciliation service. Pass a nil
// remote client to score locally.
func NewReconciliationService(
	orderRepo repository.OrderRepository,
	reconRepo repository.ReconciliationRepository,
	parser InvoiceParser,
	remote RemoteReconciler,
) *ReconciliationService {
	return &ReconciliationService{
		orderRepo: orderRepo,
		reconRepo: reconRepo,
		parser:    parser,
		remote:    remote,
	}
}

// ReconcileOrderInput identifies the stored invoice file to score against an order.
type ReconcileOrderInput struct {
	OrderID     uuid.UUID
	Source      string // "csv", "pdf", ...
	StoragePath string
}

// ReconcileOutput is the caller-facing result of one reconcile attempt.
// AuditWriteError reports a failed best-effort snapshot write; the primary
// result is still valid when it is non-nil.
type ReconcileOutput struct {
	Result          *GateResult                  `json:"result"`
	Decision        GateDecision                 `json:"decision"`
	Record          *entity.ReconciliationRecord `json:"record,omitempty"`
	Warnings        []string                     `json:"warnings,omitempty"`
	AuditWriteError error                        `json:"-"`
}

// ReconcileOrder parses the stored invoice, applies the quality gate and
// records an audit snapshot. The snapshot write is best effort: its failure
// is logged and surfaced on the output, never returned as the operation's error.
func (s *ReconciliationService) ReconcileOrder(ctx context.Context, input *ReconcileOrderInput) (*ReconcileOutput, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}
	if input.OrderID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Order ID is required")
	}
	if input.StoragePath == "" {
		return nil, apperror.NewBadRequestError("Invoice storage path is required")
	}

	order, err := s.orderRepo.GetWithLines(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusDraft {
		return nil, apperror.NewBadRequestError("Cannot reconcile an invoice against a draft order")
	}

	parsed, err := s.parser.Parse(ctx, input.StoragePath, input.Source)
	if err != nil {
		return nil, err
	}

	var result *GateResult
	if s.remote != nil {
		result, err = s.reconcileRemote(ctx, venueID, order, input, parsed)
		if err != nil {
			return nil, err
		}
	} else {
		lines := make([]InvoiceLine, len(parsed.Lines))
		for i, l := range parsed.Lines {
			lines[i] = InvoiceLine{Name: l.Name, Code: l.Code, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		}
		result = ApplyQualityGate(order.PONumber, parsed.Invoice.PONumber, parsed.Confidence, order.Lines, lines)
	}

	output := &ReconcileOutput{
		Result:   result,
		Decision: result.Decision(),
		Warnings: parsed.Warnings,
	}

	// A snapshot is recorded even on PO mismatch, for audit purposes.
	record := &entity.ReconciliationRecord{
		VenueID:           venueID,
		OrderID:           order.ID,
		Source:            input.Source,
		StoragePath:       input.StoragePath,
		InvoicePO:         parsed.Invoice.PONumber,
		POMatch:           !result.POMismatch,
		MatchedCount:      result.MatchedCount,
		UnmatchedCount:    result.UnmatchedCount,
		PriceChangedCount: result.PriceChangedCount,
		OrderedTotal:      result.OrderedTotal,
		InvoicedTotal:     result.InvoicedTotal,
		OverlapRatio:      result.Breakdown.OverlapRatio,
		AvgPriceDiff:      result.Breakdown.AvgPriceDiff,
		MissRatio:         result.Breakdown.MissRatio,
		QualityScore:      result.Breakdown.Score,
		FinalConfidence:   result.FinalConfidence,
		Tier:              result.Tier,
	}
	if err := s.reconRepo.Create(ctx, record); err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"venue_id": venueID,
		}).WithError(err).Warn("reconciliation snapshot write failed")
		output.AuditWriteError = err
	} else {
		output.Record = record
	}

	return output, nil
}

// reconcileRemote delegates scoring to the hosted reconciliation service and
// maps its summary onto the local result shape. The PO-mismatch-forces-zero
// rule is enforced here too, whatever the remote confidence says.
func (s *ReconciliationService) reconcileRemote(ctx context.Context, venueID uuid.UUID, order *entity.Order, input *ReconcileOrderInput, parsed *invoiceparser.ParseResult) (*GateResult, error) {
	resp, err := s.remote.Reconcile(ctx, &reconcile.Request{
		VenueID: venueID.String(),
		OrderID: order.ID.String(),
		Invoice: reconcile.InvoiceRef{
			Source:      input.Source,
			StoragePath: input.StoragePath,
			PONumber:    parsed.Invoice.PONumber,
		},
		Lines:   parsed.Lines,
		OrderPO: order.PONumber,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, apperror.NewAppError(502, "Reconciliation service rejected the request")
	}

	result := &GateResult{
		POMismatch:        !resp.Summary.POMatch,
		FinalConfidence:   resp.Summary.Confidence,
		MatchedCount:      resp.Summary.Counts.Matched,
		UnmatchedCount:    resp.Summary.Counts.Unmatched,
		PriceChangedCount: resp.Summary.Counts.PriceChanged,
		OrderedTotal:      resp.Summary.Totals.Ordered,
		InvoicedTotal:     resp.Summary.Totals.Invoiced,
	}
	if result.POMismatch {
		result.FinalConfidence = 0
	}
	result.Tier = TierForConfidence(result.FinalConfidence)
	return result, nil
}

// ListByOrder returns the reconciliation snapshots recorded for an order.
func (s *ReconciliationService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.ReconciliationRecord, error) {
	if orderID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Order ID is required")
	}
	return s.reconRepo.ListByOrder(ctx, orderID)
}
