package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/pkg/apperror"
	"github.com/venuecount/stocktake-api/pkg/pagination"
	"github.com/venuecount/stocktake-api/pkg/utils"
)

// OrderService handles supplier orders: manual creation, submission, and
// draft creation from suggested-order builds with supplier scope locking.
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	lockRepo     repository.ScopeLockRepository
	suggested    *SuggestedOrderService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	lockRepo repository.ScopeLockRepository,
	suggested *SuggestedOrderService,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		lockRepo:     lockRepo,
		suggested:    suggested,
	}
}

// SuggestOptions resolves build options for a draft run against the
// configured suggestion defaults.
func (s *OrderService) SuggestOptions(roundToPack *bool, defaultPar *float64) BuildOptions {
	return s.suggested.Options(roundToPack, defaultPar)
}

// OrderLineInput is one line of a manually created order
type OrderLineInput struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  float64
	UnitCost  float64 // currency units
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID       uuid.UUID
	SupplierID   uuid.UUID
	Scope        enum.LockScope
	DepartmentID *uuid.UUID
	Lines        []OrderLineInput
}

// CreateOrder creates a draft order with its lines as one atomic group.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}
	if input.SupplierID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Supplier ID is required")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	// Catalog-linked lines are validated against the venue's products in one
	// batch read; unknown references are rejected, missing costs filled in.
	ids := make([]uuid.UUID, 0, len(input.Lines))
	for _, l := range input.Lines {
		if l.ProductID != nil {
			ids = append(ids, *l.ProductID)
		}
	}
	catalog := make(map[uuid.UUID]entity.Product, len(ids))
	if len(ids) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			catalog[p.ID] = p
		}
	}

	order := &entity.Order{
		ID:           uuid.New(),
		VenueID:      venueID,
		SupplierID:   input.SupplierID,
		CreatedByID:  &input.UserID,
		PONumber:     utils.GeneratePONumber(),
		Status:       enum.OrderStatusDraft,
		Scope:        input.Scope,
		DepartmentID: input.DepartmentID,
	}

	lines := make([]entity.OrderLine, 0, len(input.Lines))
	var total int64
	for _, l := range input.Lines {
		name := l.Name
		unitCost := int64(math.Round(l.UnitCost * 100))
		if l.ProductID != nil {
			p, ok := catalog[*l.ProductID]
			if !ok {
				return nil, apperror.NewBadRequestError("Unknown product on order line: " + l.Name)
			}
			if name == "" {
				name = p.Name
			}
			if unitCost == 0 {
				unitCost = p.UnitCost
			}
		}
		total += int64(math.Round(l.Quantity * float64(unitCost)))
		lines = append(lines, entity.OrderLine{
			OrderID:   order.ID,
			ProductID: l.ProductID,
			Name:      name,
			Quantity:  l.Quantity,
			UnitCost:  unitCost,
		})
	}
	order.TotalAmount = total

	if err := s.orderRepo.CreateWithLines(ctx, order, lines); err != nil {
		return nil, err
	}
	return s.orderRepo.GetWithLines(ctx, order.ID)
}

// GetOrder retrieves an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// SubmitOrder marks a draft as submitted and releases its supplier scope
// lock. The lock release is best effort: a stale lock only blocks future
// drafts for the supplier and can be cleared by a later release.
func (s *OrderService) SubmitOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusDraft {
		return nil, apperror.NewBadRequestError("Only draft orders can be submitted")
	}

	now := time.Now()
	order.Status = enum.OrderStatusSubmitted
	order.SubmittedAt = &now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.lockRepo.Release(ctx, order.SupplierID); err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id":    order.ID,
			"supplier_id": order.SupplierID,
		}).WithError(err).Warn("scope lock release failed after submit")
	}
	return order, nil
}

// CancelOrder cancels a draft order and releases its scope lock.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusDraft {
		return apperror.NewBadRequestError("Only draft orders can be cancelled")
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusCancelled); err != nil {
		return err
	}
	return s.lockRepo.Release(ctx, order.SupplierID)
}

// CreateDraftsInput controls draft creation from a suggested-order build.
type CreateDraftsInput struct {
	UserID       uuid.UUID
	IsManager    bool
	Scope        enum.LockScope
	DepartmentID *uuid.UUID
	Options      BuildOptions
}

// SupplierDraftResult is the per-supplier outcome of a draft creation run.
// Conflicts and privilege denials are outcomes, not errors.
type SupplierDraftResult struct {
	SupplierID uuid.UUID        `json:"supplier_id"`
	Outcome    enum.LockOutcome `json:"outcome"`
	OrderID    *uuid.UUID       `json:"order_id,omitempty"`
	LineCount  int              `json:"line_count"`
	Error      string           `json:"error,omitempty"`
}

// CreateDraftsOutput is the overall result of a draft creation run. The run
// is resumable, not all-or-nothing: some suppliers may have committed drafts
// while others were blocked or failed.
type CreateDraftsOutput struct {
	Results []SupplierDraftResult `json:"results"`
	// UnassignedLines counts suggestions left in the sentinel bucket; no
	// draft is created for a supplier that does not exist.
	UnassignedLines int `json:"unassigned_lines"`
}

// CreateDraftsFromSuggestions builds a fresh replenishment plan and commits
// one draft order per supplier. Each supplier's order and lines commit as
// one atomic group behind a scope-lock claim; the set across suppliers is
// deliberately not atomic.
func (s *OrderService) CreateDraftsFromSuggestions(ctx context.Context, input *CreateDraftsInput) (*CreateDraftsOutput, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}
	if input.Scope == enum.LockScopeDepartment && input.DepartmentID == nil {
		return nil, apperror.NewBadRequestError("Department ID is required for department scope")
	}

	plan, err := s.suggested.Build(ctx, input.Options)
	if err != nil {
		return nil, err
	}

	output := &CreateDraftsOutput{
		UnassignedLines: len(plan.Lines(plan.UnassignedKey())),
	}

	for _, key := range plan.SupplierKeys() {
		if key == plan.UnassignedKey() {
			continue
		}
		lines := plan.Lines(key)
		if len(lines) == 0 {
			continue
		}
		supplierID, err := uuid.Parse(key)
		if err != nil {
			continue
		}

		result := SupplierDraftResult{SupplierID: supplierID, LineCount: len(lines)}

		if input.Scope == enum.LockScopeVenue && !input.IsManager {
			result.Outcome = enum.LockOutcomeBlockedInsufficient
			output.Results = append(output.Results, result)
			continue
		}

		orderID := uuid.New()
		lock := &entity.SupplierScopeLock{
			VenueID:      venueID,
			SupplierID:   supplierID,
			Scope:        input.Scope,
			DepartmentID: input.DepartmentID,
			OrderID:      orderID,
			ClaimedByID:  input.UserID,
		}
		winner, claimed, err := s.lockRepo.Claim(ctx, lock)
		if err != nil {
			result.Outcome = enum.LockOutcomeFailed
			result.Error = err.Error()
			output.Results = append(output.Results, result)
			continue
		}
		if !claimed {
			if winner != nil && winner.Scope == enum.LockScopeDepartment {
				result.Outcome = enum.LockOutcomeBlockedDeptScope
			} else {
				result.Outcome = enum.LockOutcomeBlockedVenueScope
			}
			output.Results = append(output.Results, result)
			continue
		}

		order := &entity.Order{
			ID:           orderID,
			VenueID:      venueID,
			SupplierID:   supplierID,
			CreatedByID:  &input.UserID,
			PONumber:     utils.GeneratePONumber(),
			Status:       enum.OrderStatusDraft,
			Scope:        input.Scope,
			DepartmentID: input.DepartmentID,
		}
		orderLines := make([]entity.OrderLine, 0, len(lines))
		var total int64
		for _, l := range lines {
			total += int64(math.Round(l.Quantity * float64(l.UnitCost)))
			var productID *uuid.UUID
			if !l.Orphan {
				id := l.ItemID
				productID = &id
			}
			orderLines = append(orderLines, entity.OrderLine{
				OrderID:   orderID,
				ProductID: productID,
				Name:      l.Name,
				Quantity:  l.Quantity,
				UnitCost:  l.UnitCost,
			})
		}
		order.TotalAmount = total

		if err := s.orderRepo.CreateWithLines(ctx, order, orderLines); err != nil {
			// Undo the claim so a retry of this supplier can succeed.
			if relErr := s.lockRepo.Release(ctx, supplierID); relErr != nil {
				logrus.WithFields(logrus.Fields{
					"supplier_id": supplierID,
				}).WithError(relErr).Warn("scope lock release failed after draft create error")
			}
			result.Outcome = enum.LockOutcomeFailed
			result.Error = err.Error()
			output.Results = append(output.Results, result)
			continue
		}

		result.Outcome = enum.LockOutcomeCreated
		result.OrderID = &orderID
		output.Results = append(output.Results, result)
	}

	return output, nil
}
