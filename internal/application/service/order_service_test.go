package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
)

// In-memory repository stubs. Unimplemented interface methods panic when
// called, which is exactly what a test should do for an unexpected call.

type stubProductRepo struct {
	repository.ProductRepository
	products []entity.Product
}

func (s *stubProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	return s.products, nil
}

func (s *stubProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		for i := range s.products {
			if s.products[i].ID == id {
				out = append(out, s.products[i])
			}
		}
	}
	return out, nil
}

type stubSupplierRepo struct {
	repository.SupplierRepository
	suppliers []entity.Supplier
}

func (s *stubSupplierRepo) ListAll(ctx context.Context) ([]entity.Supplier, error) {
	return s.suppliers, nil
}

func (s *stubSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			return &s.suppliers[i], nil
		}
	}
	return nil, nil
}

func (s *stubSupplierRepo) GetUnassigned(ctx context.Context) (*entity.Supplier, error) {
	for i := range s.suppliers {
		if s.suppliers[i].IsUnassigned {
			return &s.suppliers[i], nil
		}
	}
	return nil, errors.New("no sentinel configured")
}

type stubItemRepo struct {
	repository.AreaItemRepository
	items []entity.AreaItem
}

func (s *stubItemRepo) ListAll(ctx context.Context) ([]entity.AreaItem, error) {
	return s.items, nil
}

type stubOrderRepo struct {
	repository.OrderRepository
	orders    map[uuid.UUID]*entity.Order
	lines     map[uuid.UUID][]entity.OrderLine
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders: make(map[uuid.UUID]*entity.Order),
		lines:  make(map[uuid.UUID][]entity.OrderLine),
	}
}

func (s *stubOrderRepo) CreateWithLines(ctx context.Context, order *entity.Order, lines []entity.OrderLine) error {
	if s.createErr != nil {
		return s.createErr
	}
	stored := *order
	s.orders[order.ID] = &stored
	s.lines[order.ID] = lines
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.orders[id], nil
}

func (s *stubOrderRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order := s.orders[id]
	if order == nil {
		return nil, nil
	}
	withLines := *order
	withLines.Lines = s.lines[id]
	return &withLines, nil
}

func (s *stubOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	stored := *order
	s.orders[order.ID] = &stored
	return nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if order, ok := s.orders[id]; ok {
		order.Status = status
	}
	return nil
}

type stubLockRepo struct {
	locks    map[uuid.UUID]*entity.SupplierScopeLock
	claimErr error
}

func newStubLockRepo() *stubLockRepo {
	return &stubLockRepo{locks: make(map[uuid.UUID]*entity.SupplierScopeLock)}
}

func (s *stubLockRepo) GetBySupplier(ctx context.Context, supplierID uuid.UUID) (*entity.SupplierScopeLock, error) {
	return s.locks[supplierID], nil
}

func (s *stubLockRepo) Claim(ctx context.Context, lock *entity.SupplierScopeLock) (*entity.SupplierScopeLock, bool, error) {
	if s.claimErr != nil {
		return nil, false, s.claimErr
	}
	if existing, ok := s.locks[lock.SupplierID]; ok {
		return existing, false, nil
	}
	stored := *lock
	s.locks[lock.SupplierID] = &stored
	return &stored, true, nil
}

func (s *stubLockRepo) Release(ctx context.Context, supplierID uuid.UUID) error {
	delete(s.locks, supplierID)
	return nil
}

// draftFixture wires an order service over in-memory stubs with one venue,
// the sentinel supplier, and whatever catalog the test provides.
type draftFixture struct {
	venueID   uuid.UUID
	userID    uuid.UUID
	ctx       context.Context
	orderRepo *stubOrderRepo
	lockRepo  *stubLockRepo
	service   *OrderService
}

func newDraftFixture(products []entity.Product, suppliers []entity.Supplier, items []entity.AreaItem) *draftFixture {
	venueID := uuid.New()
	orderRepo := newStubOrderRepo()
	lockRepo := newStubLockRepo()
	productRepo := &stubProductRepo{products: products}
	supplierRepo := &stubSupplierRepo{suppliers: suppliers}
	suggested := NewSuggestedOrderService(
		productRepo,
		supplierRepo,
		&stubItemRepo{items: items},
		defaultBuildOptions(),
	)
	return &draftFixture{
		venueID:   venueID,
		userID:    uuid.New(),
		ctx:       infraRepo.WithVenue(context.Background(), venueID),
		orderRepo: orderRepo,
		lockRepo:  lockRepo,
		service:   NewOrderService(orderRepo, productRepo, supplierRepo, lockRepo, suggested),
	}
}

func belowParProduct(supplierID uuid.UUID, name string, par float64, unitCostCents int64) entity.Product {
	return entity.Product{
		ID:         uuid.New(),
		SupplierID: &supplierID,
		Name:       name,
		ParLevel:   &par,
		UnitCost:   unitCostCents,
	}
}

func resultForSupplier(t *testing.T, results []SupplierDraftResult, supplierID uuid.UUID) SupplierDraftResult {
	t.Helper()
	for _, r := range results {
		if r.SupplierID == supplierID {
			return r
		}
	}
	t.Fatalf("no result for supplier %s", supplierID)
	return SupplierDraftResult{}
}

func TestCreateDraftsFromSuggestions_CreatesDraftPerSupplier(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	merchant := entity.Supplier{ID: uuid.New(), Name: "Wine Merchant"}

	ale := belowParProduct(brewery.ID, "Pale Ale", 10, 250)
	wine := belowParProduct(merchant.ID, "House Red", 12, 900)
	items := []entity.AreaItem{
		countedItem(venueID, ale.ID, 4),
		countedItem(venueID, wine.ID, 6),
	}

	fx := newDraftFixture(
		[]entity.Product{ale, wine},
		[]entity.Supplier{sentinel, brewery, merchant},
		items,
	)

	out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:    fx.userID,
		IsManager: true,
		Scope:     enum.LockScopeVenue,
		Options:   BuildOptions{RoundToPack: false, DefaultPar: 1},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Zero(t, out.UnassignedLines)

	breweryResult := resultForSupplier(t, out.Results, brewery.ID)
	assert.Equal(t, enum.LockOutcomeCreated, breweryResult.Outcome)
	require.NotNil(t, breweryResult.OrderID)
	assert.Equal(t, 1, breweryResult.LineCount)

	order := fx.orderRepo.orders[*breweryResult.OrderID]
	require.NotNil(t, order)
	assert.Equal(t, enum.OrderStatusDraft, order.Status)
	assert.Equal(t, brewery.ID, order.SupplierID)
	assert.Equal(t, fx.venueID, order.VenueID)
	assert.NotEmpty(t, order.PONumber)
	// Deficit 6 at 2.50 each.
	assert.Equal(t, int64(1500), order.TotalAmount)

	lines := fx.orderRepo.lines[*breweryResult.OrderID]
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].ProductID)
	assert.Equal(t, ale.ID, *lines[0].ProductID)
	assert.Equal(t, 6.0, lines[0].Quantity)

	// The draft holds its supplier's scope lock until submit or cancel.
	assert.NotNil(t, fx.lockRepo.locks[brewery.ID])
	assert.NotNil(t, fx.lockRepo.locks[merchant.ID])
}

func TestCreateDraftsFromSuggestions_StaffCannotClaimVenueScope(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	ale := belowParProduct(brewery.ID, "Pale Ale", 10, 250)
	items := []entity.AreaItem{countedItem(venueID, ale.ID, 4)}

	fx := newDraftFixture([]entity.Product{ale}, []entity.Supplier{sentinel, brewery}, items)

	out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:    fx.userID,
		IsManager: false,
		Scope:     enum.LockScopeVenue,
		Options:   defaultBuildOptions(),
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, enum.LockOutcomeBlockedInsufficient, out.Results[0].Outcome)
	assert.Nil(t, out.Results[0].OrderID)
	assert.Empty(t, fx.orderRepo.orders)
	assert.Empty(t, fx.lockRepo.locks)
}

func TestCreateDraftsFromSuggestions_BlockedByExistingLock(t *testing.T) {
	tests := []struct {
		name      string
		heldScope enum.LockScope
		want      enum.LockOutcome
	}{
		{"department lock held", enum.LockScopeDepartment, enum.LockOutcomeBlockedDeptScope},
		{"venue lock held", enum.LockScopeVenue, enum.LockOutcomeBlockedVenueScope},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venueID := uuid.New()
			sentinel := sentinelSupplier(venueID)
			brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
			ale := belowParProduct(brewery.ID, "Pale Ale", 10, 250)
			items := []entity.AreaItem{countedItem(venueID, ale.ID, 4)}

			fx := newDraftFixture([]entity.Product{ale}, []entity.Supplier{sentinel, brewery}, items)
			fx.lockRepo.locks[brewery.ID] = &entity.SupplierScopeLock{
				VenueID:    fx.venueID,
				SupplierID: brewery.ID,
				Scope:      tt.heldScope,
				OrderID:    uuid.New(),
			}

			out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
				UserID:    fx.userID,
				IsManager: true,
				Scope:     enum.LockScopeVenue,
				Options:   defaultBuildOptions(),
			})
			require.NoError(t, err)
			require.Len(t, out.Results, 1)
			assert.Equal(t, tt.want, out.Results[0].Outcome)
			assert.Empty(t, fx.orderRepo.orders)
		})
	}
}

func TestCreateDraftsFromSuggestions_ReleasesLockWhenCreateFails(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	ale := belowParProduct(brewery.ID, "Pale Ale", 10, 250)
	items := []entity.AreaItem{countedItem(venueID, ale.ID, 4)}

	fx := newDraftFixture([]entity.Product{ale}, []entity.Supplier{sentinel, brewery}, items)
	fx.orderRepo.createErr = errors.New("db unavailable")

	out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:    fx.userID,
		IsManager: true,
		Scope:     enum.LockScopeVenue,
		Options:   defaultBuildOptions(),
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, enum.LockOutcomeFailed, out.Results[0].Outcome)
	assert.Equal(t, "db unavailable", out.Results[0].Error)
	assert.Nil(t, out.Results[0].OrderID)
	// The failed draft must not leave a stale lock behind.
	assert.Empty(t, fx.lockRepo.locks)
}

func TestCreateDraftsFromSuggestions_ClaimErrorReportsFailedOutcome(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	ale := belowParProduct(brewery.ID, "Pale Ale", 10, 250)
	items := []entity.AreaItem{countedItem(venueID, ale.ID, 4)}

	fx := newDraftFixture([]entity.Product{ale}, []entity.Supplier{sentinel, brewery}, items)
	fx.lockRepo.claimErr = errors.New("lock table unavailable")

	out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:    fx.userID,
		IsManager: true,
		Scope:     enum.LockScopeVenue,
		Options:   defaultBuildOptions(),
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	// An errored claim is never reported with an empty outcome.
	assert.Equal(t, enum.LockOutcomeFailed, out.Results[0].Outcome)
	assert.Equal(t, "lock table unavailable", out.Results[0].Error)
	assert.Empty(t, fx.orderRepo.orders)
}

func TestCreateDraftsFromSuggestions_UnassignedBucketNeverBecomesAnOrder(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	par := 5.0
	noSupplier := entity.Product{ID: uuid.New(), Name: "Mystery Mixer", ParLevel: &par}
	items := []entity.AreaItem{countedItem(venueID, noSupplier.ID, 1)}

	fx := newDraftFixture([]entity.Product{noSupplier}, []entity.Supplier{sentinel}, items)

	out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:    fx.userID,
		IsManager: true,
		Scope:     enum.LockScopeVenue,
		Options:   defaultBuildOptions(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.UnassignedLines)
	assert.Empty(t, out.Results)
	assert.Empty(t, fx.orderRepo.orders)
}

func TestCreateDraftsFromSuggestions_DepartmentScopeRequiresDepartment(t *testing.T) {
	fx := newDraftFixture(nil, []entity.Supplier{sentinelSupplier(uuid.New())}, nil)

	_, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:  fx.userID,
		Scope:   enum.LockScopeDepartment,
		Options: defaultBuildOptions(),
	})
	require.Error(t, err)
}

func TestCreateDraftsFromSuggestions_RequiresVenueContext(t *testing.T) {
	fx := newDraftFixture(nil, []entity.Supplier{sentinelSupplier(uuid.New())}, nil)

	_, err := fx.service.CreateDraftsFromSuggestions(context.Background(), &CreateDraftsInput{
		UserID:  fx.userID,
		Scope:   enum.LockScopeVenue,
		Options: defaultBuildOptions(),
	})
	require.Error(t, err)
}

func TestCreateOrder_ConvertsCurrencyToCents(t *testing.T) {
	venueID := uuid.New()
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	fx := newDraftFixture(nil, []entity.Supplier{sentinelSupplier(venueID), brewery}, nil)

	order, err := fx.service.CreateOrder(fx.ctx, &CreateOrderInput{
		UserID:     fx.userID,
		SupplierID: brewery.ID,
		Scope:      enum.LockScopeVenue,
		Lines: []OrderLineInput{
			{Name: "Pale Ale", Quantity: 2, UnitCost: 5.50},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, enum.OrderStatusDraft, order.Status)
	assert.Equal(t, int64(1100), order.TotalAmount)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(550), order.Lines[0].UnitCost)
}

func TestCreateOrder_CatalogLinesValidatedAndCosted(t *testing.T) {
	venueID := uuid.New()
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	ale := entity.Product{ID: uuid.New(), SupplierID: &brewery.ID, Name: "Pale Ale", UnitCost: 250}

	fx := newDraftFixture([]entity.Product{ale}, []entity.Supplier{sentinelSupplier(venueID), brewery}, nil)

	// A catalog-linked line with no cost in the request picks up the
	// product's unit cost.
	order, err := fx.service.CreateOrder(fx.ctx, &CreateOrderInput{
		UserID:     fx.userID,
		SupplierID: brewery.ID,
		Scope:      enum.LockScopeVenue,
		Lines: []OrderLineInput{
			{ProductID: &ale.ID, Name: "Pale Ale", Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(250), order.Lines[0].UnitCost)
	assert.Equal(t, int64(1000), order.TotalAmount)

	// A line referencing a product outside the venue's catalog is rejected.
	unknown := uuid.New()
	_, err = fx.service.CreateOrder(fx.ctx, &CreateOrderInput{
		UserID:     fx.userID,
		SupplierID: brewery.ID,
		Scope:      enum.LockScopeVenue,
		Lines: []OrderLineInput{
			{ProductID: &unknown, Name: "Ghost Keg", Quantity: 1},
		},
	})
	require.Error(t, err)
}

func TestCreateOrder_UnknownSupplier(t *testing.T) {
	fx := newDraftFixture(nil, []entity.Supplier{sentinelSupplier(uuid.New())}, nil)

	_, err := fx.service.CreateOrder(fx.ctx, &CreateOrderInput{
		UserID:     fx.userID,
		SupplierID: uuid.New(),
		Scope:      enum.LockScopeVenue,
	})
	require.Error(t, err)
}

func TestSubmitOrder_ReleasesLock(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	ale := belowParProduct(brewery.ID, "Pale Ale", 10, 250)
	items := []entity.AreaItem{countedItem(venueID, ale.ID, 4)}

	fx := newDraftFixture([]entity.Product{ale}, []entity.Supplier{sentinel, brewery}, items)

	out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:    fx.userID,
		IsManager: true,
		Scope:     enum.LockScopeVenue,
		Options:   defaultBuildOptions(),
	})
	require.NoError(t, err)
	draft := resultForSupplier(t, out.Results, brewery.ID)
	require.NotNil(t, draft.OrderID)
	require.NotNil(t, fx.lockRepo.locks[brewery.ID])

	submitted, err := fx.service.SubmitOrder(fx.ctx, *draft.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)
	assert.Nil(t, fx.lockRepo.locks[brewery.ID])

	// A submitted order cannot be submitted again.
	_, err = fx.service.SubmitOrder(fx.ctx, *draft.OrderID)
	require.Error(t, err)
}

func TestCancelOrder_ReleasesLock(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	brewery := entity.Supplier{ID: uuid.New(), Name: "Brewery Co"}
	ale := belowParProduct(brewery.ID, "Pale Ale", 10, 250)
	items := []entity.AreaItem{countedItem(venueID, ale.ID, 4)}

	fx := newDraftFixture([]entity.Product{ale}, []entity.Supplier{sentinel, brewery}, items)

	out, err := fx.service.CreateDraftsFromSuggestions(fx.ctx, &CreateDraftsInput{
		UserID:    fx.userID,
		IsManager: true,
		Scope:     enum.LockScopeVenue,
		Options:   defaultBuildOptions(),
	})
	require.NoError(t, err)
	draft := resultForSupplier(t, out.Results, brewery.ID)
	require.NotNil(t, draft.OrderID)

	require.NoError(t, fx.service.CancelOrder(fx.ctx, *draft.OrderID))
	assert.Equal(t, enum.OrderStatusCancelled, fx.orderRepo.orders[*draft.OrderID].Status)
	assert.Nil(t, fx.lockRepo.locks[brewery.ID])
}
