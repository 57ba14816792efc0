package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
)

func iptr(v int) *int { return &v }

func sentinelSupplier(venueID uuid.UUID) entity.Supplier {
	return entity.Supplier{
		ID:           uuid.New(),
		VenueID:      venueID,
		Name:         entity.UnassignedSupplierName,
		IsUnassigned: true,
	}
}

func countedItem(venueID uuid.UUID, productID uuid.UUID, qty float64) entity.AreaItem {
	return entity.AreaItem{
		ID:        uuid.New(),
		VenueID:   venueID,
		AreaID:    uuid.New(),
		ProductID: &productID,
		LastCount: &qty,
	}
}

func defaultBuildOptions() BuildOptions {
	return BuildOptions{RoundToPack: true, DefaultPar: 1}
}

func TestBuildSuggestedOrders_RequiresSentinel(t *testing.T) {
	suppliers := []entity.Supplier{
		{ID: uuid.New(), Name: "Brewery Co"},
	}
	_, err := BuildSuggestedOrders(nil, suppliers, nil, defaultBuildOptions())
	require.Error(t, err)
}

func TestBuildSuggestedOrders_AtParSuggestsNothing(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Brewery Co"}
	par := 10.0
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "Pale Ale",
		ParLevel:   &par,
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 10)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		defaultBuildOptions(),
	)
	require.NoError(t, err)
	assert.Empty(t, plan.Lines(supplier.ID.String()))
}

func TestBuildSuggestedOrders_DeficitRoundsUpToPack(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Brewery Co"}
	par := 10.0
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "Pale Ale",
		ParLevel:   &par,
		PackSize:   iptr(5),
		UnitCost:   250,
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 4)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		defaultBuildOptions(),
	)
	require.NoError(t, err)

	lines := plan.Lines(supplier.ID.String())
	require.Len(t, lines, 1)
	// Deficit 6 rounds up to two packs of 5, never down.
	assert.Equal(t, 10.0, lines[0].Quantity)
	assert.Equal(t, int64(250), lines[0].UnitCost)
	assert.Equal(t, enum.SuggestReasonBelowPar, lines[0].Reason)
	assert.False(t, lines[0].NeedsPar)
	assert.False(t, lines[0].NeedsSupplier)
}

func TestBuildSuggestedOrders_ExactPackMultipleNotOverRounded(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Brewery Co"}
	par := 10.0
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "Pale Ale",
		ParLevel:   &par,
		PackSize:   iptr(5),
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 0)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		defaultBuildOptions(),
	)
	require.NoError(t, err)

	lines := plan.Lines(supplier.ID.String())
	require.Len(t, lines, 1)
	assert.Equal(t, 10.0, lines[0].Quantity)
}

func TestBuildSuggestedOrders_RoundingDisabledKeepsRawDeficit(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Brewery Co"}
	par := 10.0
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "Pale Ale",
		ParLevel:   &par,
		PackSize:   iptr(5),
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 4)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		BuildOptions{RoundToPack: false, DefaultPar: 1},
	)
	require.NoError(t, err)

	lines := plan.Lines(supplier.ID.String())
	require.Len(t, lines, 1)
	assert.Equal(t, 6.0, lines[0].Quantity)
}

func TestBuildSuggestedOrders_NoParZeroStockSuggestsOnePack(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Wine Merchant"}
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "House Red",
		PackSize:   iptr(12),
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 0)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		defaultBuildOptions(),
	)
	require.NoError(t, err)

	lines := plan.Lines(supplier.ID.String())
	require.Len(t, lines, 1)
	assert.Equal(t, 12.0, lines[0].Quantity)
	assert.True(t, lines[0].NeedsPar)
	assert.Equal(t, enum.SuggestReasonNoParZeroStock, lines[0].Reason)
}

func TestBuildSuggestedOrders_NoParZeroStockNoPackUsesDefault(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Wine Merchant"}
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "House Red",
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 0)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		BuildOptions{RoundToPack: true, DefaultPar: 3},
	)
	require.NoError(t, err)

	lines := plan.Lines(supplier.ID.String())
	require.Len(t, lines, 1)
	assert.Equal(t, 3.0, lines[0].Quantity)
	assert.True(t, lines[0].NeedsPar)
}

func TestBuildSuggestedOrders_NoParPositiveStockSuggestsNothing(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Wine Merchant"}
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "House Red",
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 2)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		defaultBuildOptions(),
	)
	require.NoError(t, err)
	assert.Empty(t, plan.Lines(supplier.ID.String()))
}

func TestBuildSuggestedOrders_UncountedProductSkipped(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Brewery Co"}
	par := 10.0
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "Pale Ale",
		ParLevel:   &par,
	}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		nil,
		defaultBuildOptions(),
	)
	require.NoError(t, err)
	// Never counted means never suggested, even far below par.
	assert.Empty(t, plan.Lines(supplier.ID.String()))
}

func TestBuildSuggestedOrders_CountsSumAcrossAreas(t *testing.T) {
	venueID := uuid.New()
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Brewery Co"}
	par := 10.0
	product := entity.Product{
		ID:         uuid.New(),
		VenueID:    venueID,
		SupplierID: &supplier.ID,
		Name:       "Pale Ale",
		ParLevel:   &par,
	}
	items := []entity.AreaItem{
		countedItem(venueID, product.ID, 3),
		countedItem(venueID, product.ID, 4),
	}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinelSupplier(venueID), supplier},
		items,
		BuildOptions{RoundToPack: false, DefaultPar: 1},
	)
	require.NoError(t, err)

	lines := plan.Lines(supplier.ID.String())
	require.Len(t, lines, 1)
	assert.Equal(t, 3.0, lines[0].Quantity)
}

func TestBuildSuggestedOrders_NoSupplierGoesToUnassignedBucket(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	par := 5.0
	product := entity.Product{
		ID:       uuid.New(),
		VenueID:  venueID,
		Name:     "Mystery Mixer",
		ParLevel: &par,
	}
	items := []entity.AreaItem{countedItem(venueID, product.ID, 1)}

	plan, err := BuildSuggestedOrders(
		[]entity.Product{product},
		[]entity.Supplier{sentinel},
		items,
		defaultBuildOptions(),
	)
	require.NoError(t, err)

	lines := plan.Lines(plan.UnassignedKey())
	require.Len(t, lines, 1)
	assert.True(t, lines[0].NeedsSupplier)
	assert.Equal(t, enum.SuggestReasonNoSupplier, lines[0].Reason)
	assert.Equal(t, sentinel.ID.String(), plan.UnassignedKey())
}

func TestBuildSuggestedOrders_OrphanItems(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	supplier := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Wine Merchant"}

	zero := 0.0
	cost := int64(450)
	orphanZero := entity.AreaItem{
		ID:         uuid.New(),
		VenueID:    venueID,
		AreaID:     uuid.New(),
		SupplierID: &supplier.ID,
		Name:       "Scribbled Rosé",
		LastCount:  &zero,
		PackSize:   iptr(6),
		UnitCost:   &cost,
	}
	positive := 3.0
	orphanStocked := entity.AreaItem{
		ID:        uuid.New(),
		VenueID:   venueID,
		AreaID:    uuid.New(),
		Name:      "Leftover Sherry",
		LastCount: &positive,
	}

	plan, err := BuildSuggestedOrders(
		nil,
		[]entity.Supplier{sentinel, supplier},
		[]entity.AreaItem{orphanZero, orphanStocked},
		defaultBuildOptions(),
	)
	require.NoError(t, err)

	lines := plan.Lines(supplier.ID.String())
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Orphan)
	assert.Equal(t, orphanZero.ID, lines[0].ItemID)
	assert.Equal(t, 6.0, lines[0].Quantity)
	assert.Equal(t, int64(450), lines[0].UnitCost)
	assert.True(t, lines[0].NeedsPar)

	// Stocked orphans produce nothing, anywhere.
	assert.Empty(t, plan.Lines(plan.UnassignedKey()))
}

func TestBuildSuggestedOrders_OrphanWithoutSupplierLandsUnassigned(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	orphan := entity.AreaItem{
		ID:      uuid.New(),
		VenueID: venueID,
		AreaID:  uuid.New(),
		Name:    "Unlabeled Crate",
	}

	plan, err := BuildSuggestedOrders(nil, []entity.Supplier{sentinel}, []entity.AreaItem{orphan}, defaultBuildOptions())
	require.NoError(t, err)

	lines := plan.Lines(plan.UnassignedKey())
	require.Len(t, lines, 1)
	assert.True(t, lines[0].NeedsSupplier)
	assert.Equal(t, enum.SuggestReasonNoSupplier, lines[0].Reason)
}

func TestBuildSuggestedOrders_EverySupplierGetsABucket(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	quiet := entity.Supplier{ID: uuid.New(), VenueID: venueID, Name: "Quiet Supplier"}

	plan, err := BuildSuggestedOrders(nil, []entity.Supplier{sentinel, quiet}, nil, defaultBuildOptions())
	require.NoError(t, err)

	keys := plan.SupplierKeys()
	assert.ElementsMatch(t, []string{sentinel.ID.String(), quiet.ID.String()}, keys)
	assert.NotNil(t, plan.Buckets()[quiet.ID.String()])
	assert.Empty(t, plan.Lines(quiet.ID.String()))
}

func TestSuggestedOrderService_OptionsAppliesOverrides(t *testing.T) {
	svc := NewSuggestedOrderService(nil, nil, nil, BuildOptions{RoundToPack: true, DefaultPar: 2})

	// Configured defaults pass through untouched.
	opts := svc.Options(nil, nil)
	assert.True(t, opts.RoundToPack)
	assert.Equal(t, 2.0, opts.DefaultPar)

	// Request overrides win over configuration.
	round := false
	par := 5.0
	opts = svc.Options(&round, &par)
	assert.False(t, opts.RoundToPack)
	assert.Equal(t, 5.0, opts.DefaultPar)
}

func TestSuggestedOrderMap_AliasResolution(t *testing.T) {
	venueID := uuid.New()
	sentinel := sentinelSupplier(venueID)
	plan, err := BuildSuggestedOrders(nil, []entity.Supplier{sentinel}, nil, defaultBuildOptions())
	require.NoError(t, err)

	aliases := []string{"", "none", "NONE", " No Supplier ", "no_supplier", "unassigned", uuid.Nil.String()}
	for _, alias := range aliases {
		assert.Equal(t, plan.UnassignedKey(), plan.ResolveSupplierKey(alias), "alias %q", alias)
	}

	// Unknown keys resolve to themselves and read as empty, never panic.
	other := uuid.New().String()
	assert.Equal(t, other, plan.ResolveSupplierKey(other))
	assert.Empty(t, plan.Lines(other))
}
