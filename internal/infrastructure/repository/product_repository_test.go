package repository

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	domainRepo "github.com/venuecount/stocktake-api/internal/domain/repository"
	"github.com/venuecount/stocktake-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/gorm/utils/tests"
)

// dryRunDB renders SQL without a database connection and records every
// statement the repository generates.
func dryRunDB(t *testing.T, captured *[]string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return db
}

func TestProductList_SearchQueriesMigratedColumns(t *testing.T) {
	var captured []string
	repo := NewProductRepository(dryRunDB(t, &captured))
	ctx := WithVenue(context.Background(), uuid.New())

	_, _, err := repo.List(ctx, &domainRepo.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
		Search:     "ale",
	})
	require.NoError(t, err)
	require.NotEmpty(t, captured)

	joined := strings.Join(captured, "\n")
	assert.Contains(t, joined, "name ILIKE")
	assert.Contains(t, joined, "sku ILIKE")

	// Every column the search touches must exist on the migrated table; a
	// filter on a column AutoMigrate never creates would 500 at runtime.
	parsed, err := schema.Parse(&entity.Product{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	for _, column := range []string{"name", "sku", "supplier_id", "par_level", "venue_id"} {
		assert.NotNil(t, parsed.LookUpField(column), "products table has no %q column", column)
	}
}

func TestProductList_FiltersVenueScoped(t *testing.T) {
	var captured []string
	repo := NewProductRepository(dryRunDB(t, &captured))
	ctx := WithVenue(context.Background(), uuid.New())

	_, _, err := repo.List(ctx, &domainRepo.ProductFilterParams{
		Pagination:      &pagination.PaginationParams{Page: 1, PerPage: 15},
		MissingPar:      true,
		MissingSupplier: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, captured)

	joined := strings.Join(captured, "\n")
	assert.Contains(t, joined, "venue_id = ")
	assert.Contains(t, joined, "par_level IS NULL OR par_level <= 0")
	assert.Contains(t, joined, "supplier_id IS NULL")
}

func TestProductList_NoVenueContextFailsClosed(t *testing.T) {
	var captured []string
	repo := NewProductRepository(dryRunDB(t, &captured))

	_, _, err := repo.List(context.Background(), &domainRepo.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
	})
	require.NoError(t, err)
	require.NotEmpty(t, captured)
	assert.Contains(t, strings.Join(captured, "\n"), "1 = 0")
}
