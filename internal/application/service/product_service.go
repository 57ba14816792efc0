package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/pkg/apperror"
	"github.com/venuecount/stocktake-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ProductService {
	return &ProductService{productRepo: productRepo, supplierRepo: supplierRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name       string
	SKU        *string
	SupplierID *uuid.UUID
	PackSize   *int
	UnitCost   float64 // currency units
	ParLevel   *float64
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Venue context required")
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}

	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	product := &entity.Product{
		VenueID:    venueID,
		Name:       input.Name,
		SKU:        input.SKU,
		SupplierID: input.SupplierID,
		PackSize:   input.PackSize,
		UnitCost:   int64(math.Round(input.UnitCost * 100)),
		ParLevel:   input.ParLevel,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ImportCatalog bulk-creates products (catalog import path)
func (s *ProductService) ImportCatalog(ctx context.Context, inputs []CreateProductInput) (int, error) {
	venueID, ok := infraRepo.GetVenueID(ctx)
	if !ok {
		return 0, apperror.NewBadRequestError("Venue context required")
	}

	products := make([]entity.Product, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			return 0, apperror.NewBadRequestError("Product name is required")
		}
		products = append(products, entity.Product{
			VenueID:    venueID,
			Name:       in.Name,
			SKU:        in.SKU,
			SupplierID: in.SupplierID,
			PackSize:   in.PackSize,
			UnitCost:   int64(math.Round(in.UnitCost * 100)),
			ParLevel:   in.ParLevel,
		})
	}
	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input; nil fields are untouched
type UpdateProductInput struct {
	Name     *string
	SKU      *string
	PackSize *int
	UnitCost *float64
	ParLevel *float64
}

// UpdateProduct updates a product's catalog fields
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.SKU != nil {
		product.SKU = input.SKU
	}
	if input.PackSize != nil {
		product.PackSize = input.PackSize
	}
	if input.UnitCost != nil {
		product.SetUnitCostFromDecimal(*input.UnitCost)
	}
	if input.ParLevel != nil {
		product.ParLevel = input.ParLevel
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// AssignSupplier sets or clears the supplier reference on a product
func (s *ProductService) AssignSupplier(ctx context.Context, id uuid.UUID, supplierID *uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if supplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}
	}
	return s.productRepo.AssignSupplier(ctx, id, supplierID)
}

// SetParLevel sets or clears the par level on a product
func (s *ProductService) SetParLevel(ctx context.Context, id uuid.UUID, par *float64) error {
	if par != nil && *par < 0 {
		return apperror.NewBadRequestError("Par level cannot be negative")
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.SetParLevel(ctx, id, par)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
