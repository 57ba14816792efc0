package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/application/service"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/request"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/response"
	"github.com/venuecount/stocktake-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:          filter.Search,
		MissingPar:      filter.MissingPar,
		MissingSupplier: filter.MissingSupplier,
		SortBy:          filter.SortBy,
		SortOrder:       filter.SortOrder,
	}

	if filter.SupplierID != "" {
		supplierID, err := uuid.Parse(filter.SupplierID)
		if err == nil {
			params.SupplierID = &supplierID
		}
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	supplierID, ok := parseOptionalUUID(req.SupplierID)
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:       req.Name,
		SKU:        req.SKU,
		SupplierID: supplierID,
		PackSize:   req.PackSize,
		UnitCost:   req.UnitCost,
		ParLevel:   req.ParLevel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Import handles bulk catalog import
func (h *ProductHandler) Import(c *gin.Context) {
	var req request.ImportCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	inputs := make([]service.CreateProductInput, 0, len(req.Products))
	for _, p := range req.Products {
		supplierID, ok := parseOptionalUUID(p.SupplierID)
		if !ok {
			response.BadRequest(c, "Invalid supplier ID for product "+p.Name)
			return
		}
		inputs = append(inputs, service.CreateProductInput{
			Name:       p.Name,
			SKU:        p.SKU,
			SupplierID: supplierID,
			PackSize:   p.PackSize,
			UnitCost:   p.UnitCost,
			ParLevel:   p.ParLevel,
		})
	}

	count, err := h.productService.ImportCatalog(c.Request.Context(), inputs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Catalog imported successfully", gin.H{"imported": count})
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:     req.Name,
		SKU:      req.SKU,
		PackSize: req.PackSize,
		UnitCost: req.UnitCost,
		ParLevel: req.ParLevel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// AssignSupplier handles assigning (or clearing) a product's supplier
func (h *ProductHandler) AssignSupplier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AssignSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplierID, ok := parseOptionalUUID(req.SupplierID)
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.productService.AssignSupplier(c.Request.Context(), id, supplierID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier assigned successfully", nil)
}

// SetParLevel handles setting (or clearing) a product's par level
func (h *ProductHandler) SetParLevel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.SetParLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.productService.SetParLevel(c.Request.Context(), id, req.ParLevel); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Par level updated successfully", nil)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
