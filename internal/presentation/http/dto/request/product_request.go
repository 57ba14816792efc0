package request

// CreateProductRequest represents the create product request body
type CreateProductRequest struct {
	Name       string   `json:"name" binding:"required"`
	SKU        *string  `json:"sku"`
	SupplierID *string  `json:"supplier_id"`
	PackSize   *int     `json:"pack_size"`
	UnitCost   float64  `json:"unit_cost"`
	ParLevel   *float64 `json:"par_level"`
}

// UpdateProductRequest represents the update product request body; nil fields
// are left untouched
type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	SKU      *string  `json:"sku"`
	PackSize *int     `json:"pack_size"`
	UnitCost *float64 `json:"unit_cost"`
	ParLevel *float64 `json:"par_level"`
}

// AssignSupplierRequest represents the assign supplier request body.
// A null supplier_id clears the assignment.
type AssignSupplierRequest struct {
	SupplierID *string `json:"supplier_id"`
}

// SetParLevelRequest represents the set par level request body.
// A null par_level clears the par.
type SetParLevelRequest struct {
	ParLevel *float64 `json:"par_level"`
}

// ImportCatalogRequest represents a bulk catalog import request body
type ImportCatalogRequest struct {
	Products []CreateProductRequest `json:"products" binding:"required,dive"`
}

// ProductFilterRequest represents product list query parameters
type ProductFilterRequest struct {
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
	Search          string `form:"search"`
	SupplierID      string `form:"supplier_id"`
	MissingPar      bool   `form:"missing_par"`
	MissingSupplier bool   `form:"missing_supplier"`
	SortBy          string `form:"sort_by"`
	SortOrder       string `form:"sort_order"`
}
