package request

// OrderLineRequest is one line of a manually created order
type OrderLineRequest struct {
	ProductID *string `json:"product_id"`
	Name      string  `json:"name" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitCost  float64 `json:"unit_cost"` // currency units
}

// CreateOrderRequest represents the create order request body
type CreateOrderRequest struct {
	SupplierID   string             `json:"supplier_id" binding:"required"`
	Scope        string             `json:"scope"`
	DepartmentID *string            `json:"department_id"`
	Lines        []OrderLineRequest `json:"lines" binding:"required,dive"`
}

// CreateDraftsRequest represents the create-drafts-from-suggestions request body
type CreateDraftsRequest struct {
	Scope        string   `json:"scope"`
	DepartmentID *string  `json:"department_id"`
	RoundToPack  *bool    `json:"round_to_pack"`
	DefaultPar   *float64 `json:"default_par"`
}

// OrderFilterRequest represents order list query parameters
type OrderFilterRequest struct {
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Search     string `form:"search"`
	Status     string `form:"status"`
	SupplierID string `form:"supplier_id"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
}
