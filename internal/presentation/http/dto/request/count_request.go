package request

// CreateDepartmentRequest represents the create department request body
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateAreaRequest represents the create area request body
type CreateAreaRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddAreaItemRequest represents the add area item request body.
// A null product_id creates a free-text orphan item.
type AddAreaItemRequest struct {
	ProductID  *string  `json:"product_id"`
	SupplierID *string  `json:"supplier_id"`
	Name       string   `json:"name"`
	PackSize   *int     `json:"pack_size"`
	UnitCost   *float64 `json:"unit_cost"` // currency units
}

// RecordCountRequest represents the record count request body.
// Quantity is fractional; partial bottles are counted as decimals.
type RecordCountRequest struct {
	Quantity float64 `json:"quantity" binding:"min=0"`
}
