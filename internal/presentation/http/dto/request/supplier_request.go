package request

// CreateSupplierRequest represents the create supplier request body
type CreateSupplierRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// UpdateSupplierRequest represents the update supplier request body
type UpdateSupplierRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}
