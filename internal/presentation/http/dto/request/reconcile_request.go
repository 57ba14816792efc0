package request

// ReconcileOrderRequest represents the reconcile order request body.
// StoragePath points at an already uploaded invoice file.
type ReconcileOrderRequest struct {
	Source      string `json:"source" binding:"required"`
	StoragePath string `json:"storage_path" binding:"required"`
}

// SuggestOrderRequest represents suggested order build query parameters
type SuggestOrderRequest struct {
	RoundToPack *bool    `form:"round_to_pack"`
	DefaultPar  *float64 `form:"default_par"`
}
