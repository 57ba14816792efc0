package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/venuecount/stocktake-api/internal/application/service"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/request"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/response"
)

// ReportHandler handles suggested order and variance report HTTP requests
type ReportHandler struct {
	suggestedService *service.SuggestedOrderService
	varianceService  *service.VarianceService
}

// NewReportHandler creates a new report handler
func NewReportHandler(suggestedService *service.SuggestedOrderService, varianceService *service.VarianceService) *ReportHandler {
	return &ReportHandler{
		suggestedService: suggestedService,
		varianceService:  varianceService,
	}
}

// SuggestedOrders handles building a per-supplier replenishment plan
func (h *ReportHandler) SuggestedOrders(c *gin.Context) {
	var req request.SuggestOrderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	opts := h.suggestedService.Options(req.RoundToPack, req.DefaultPar)
	plan, err := h.suggestedService.Build(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Suggested orders built successfully", gin.H{
		"suppliers":      plan.Buckets(),
		"unassigned_key": plan.UnassignedKey(),
	})
}

// Variance handles producing the shortage/excess variance report
func (h *ReportHandler) Variance(c *gin.Context) {
	result, err := h.varianceService.Report(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Variance report generated successfully", result)
}
