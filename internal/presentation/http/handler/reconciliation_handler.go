package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/application/service"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/request"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/response"
)

// ReconciliationHandler handles invoice reconciliation HTTP requests
type ReconciliationHandler struct {
	reconService *service.ReconciliationService
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(reconService *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconService: reconService}
}

// Reconcile handles scoring a stored invoice against an order
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.ReconcileOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.reconService.ReconcileOrder(c.Request.Context(), &service.ReconcileOrderInput{
		OrderID:     orderID,
		Source:      req.Source,
		StoragePath: req.StoragePath,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{
		"result":   result.Result,
		"decision": result.Decision,
		"record":   result.Record,
		"warnings": result.Warnings,
	}
	if result.AuditWriteError != nil {
		payload["audit_write_failed"] = true
	}

	response.OK(c, "Reconciliation completed", payload)
}

// History handles listing reconciliation snapshots for an order
func (h *ReconciliationHandler) History(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	records, err := h.reconService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reconciliation history retrieved", records)
}
