package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/application/service"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/request"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/response"
	"github.com/venuecount/stocktake-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// parseScope maps a request scope string to a LockScope, defaulting to venue.
func parseScope(s string) (enum.LockScope, bool) {
	switch s {
	case "", "venue":
		return enum.LockScopeVenue, true
	case "department":
		return enum.LockScopeDepartment, true
	default:
		return enum.LockScopeVenue, false
	}
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Status != "" {
		status := enum.OrderStatus(filter.Status)
		params.Status = &status
	}

	if filter.SupplierID != "" {
		supplierID, err := uuid.Parse(filter.SupplierID)
		if err == nil {
			params.SupplierID = &supplierID
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Create handles creating a draft order manually
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	scope, ok := parseScope(req.Scope)
	if !ok {
		response.BadRequest(c, "Invalid scope")
		return
	}

	departmentID, ok := parseOptionalUUID(req.DepartmentID)
	if !ok {
		response.BadRequest(c, "Invalid department ID")
		return
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		productID, ok := parseOptionalUUID(l.ProductID)
		if !ok {
			response.BadRequest(c, "Invalid product ID for line "+l.Name)
			return
		}
		lines = append(lines, service.OrderLineInput{
			ProductID: productID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		UserID:       *userID,
		SupplierID:   supplierID,
		Scope:        scope,
		DepartmentID: departmentID,
		Lines:        lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// CreateDrafts handles creating draft orders from the current suggested order build
func (h *OrderHandler) CreateDrafts(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	scope, ok := parseScope(req.Scope)
	if !ok {
		response.BadRequest(c, "Invalid scope")
		return
	}

	departmentID, ok := parseOptionalUUID(req.DepartmentID)
	if !ok {
		response.BadRequest(c, "Invalid department ID")
		return
	}
	if scope == enum.LockScopeDepartment && departmentID == nil {
		response.BadRequest(c, "Department scope requires a department ID")
		return
	}

	result, err := h.orderService.CreateDraftsFromSuggestions(c.Request.Context(), &service.CreateDraftsInput{
		UserID:       *userID,
		IsManager:    IsManager(c),
		Scope:        scope,
		DepartmentID: departmentID,
		Options:      h.orderService.SuggestOptions(req.RoundToPack, req.DefaultPar),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft orders created", result)
}

// Get handles getting a single order with its lines
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Submit handles submitting a draft order
func (h *OrderHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.SubmitOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order submitted successfully", order)
}

// Cancel handles cancelling a draft order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}
