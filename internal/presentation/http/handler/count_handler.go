package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/application/service"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/request"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/response"
)

// CountHandler handles department/area/item counting HTTP requests
type CountHandler struct {
	countService *service.CountService
}

// NewCountHandler creates a new count handler
func NewCountHandler(countService *service.CountService) *CountHandler {
	return &CountHandler{countService: countService}
}

// CreateDepartment handles creating a department
func (h *CountHandler) CreateDepartment(c *gin.Context) {
	var req request.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	department, err := h.countService.CreateDepartment(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Department created successfully", department)
}

// ListDepartments handles listing departments
func (h *CountHandler) ListDepartments(c *gin.Context) {
	departments, err := h.countService.ListDepartments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Departments retrieved successfully", departments)
}

// CreateArea handles creating an area within a department
func (h *CountHandler) CreateArea(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid department ID")
		return
	}

	var req request.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	area, err := h.countService.CreateArea(c.Request.Context(), departmentID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Area created successfully", area)
}

// ListAreas handles listing areas within a department
func (h *CountHandler) ListAreas(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid department ID")
		return
	}

	areas, err := h.countService.ListAreas(c.Request.Context(), departmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Areas retrieved successfully", areas)
}

// AddItem handles adding an item to an area
func (h *CountHandler) AddItem(c *gin.Context) {
	areaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid area ID")
		return
	}

	var req request.AddAreaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, ok := parseOptionalUUID(req.ProductID)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}
	supplierID, ok := parseOptionalUUID(req.SupplierID)
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	input := &service.AddItemInput{
		AreaID:     areaID,
		ProductID:  productID,
		SupplierID: supplierID,
		Name:       req.Name,
		PackSize:   req.PackSize,
	}
	if req.UnitCost != nil {
		cents := int64(*req.UnitCost * 100)
		input.UnitCost = &cents
	}

	item, err := h.countService.AddItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added successfully", item)
}

// ListItems handles listing items in an area
func (h *CountHandler) ListItems(c *gin.Context) {
	areaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid area ID")
		return
	}

	items, err := h.countService.ListItems(c.Request.Context(), areaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved successfully", items)
}

// RecordCount handles recording a count for an item
func (h *CountHandler) RecordCount(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.countService.RecordCount(c.Request.Context(), itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Count recorded successfully", item)
}

// RemoveItem handles removing an item from an area
func (h *CountHandler) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.countService.RemoveItem(c.Request.Context(), itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
