package handler

import (
	catalogapp "github.com/pharmalink/backend/internal/application/catalog"
	"github.com/pharmalink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ManufacturerHandler handles manufacturer endpoints
type ManufacturerHandler struct {
	BaseHandler
	manufacturerService *catalogapp.ManufacturerService
}

// NewManufacturerHandler creates a new ManufacturerHandler
func NewManufacturerHandler(manufacturerService *catalogapp.ManufacturerService) *ManufacturerHandler {
	return &ManufacturerHandler{manufacturerService: manufacturerService}
}

// Create creates a new manufacturer
func (h *ManufacturerHandler) Create(c *gin.Context) {
	var req catalogapp.CreateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	manufacturer, err := h.manufacturerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, manufacturer)
}

// GetByID returns a manufacturer by ID
func (h *ManufacturerHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID")
		return
	}

	manufacturer, err := h.manufacturerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, manufacturer)
}

// List returns manufacturers with pagination
func (h *ManufacturerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.manufacturerService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
