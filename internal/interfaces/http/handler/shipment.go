package handler

import (
	inventoryapp "github.com/pharmalink/backend/internal/application/inventory"
	"github.com/pharmalink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ShipmentHandler handles shipment intake and delivery tracking endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *inventoryapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *inventoryapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// UpdateDeliveryStatusRequest is the body for a delivery status transition
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create registers an inbound shipment with its batches
func (h *ShipmentHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// GetByID returns a shipment with its batches
func (h *ShipmentHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	shipment, err := h.shipmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// List returns shipments with filtering and pagination
func (h *ShipmentHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := inventoryapp.ShipmentListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if raw := c.Query("mode"); raw != "" {
		filter.Mode = &raw
	}
	if raw := c.Query("delivery_status"); raw != "" {
		filter.DeliveryStatus = &raw
	}

	result, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateDeliveryStatus transitions a shipment's delivery status
func (h *ShipmentHandler) UpdateDeliveryStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	shipment, err := h.shipmentService.UpdateDeliveryStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}
