package handler

import (
	"strconv"

	inventoryapp "github.com/pharmalink/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles stock dashboard endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Overview returns the dashboard headline numbers
func (h *InventoryHandler) Overview(c *gin.Context) {
	overview, err := h.inventoryService.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// ExpiringBatches returns batches with stock expiring soon
func (h *InventoryHandler) ExpiringBatches(c *gin.Context) {
	days, err := queryInt(c, "days")
	if err != nil {
		h.BadRequest(c, "Invalid days parameter")
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.BadRequest(c, "Invalid limit parameter")
		return
	}

	batches, err := h.inventoryService.ExpiringBatches(c.Request.Context(), days, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// AllocationQueue returns a medicine's batches in allocation order
func (h *InventoryHandler) AllocationQueue(c *gin.Context) {
	medicineID, err := uuid.Parse(c.Param("medicine_id"))
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID")
		return
	}

	queue, err := h.inventoryService.AllocationQueue(c.Request.Context(), medicineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, queue)
}

// RecentBatches returns the most recently received batches
func (h *InventoryHandler) RecentBatches(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.BadRequest(c, "Invalid limit parameter")
		return
	}

	batches, err := h.inventoryService.RecentBatches(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// queryInt parses an optional integer query parameter, zero when absent
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
