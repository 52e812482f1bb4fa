package handler

import (
	tradeapp "github.com/pharmalink/backend/internal/application/trade"
	"github.com/pharmalink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesOrderHandler handles sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// Create creates a sales order. Stock is allocated FIFO inside one
// transaction; on shortage nothing is deducted and the response carries
// the shortfall.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	salesRepID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), salesRepID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID returns a sales order with its line items
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns sales orders with filtering and pagination
func (h *SalesOrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := tradeapp.SalesOrderListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if raw := c.Query("distributor_id"); raw != "" {
		distributorID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid distributor ID")
			return
		}
		filter.DistributorID = &distributorID
	}
	if raw := c.Query("payment_status"); raw != "" {
		filter.PaymentStatus = &raw
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
