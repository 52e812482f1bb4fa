package handler

import (
	financeapp "github.com/pharmalink/backend/internal/application/finance"
	"github.com/pharmalink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create records a payment against a sales order. The order's settled
// amount and the payment row commit together; overpayment and settled
// orders are rejected.
func (h *PaymentHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// GetByID returns a payment with its documents
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// ListByOrder returns a sales order's payments in chronological order
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	payments, err := h.paymentService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// List returns payments with filtering and pagination
func (h *PaymentHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := financeapp.PaymentListFilter{
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
	if raw := c.Query("sales_order_id"); raw != "" {
		orderID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid order ID")
			return
		}
		filter.SalesOrderID = &orderID
	}

	result, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
