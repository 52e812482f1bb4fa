package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/pharmalink/backend/internal/domain/trade"
)

// CreateSalesOrderRequest is the input for creating a sales order
type CreateSalesOrderRequest struct {
	DistributorID uuid.UUID                `json:"distributorId" binding:"required"`
	Currency      string                   `json:"currency"`
	Items         []CreateSalesOrderItem   `json:"items" binding:"required,min=1,dive"`
	Notes         string                   `json:"notes"`
}

// CreateSalesOrderItem is one requested medicine and quantity
type CreateSalesOrderItem struct {
	MedicineID uuid.UUID `json:"medicineId" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required,gt=0"`
}

// SalesOrderListFilter narrows the order list
type SalesOrderListFilter struct {
	DistributorID *uuid.UUID
	PaymentStatus *string
	Page          int
	PageSize      int
}

// SalesLineItemResponse is the API view of one order line
type SalesLineItemResponse struct {
	ID         uuid.UUID `json:"id"`
	MedicineID uuid.UUID `json:"medicineId"`
	BatchID    uuid.UUID `json:"batchId"`
	Quantity   int64     `json:"quantity"`
	UnitPrice  string    `json:"unitPrice"`
	LineTotal  string    `json:"lineTotal"`
}

// SalesOrderResponse is the API view of a sales order
type SalesOrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	OrderNumber     string                  `json:"orderNumber"`
	DistributorID   uuid.UUID               `json:"distributorId"`
	SalesRepID      uuid.UUID               `json:"salesRepId"`
	Currency        valueobject.Currency    `json:"currency"`
	OrderAmount     string                  `json:"orderAmount"`
	AmountPaid      string                  `json:"amountPaid"`
	AmountRemaining string                  `json:"amountRemaining"`
	PaymentStatus   trade.PaymentStatus     `json:"paymentStatus"`
	OrderDate       time.Time               `json:"orderDate"`
	Notes           string                  `json:"notes,omitempty"`
	LineItems       []SalesLineItemResponse `json:"lineItems"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// ToSalesOrderResponse converts a sales order to its response DTO
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesLineItemResponse, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, SalesLineItemResponse{
			ID:         item.ID,
			MedicineID: item.MedicineID,
			BatchID:    item.BatchID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.Amount().String(),
			LineTotal:  item.LineTotal.Amount().String(),
		})
	}
	return SalesOrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		DistributorID:   order.DistributorID,
		SalesRepID:      order.SalesRepID,
		Currency:        order.Currency,
		OrderAmount:     order.OrderAmount.Amount().String(),
		AmountPaid:      order.AmountPaid.Amount().String(),
		AmountRemaining: order.AmountRemaining.Amount().String(),
		PaymentStatus:   order.PaymentStatus,
		OrderDate:       order.OrderDate,
		Notes:           order.Notes,
		LineItems:       items,
		CreatedAt:       order.CreatedAt,
	}
}
