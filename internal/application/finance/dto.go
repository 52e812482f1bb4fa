package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/finance"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/pharmalink/backend/internal/domain/trade"
)

// CreatePaymentRequest is the input for recording a payment
type CreatePaymentRequest struct {
	SalesOrderID uuid.UUID               `json:"salesOrderId" binding:"required"`
	Amount       string                  `json:"amount" binding:"required,money"`
	Type         string                  `json:"type" binding:"required"`
	Reference    string                  `json:"reference"`
	PaymentDate  *time.Time              `json:"paymentDate"`
	Notes        string                  `json:"notes"`
	Documents    []CreateDocumentRequest `json:"documents" binding:"dive"`
}

// CreateDocumentRequest is one supporting document attached to a payment
type CreateDocumentRequest struct {
	URL      string `json:"url" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
}

// PaymentListFilter narrows the payment list
type PaymentListFilter struct {
	DistributorID *uuid.UUID
	SalesOrderID  *uuid.UUID
	Page          int
	PageSize      int
}

// DocumentResponse is the API view of a payment document
type DocumentResponse struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	FileName string    `json:"fileName"`
}

// PaymentResponse is the API view of a payment, including the order's
// settlement state after the payment was applied
type PaymentResponse struct {
	ID            uuid.UUID            `json:"id"`
	SalesOrderID  uuid.UUID            `json:"salesOrderId"`
	DistributorID uuid.UUID            `json:"distributorId"`
	Amount        string               `json:"amount"`
	Currency      valueobject.Currency `json:"currency"`
	Type          finance.PaymentType  `json:"type"`
	Reference     string               `json:"reference,omitempty"`
	PaymentDate   time.Time            `json:"paymentDate"`
	Notes         string               `json:"notes,omitempty"`
	Documents     []DocumentResponse   `json:"documents"`
	OrderStatus   trade.PaymentStatus  `json:"orderStatus"`
	OrderBalance  string               `json:"orderBalance"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToPaymentResponse converts a payment and its settled order to the response DTO
func ToPaymentResponse(payment *finance.Payment, order *trade.SalesOrder) PaymentResponse {
	docs := make([]DocumentResponse, 0, len(payment.Documents))
	for _, d := range payment.Documents {
		docs = append(docs, DocumentResponse{ID: d.ID, URL: d.URL, FileName: d.FileName})
	}
	return PaymentResponse{
		ID:            payment.ID,
		SalesOrderID:  payment.SalesOrderID,
		DistributorID: payment.DistributorID,
		Amount:        payment.Amount.Amount().String(),
		Currency:      payment.Currency,
		Type:          payment.Type,
		Reference:     payment.Reference,
		PaymentDate:   payment.PaymentDate,
		Notes:         payment.Notes,
		Documents:     docs,
		OrderStatus:   order.PaymentStatus,
		OrderBalance:  order.AmountRemaining.Amount().String(),
		CreatedAt:     payment.CreatedAt,
	}
}
