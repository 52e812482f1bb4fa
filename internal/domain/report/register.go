package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentRegisterFilter narrows the payment register
type PaymentRegisterFilter struct {
	From          *time.Time
	To            *time.Time
	PaymentType   *string
	Currency      *valueobject.Currency
	DistributorID *uuid.UUID
	SalesOrderID  *uuid.UUID
	Page          int
	Limit         int
}

// DefaultRegisterLimit is the page size when the caller does not set one
const DefaultRegisterLimit = 50

// Normalize applies pagination defaults in place
func (f *PaymentRegisterFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultRegisterLimit
	}
}

// RegisterRow is one flat payment line, newest first
type RegisterRow struct {
	PaymentID       uuid.UUID            `json:"paymentId"`
	Date            time.Time            `json:"date"`
	Amount          decimal.Decimal      `json:"amount"`
	Type            string               `json:"type"`
	Currency        valueobject.Currency `json:"currency"`
	DistributorID   uuid.UUID            `json:"distributorId"`
	DistributorName string               `json:"distributorName"`
	SalesOrderID    uuid.UUID            `json:"salesOrderId"`
	OrderNumber     string               `json:"orderNumber"`
}

// PaymentRegister is the paginated register read model
type PaymentRegister struct {
	Rows  []RegisterRow `json:"rows"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
	Pages int           `json:"pages"`
}

// NewPaymentRegister assembles a register page with derived page count
func NewPaymentRegister(rows []RegisterRow, total int64, page, limit int) PaymentRegister {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return PaymentRegister{
		Rows:  rows,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}
