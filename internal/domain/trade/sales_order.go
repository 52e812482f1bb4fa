package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
)

// PaymentStatus represents the settlement state of a sales order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// OverpaymentError reports a payment that exceeds what the order still
// owes. It carries the outstanding balance so the caller can tell the
// client exactly how much is acceptable.
type OverpaymentError struct {
	OrderID     uuid.UUID
	Attempted   valueobject.Money
	Outstanding valueobject.Money
}

// Error implements the error interface
func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds outstanding balance of %s on order %s",
		e.Attempted, e.Outstanding, e.OrderID)
}

// AlreadyPaidError reports a payment against a fully settled order
type AlreadyPaidError struct {
	OrderID uuid.UUID
}

// Error implements the error interface
func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("order %s is already fully paid", e.OrderID)
}

// SalesOrder represents a confirmed sale to a distributor. The order
// amount is fixed at creation from the allocated line items; only the
// paid amount and the derived status change afterwards, through
// ApplyPayment.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	DistributorID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	SalesRepID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Currency        valueobject.Currency `gorm:"type:varchar(3);not null"`
	OrderAmount     valueobject.Money    `gorm:"type:decimal(18,4);not null"`
	AmountPaid      valueobject.Money    `gorm:"type:decimal(18,4);not null"`
	AmountRemaining valueobject.Money    `gorm:"type:decimal(18,4);not null"`
	PaymentStatus   PaymentStatus        `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	OrderDate       time.Time            `gorm:"not null;index"`
	Notes           string               `gorm:"type:text"`
	LineItems       []SalesLineItem      `gorm:"foreignKey:SalesOrderID"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesLineItem is one priced slice of a sales order, drawn from a single
// stock batch. Line items are immutable once the order is created.
type SalesLineItem struct {
	shared.BaseEntity
	SalesOrderID uuid.UUID         `gorm:"type:uuid;not null;index"`
	MedicineID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	BatchID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity     int64             `gorm:"not null"`
	UnitPrice    valueobject.Money `gorm:"type:decimal(18,4);not null"`
	LineTotal    valueobject.Money `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SalesLineItem) TableName() string {
	return "sales_line_items"
}

// NewSalesLineItem creates an immutable order line priced at the source
// batch's unit cost.
func NewSalesLineItem(medicineID, batchID uuid.UUID, quantity int64, unitPrice valueobject.Money) (*SalesLineItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if err := unitPrice.RequireNonNegative(); err != nil {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return &SalesLineItem{
		BaseEntity: shared.NewBaseEntity(),
		MedicineID: medicineID,
		BatchID:    batchID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		LineTotal:  unitPrice.MultiplyByInt(quantity),
	}, nil
}

// NewSalesOrder creates a sales order from its allocated line items. The
// order amount is the sum of line totals and never changes afterwards.
func NewSalesOrder(
	orderNumber string,
	distributorID, salesRepID uuid.UUID,
	currency valueobject.Currency,
	orderDate time.Time,
	lineItems []SalesLineItem,
) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if distributorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DISTRIBUTOR", "Distributor is required")
	}
	if salesRepID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Sales rep is required")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency: "+currency.String())
	}
	if len(lineItems) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line item")
	}

	total := valueobject.Zero(currency)
	for i := range lineItems {
		var err error
		total, err = total.Add(lineItems[i].LineTotal)
		if err != nil {
			return nil, shared.NewDomainError("CURRENCY_MISMATCH", "All line items must share the order currency")
		}
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		DistributorID:     distributorID,
		SalesRepID:        salesRepID,
		Currency:          currency,
		OrderAmount:       total,
		AmountPaid:        valueobject.Zero(currency),
		AmountRemaining:   total,
		PaymentStatus:     PaymentStatusPending,
		OrderDate:         orderDate,
		LineItems:         lineItems,
	}
	for i := range order.LineItems {
		order.LineItems[i].SalesOrderID = order.ID
	}
	return order, nil
}

// ApplyPayment records a payment against the order and recomputes the
// derived amounts and status. The paid amount never decreases and never
// exceeds the order amount; paying more than the outstanding balance
// fails with the balance attached, and a settled order accepts nothing.
func (o *SalesOrder) ApplyPayment(amount valueobject.Money) error {
	if amount.Currency() != o.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Payment currency must match the order currency")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if o.PaymentStatus == PaymentStatusPaid {
		return &AlreadyPaidError{OrderID: o.ID}
	}

	exceeds, err := amount.GreaterThan(o.AmountRemaining)
	if err != nil {
		return err
	}
	if exceeds {
		return &OverpaymentError{
			OrderID:     o.ID,
			Attempted:   amount,
			Outstanding: o.AmountRemaining,
		}
	}

	paid, err := o.AmountPaid.Add(amount)
	if err != nil {
		return err
	}
	remaining, err := o.OrderAmount.Subtract(paid)
	if err != nil {
		return err
	}

	o.AmountPaid = paid
	o.AmountRemaining = remaining
	o.PaymentStatus = derivePaymentStatus(paid, o.OrderAmount)
	o.Touch()
	o.IncrementVersion()
	return nil
}

// IsFullyPaid returns true if the order is settled
func (o *SalesOrder) IsFullyPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// derivePaymentStatus computes the status from the amounts so the stored
// status can never disagree with them.
func derivePaymentStatus(paid, total valueobject.Money) PaymentStatus {
	if paid.IsZero() {
		return PaymentStatusPending
	}
	if gte, _ := paid.GreaterThan(total); gte || paid.Equals(total) {
		return PaymentStatusPaid
	}
	return PaymentStatusPartial
}
