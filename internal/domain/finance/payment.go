package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
)

// PaymentType represents the instrument used to pay
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "CASH"
	PaymentTypeTransfer PaymentType = "TRANSFER"
	PaymentTypeCard     PaymentType = "CARD"
	PaymentTypeCredit   PaymentType = "CREDIT"
	PaymentTypeCheque   PaymentType = "CHEQUE"
)

// IsValid checks if the payment type is supported
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeTransfer, PaymentTypeCard, PaymentTypeCredit, PaymentTypeCheque:
		return true
	}
	return false
}

// Payment is an immutable record of money received against a sales
// order. Corrections are made with new payments, never by editing.
// The distributor reference is denormalized from the order so register
// queries do not need a join.
type Payment struct {
	shared.BaseAggregateRoot
	SalesOrderID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	DistributorID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount        valueobject.Money    `gorm:"type:decimal(18,4);not null"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null"`
	Type          PaymentType          `gorm:"type:varchar(10);not null;index"`
	Reference     string               `gorm:"type:varchar(100)"` // bank/cheque reference
	PaymentDate   time.Time            `gorm:"not null;index"`
	CreatedByID   uuid.UUID            `gorm:"type:uuid;not null"`
	Notes         string               `gorm:"type:text"`
	Documents     []Document           `gorm:"foreignKey:PaymentID"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment record
func NewPayment(
	salesOrderID, distributorID uuid.UUID,
	amount valueobject.Money,
	paymentType PaymentType,
	paymentDate time.Time,
	createdByID uuid.UUID,
) (*Payment, error) {
	if salesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Sales order is required")
	}
	if distributorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DISTRIBUTOR", "Distributor is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Unsupported payment type: "+string(paymentType))
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Created-by user is required")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SalesOrderID:      salesOrderID,
		DistributorID:     distributorID,
		Amount:            amount,
		Currency:          amount.Currency(),
		Type:              paymentType,
		PaymentDate:       paymentDate,
		CreatedByID:       createdByID,
	}, nil
}

// AttachDocument links a supporting document (receipt scan, bank slip)
// to the payment.
func (p *Payment) AttachDocument(url, fileName string) error {
	doc, err := NewDocument(p.ID, url, fileName)
	if err != nil {
		return err
	}
	p.Documents = append(p.Documents, *doc)
	return nil
}
