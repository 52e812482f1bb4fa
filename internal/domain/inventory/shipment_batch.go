package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
)

// ShipmentBatch represents a batch of a single medicine received on a
// shipment. Batches are the unit of stock: outbound allocation deducts
// from batch quantities and exhausted batches are kept for cost history,
// never deleted.
type ShipmentBatch struct {
	shared.BaseEntity
	ShipmentID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	MedicineID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_batch_medicine_received,priority:1"`
	BatchNumber      string     `gorm:"type:varchar(100);not null"`
	ReceivedAt       time.Time  `gorm:"not null;index:idx_batch_medicine_received,priority:2"` // intake order key
	ExpiryDate       *time.Time `gorm:"index"`
	QuantityReceived int64      `gorm:"not null"`
	Quantity         int64      `gorm:"not null;check:quantity >= 0"` // remaining units
	UnitCost         valueobject.Money `gorm:"type:decimal(18,4)"`
	UnitPrice        valueobject.Money `gorm:"type:decimal(18,4)"` // selling price per unit
}

// TableName returns the table name for GORM
func (ShipmentBatch) TableName() string {
	return "shipment_batches"
}

// NewShipmentBatch creates a new shipment batch
func NewShipmentBatch(
	medicineID uuid.UUID,
	batchNumber string,
	receivedAt time.Time,
	expiryDate *time.Time,
	quantity int64,
	unitCost, unitPrice valueobject.Money,
) (*ShipmentBatch, error) {
	if medicineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDICINE", "Medicine is required")
	}
	if batchNumber == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if err := unitCost.RequireNonNegative(); err != nil {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}
	if err := unitPrice.RequireNonNegative(); err != nil {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return &ShipmentBatch{
		BaseEntity:       shared.NewBaseEntity(),
		MedicineID:       medicineID,
		BatchNumber:      batchNumber,
		ReceivedAt:       receivedAt,
		ExpiryDate:       expiryDate,
		QuantityReceived: quantity,
		Quantity:         quantity,
		UnitCost:         unitCost,
		UnitPrice:        unitPrice,
	}, nil
}

// Deduct reduces the remaining quantity. The quantity must not exceed
// what remains; allocation computes the exact per-batch take before
// calling this.
func (b *ShipmentBatch) Deduct(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}
	if quantity > b.Quantity {
		return shared.ErrInsufficientStock
	}
	b.Quantity -= quantity
	b.Touch()
	return nil
}

// HasStock returns true if the batch has remaining quantity
func (b *ShipmentBatch) HasStock() bool {
	return b.Quantity > 0
}

// IsExpired returns true if the batch has expired as of the given time
func (b *ShipmentBatch) IsExpired(now time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(now)
}

// ExpiresWithin returns true if the batch expires within the given number of days
func (b *ShipmentBatch) ExpiresWithin(days int, now time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(now.AddDate(0, 0, days))
}

// StockValue returns the value of the remaining stock at selling price
func (b *ShipmentBatch) StockValue() valueobject.Money {
	return b.UnitPrice.MultiplyByInt(b.Quantity)
}

// CostValue returns the value of the remaining stock at unit cost
func (b *ShipmentBatch) CostValue() valueobject.Money {
	return b.UnitCost.MultiplyByInt(b.Quantity)
}
