package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// ShipmentMode represents how an inbound consignment travelled
type ShipmentMode string

const (
	ShipmentModeAir  ShipmentMode = "AIR"
	ShipmentModeSea  ShipmentMode = "SEA"
	ShipmentModeLand ShipmentMode = "LAND"
)

// IsValid checks if the shipment mode is supported
func (m ShipmentMode) IsValid() bool {
	switch m {
	case ShipmentModeAir, ShipmentModeSea, ShipmentModeLand:
		return true
	}
	return false
}

// DeliveryStatus represents the delivery state of a shipment
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// IsValid checks if the delivery status is supported
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// Shipment represents an inbound consignment of medicines. It is the
// intake document that brings batches into stock.
type Shipment struct {
	shared.BaseAggregateRoot
	ProformaInvoiceNumber string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	BillOfLading          string         `gorm:"type:varchar(100)"`
	SupplierName          string         `gorm:"type:varchar(200);not null"`
	Mode                  ShipmentMode   `gorm:"type:varchar(10);not null"`
	DeliveryStatus        DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ReceivedDate          time.Time      `gorm:"not null;index"`
	CreatedByID           uuid.UUID      `gorm:"type:uuid;not null"`
	Notes                 string         `gorm:"type:text"`
	Batches               []ShipmentBatch `gorm:"foreignKey:ShipmentID"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a new shipment intake document
func NewShipment(proformaInvoiceNumber, supplierName string, mode ShipmentMode, receivedDate time.Time, createdByID uuid.UUID) (*Shipment, error) {
	if strings.TrimSpace(proformaInvoiceNumber) == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Proforma invoice number cannot be empty")
	}
	if strings.TrimSpace(supplierName) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_SHIPMENT_MODE", "Shipment mode must be AIR, SEA or LAND")
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Created-by user is required")
	}

	return &Shipment{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		ProformaInvoiceNumber: strings.TrimSpace(proformaInvoiceNumber),
		SupplierName:          strings.TrimSpace(supplierName),
		Mode:                  mode,
		DeliveryStatus:        DeliveryStatusPending,
		ReceivedDate:          receivedDate,
		CreatedByID:           createdByID,
	}, nil
}

// AddBatch attaches a batch to this shipment
func (s *Shipment) AddBatch(batch *ShipmentBatch) {
	batch.ShipmentID = s.ID
	s.Batches = append(s.Batches, *batch)
}

// UpdateDeliveryStatus transitions the shipment's delivery status.
// Delivered and cancelled are terminal.
func (s *Shipment) UpdateDeliveryStatus(status DeliveryStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_DELIVERY_STATUS", "Unsupported delivery status: "+string(status))
	}
	if s.DeliveryStatus == DeliveryStatusDelivered || s.DeliveryStatus == DeliveryStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Shipment delivery status is final and cannot change")
	}
	s.DeliveryStatus = status
	s.Touch()
	s.IncrementVersion()
	return nil
}

// TotalQuantity returns the total quantity received across all batches
func (s *Shipment) TotalQuantity() int64 {
	var total int64
	for i := range s.Batches {
		total += s.Batches[i].QuantityReceived
	}
	return total
}
