package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/inventory"
)

// CreateShipmentRequest is the input for a shipment intake
type CreateShipmentRequest struct {
	ProformaInvoiceNumber string                       `json:"proformaInvoiceNumber" binding:"required"`
	BillOfLading          string                       `json:"billOfLading"`
	SupplierName          string                       `json:"supplierName" binding:"required"`
	Mode                  string                       `json:"mode" binding:"required"`
	ReceivedDate          *time.Time                   `json:"receivedDate"`
	Notes                 string                       `json:"notes"`
	Batches               []CreateShipmentBatchRequest `json:"batches" binding:"required,min=1,dive"`
}

// CreateShipmentBatchRequest is one batch on a shipment. Either an
// existing medicine is referenced by ID or a new one is described inline
// and created during intake.
type CreateShipmentBatchRequest struct {
	MedicineID   *uuid.UUID             `json:"medicineId"`
	Medicine     *InlineMedicineRequest `json:"medicine"`
	BatchNumber  string                 `json:"batchNumber" binding:"required"`
	ExpiryDate   *time.Time             `json:"expiryDate"`
	Quantity     int64                  `json:"quantity" binding:"required,gt=0"`
	UnitCost     string                 `json:"unitCost" binding:"required,money"`
	UnitPrice    string                 `json:"unitPrice" binding:"required,money"`
}

// InlineMedicineRequest describes a medicine created during intake
type InlineMedicineRequest struct {
	Name           string    `json:"name" binding:"required"`
	Strength       string    `json:"strength"`
	Form           string    `json:"form" binding:"required"`
	ManufacturerID uuid.UUID `json:"manufacturerId" binding:"required"`
}

// ShipmentListFilter narrows the shipment list
type ShipmentListFilter struct {
	Mode           *string
	DeliveryStatus *string
	Page           int
	PageSize       int
}

// ShipmentBatchResponse is the API view of one received batch
type ShipmentBatchResponse struct {
	ID               uuid.UUID  `json:"id"`
	MedicineID       uuid.UUID  `json:"medicineId"`
	BatchNumber      string     `json:"batchNumber"`
	ReceivedAt       time.Time  `json:"receivedAt"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	QuantityReceived int64      `json:"quantityReceived"`
	Quantity         int64      `json:"quantity"`
	UnitCost         string     `json:"unitCost"`
	UnitPrice        string     `json:"unitPrice"`
}

// ShipmentResponse is the API view of a shipment
type ShipmentResponse struct {
	ID                    uuid.UUID               `json:"id"`
	ProformaInvoiceNumber string                  `json:"proformaInvoiceNumber"`
	BillOfLading          string                  `json:"billOfLading,omitempty"`
	SupplierName          string                  `json:"supplierName"`
	Mode                  inventory.ShipmentMode  `json:"mode"`
	DeliveryStatus        inventory.DeliveryStatus `json:"deliveryStatus"`
	ReceivedDate          time.Time               `json:"receivedDate"`
	TotalQuantity         int64                   `json:"totalQuantity"`
	Notes                 string                  `json:"notes,omitempty"`
	Batches               []ShipmentBatchResponse `json:"batches"`
	CreatedAt             time.Time               `json:"createdAt"`
}

// ToShipmentResponse converts a shipment to its response DTO
func ToShipmentResponse(s *inventory.Shipment) ShipmentResponse {
	batches := make([]ShipmentBatchResponse, 0, len(s.Batches))
	for i := range s.Batches {
		batches = append(batches, ToShipmentBatchResponse(&s.Batches[i]))
	}
	return ShipmentResponse{
		ID:                    s.ID,
		ProformaInvoiceNumber: s.ProformaInvoiceNumber,
		BillOfLading:          s.BillOfLading,
		SupplierName:          s.SupplierName,
		Mode:                  s.Mode,
		DeliveryStatus:        s.DeliveryStatus,
		ReceivedDate:          s.ReceivedDate,
		TotalQuantity:         s.TotalQuantity(),
		Notes:                 s.Notes,
		Batches:               batches,
		CreatedAt:             s.CreatedAt,
	}
}

// ToShipmentBatchResponse converts a batch to its response DTO
func ToShipmentBatchResponse(b *inventory.ShipmentBatch) ShipmentBatchResponse {
	return ShipmentBatchResponse{
		ID:               b.ID,
		MedicineID:       b.MedicineID,
		BatchNumber:      b.BatchNumber,
		ReceivedAt:       b.ReceivedAt,
		ExpiryDate:       b.ExpiryDate,
		QuantityReceived: b.QuantityReceived,
		Quantity:         b.Quantity,
		UnitCost:         b.UnitCost.Amount().String(),
		UnitPrice:        b.UnitPrice.Amount().String(),
	}
}

// StockOverview is the dashboard headline view
type StockOverview struct {
	TotalStockValue  string `json:"totalStockValue"`
	ExpiringBatches  int64  `json:"expiringBatches"`
	ActiveMedicines  int64  `json:"activeMedicines"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// ExpiringBatchView is one batch in the expiring-stock alert list
type ExpiringBatchView struct {
	BatchID      uuid.UUID `json:"batchId"`
	MedicineID   uuid.UUID `json:"medicineId"`
	BatchNumber  string    `json:"batchNumber"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Quantity     int64     `json:"quantity"`
	DaysToExpiry int       `json:"daysToExpiry"`
}
