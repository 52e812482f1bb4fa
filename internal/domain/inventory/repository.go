package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	// FindByID finds a shipment by its ID, batches included
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)

	// FindAll finds all shipments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)

	// Save creates or updates a shipment together with its batches
	Save(ctx context.Context, shipment *Shipment) error

	// Count counts shipments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByProformaInvoice checks if a shipment with the given proforma
	// invoice number exists
	ExistsByProformaInvoice(ctx context.Context, number string) (bool, error)
}

// ShipmentBatchRepository defines the interface for batch-level stock
type ShipmentBatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShipmentBatch, error)

	// FindAllocatable returns all batches of a medicine that still hold
	// stock, in no particular order. Transaction-bound implementations
	// lock the returned rows for update so concurrent allocations
	// serialize per batch.
	FindAllocatable(ctx context.Context, medicineID uuid.UUID) ([]*ShipmentBatch, error)

	// FindByMedicine finds all batches of a medicine matching the filter
	FindByMedicine(ctx context.Context, medicineID uuid.UUID, filter shared.Filter) ([]ShipmentBatch, error)

	// FindWithStock finds batches with remaining quantity, intake order
	FindWithStock(ctx context.Context, filter shared.Filter) ([]ShipmentBatch, error)

	// FindExpiring finds batches with stock expiring on or before the
	// given date, soonest expiry first
	FindExpiring(ctx context.Context, before time.Time, limit int) ([]ShipmentBatch, error)

	// FindRecent returns the most recently received batches
	FindRecent(ctx context.Context, limit int) ([]ShipmentBatch, error)

	// Save persists a single batch's state
	Save(ctx context.Context, batch *ShipmentBatch) error

	// SaveAll persists multiple batches
	SaveAll(ctx context.Context, batches []*ShipmentBatch) error

	// TotalStockValue returns the selling-price value of all remaining stock
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)

	// CountExpiring counts batches with stock expiring on or before the given date
	CountExpiring(ctx context.Context, before time.Time) (int64, error)
}
