package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order by its ID, line items included
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByIDForUpdate finds a sales order and locks its row for the
	// duration of the enclosing transaction. Payment application reads
	// through this so concurrent payments serialize on the order.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindAll finds all sales orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// FindByDistributor finds all orders of a distributor matching the filter
	FindByDistributor(ctx context.Context, distributorID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)

	// Save creates or updates a sales order together with its line items
	Save(ctx context.Context, order *SalesOrder) error

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextOrderNumber allocates the next sequential order number
	NextOrderNumber(ctx context.Context) (string, error)
}
