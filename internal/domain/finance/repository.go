package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID, documents included
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindBySalesOrder finds all payments of a sales order, oldest first
	FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]Payment, error)

	// FindByDistributor finds all payments of a distributor matching the filter
	FindByDistributor(ctx context.Context, distributorID uuid.UUID, filter shared.Filter) ([]Payment, error)

	// FindAll finds all payments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// Save creates a payment together with its documents
	Save(ctx context.Context, payment *Payment) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
