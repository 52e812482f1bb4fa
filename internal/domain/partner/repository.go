package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// DistributorRepository defines the interface for distributor persistence
type DistributorRepository interface {
	// FindByID finds a distributor by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Distributor, error)

	// FindByCode finds a distributor by its code
	FindByCode(ctx context.Context, code string) (*Distributor, error)

	// FindAll finds all distributors matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Distributor, error)

	// Save creates or updates a distributor
	Save(ctx context.Context, distributor *Distributor) error

	// Count counts distributors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a distributor with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
