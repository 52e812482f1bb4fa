package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// MedicineRepository defines the interface for medicine persistence
type MedicineRepository interface {
	// FindByID finds a medicine by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Medicine, error)

	// FindByNameAndStrength finds a medicine by its name and strength,
	// used for inline creation during shipment intake
	FindByNameAndStrength(ctx context.Context, name, strength string) (*Medicine, error)

	// FindByIDs finds multiple medicines by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Medicine, error)

	// FindAll finds all medicines matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Medicine, error)

	// Save creates or updates a medicine
	Save(ctx context.Context, medicine *Medicine) error

	// Count counts medicines matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountActive counts active medicines
	CountActive(ctx context.Context) (int64, error)
}

// ManufacturerRepository defines the interface for manufacturer persistence
type ManufacturerRepository interface {
	// FindByID finds a manufacturer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error)

	// FindByName finds a manufacturer by its exact name
	FindByName(ctx context.Context, name string) (*Manufacturer, error)

	// FindAll finds all manufacturers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Manufacturer, error)

	// Save creates or updates a manufacturer
	Save(ctx context.Context, manufacturer *Manufacturer) error

	// Count counts manufacturers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
