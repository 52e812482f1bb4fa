package inventory

import (
	"context"

	"github.com/pharmalink/backend/internal/domain/catalog"
	"github.com/pharmalink/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// shipment intake touches. Inline medicine creation and the shipment
// with its batches commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current transaction
type TransactionalRepositories interface {
	// ShipmentRepo returns the shipment repository scoped to the current transaction
	ShipmentRepo() inventory.ShipmentRepository
	// MedicineRepo returns the medicine repository scoped to the current transaction
	MedicineRepo() catalog.MedicineRepository
	// ManufacturerRepo returns the manufacturer repository scoped to the current transaction
	ManufacturerRepo() catalog.ManufacturerRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	shipmentRepo     inventory.ShipmentRepository
	medicineRepo     catalog.MedicineRepository
	manufacturerRepo catalog.ManufacturerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	shipmentRepo inventory.ShipmentRepository,
	medicineRepo catalog.MedicineRepository,
	manufacturerRepo catalog.ManufacturerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		shipmentRepo:     shipmentRepo,
		medicineRepo:     medicineRepo,
		manufacturerRepo: manufacturerRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ShipmentRepo returns the shipment repository
func (s *NoOpTransactionScope) ShipmentRepo() inventory.ShipmentRepository {
	return s.shipmentRepo
}

// MedicineRepo returns the medicine repository
func (s *NoOpTransactionScope) MedicineRepo() catalog.MedicineRepository {
	return s.medicineRepo
}

// ManufacturerRepo returns the manufacturer repository
func (s *NoOpTransactionScope) ManufacturerRepo() catalog.ManufacturerRepository {
	return s.manufacturerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
