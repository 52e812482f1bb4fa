package persistence

import (
	"context"

	appinv "github.com/pharmalink/backend/internal/application/inventory"
	"github.com/pharmalink/backend/internal/domain/catalog"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// InventoryTransactionScope implements the shipment-intake
// TransactionScope using GORM transactions. Inline medicine creation and
// the shipment with its batches commit or roll back together.
type InventoryTransactionScope struct {
	db *gorm.DB
}

// NewInventoryTransactionScope creates a new InventoryTransactionScope
func NewInventoryTransactionScope(db *gorm.DB) *InventoryTransactionScope {
	return &InventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *InventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryTransactionalRepositories{tx: tx})
	})
}

type inventoryTransactionalRepositories struct {
	tx *gorm.DB
}

// ShipmentRepo returns the shipment repository scoped to the current transaction
func (r *inventoryTransactionalRepositories) ShipmentRepo() inventory.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

// MedicineRepo returns the medicine repository scoped to the current transaction
func (r *inventoryTransactionalRepositories) MedicineRepo() catalog.MedicineRepository {
	return NewGormMedicineRepository(r.tx)
}

// ManufacturerRepo returns the manufacturer repository scoped to the current transaction
func (r *inventoryTransactionalRepositories) ManufacturerRepo() catalog.ManufacturerRepository {
	return NewGormManufacturerRepository(r.tx)
}

var _ appinv.TransactionScope = (*InventoryTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*inventoryTransactionalRepositories)(nil)
