package trade

import (
	"context"

	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/partner"
	"github.com/pharmalink/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories an
// order creation touches. Everything inside one Execute call commits or
// rolls back atomically: a shortage on the last line undoes the batch
// deductions of every earlier line.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current transaction. Batch reads through BatchRepo().FindAllocatable
// hold row locks until the transaction ends, so concurrent orders for the
// same medicine serialize.
type TransactionalRepositories interface {
	// OrderRepo returns the sales order repository scoped to the current transaction
	OrderRepo() trade.SalesOrderRepository
	// BatchRepo returns the shipment batch repository scoped to the current transaction
	BatchRepo() inventory.ShipmentBatchRepository
	// DistributorRepo returns the distributor repository scoped to the current transaction
	DistributorRepo() partner.DistributorRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the fake repositories are already in memory.
type NoOpTransactionScope struct {
	orderRepo       trade.SalesOrderRepository
	batchRepo       inventory.ShipmentBatchRepository
	distributorRepo partner.DistributorRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo trade.SalesOrderRepository,
	batchRepo inventory.ShipmentBatchRepository,
	distributorRepo partner.DistributorRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:       orderRepo,
		batchRepo:       batchRepo,
		distributorRepo: distributorRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the sales order repository
func (s *NoOpTransactionScope) OrderRepo() trade.SalesOrderRepository {
	return s.orderRepo
}

// BatchRepo returns the shipment batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.ShipmentBatchRepository {
	return s.batchRepo
}

// DistributorRepo returns the distributor repository
func (s *NoOpTransactionScope) DistributorRepo() partner.DistributorRepository {
	return s.distributorRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
