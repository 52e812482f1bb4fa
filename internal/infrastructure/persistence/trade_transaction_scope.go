package persistence

import (
	"context"

	apptrade "github.com/pharmalink/backend/internal/application/trade"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/partner"
	"github.com/pharmalink/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// TradeTransactionScope implements the order-creation TransactionScope
// using GORM transactions. Batch deductions, the order insert and the
// order-number allocation commit or roll back as one unit.
type TradeTransactionScope struct {
	db *gorm.DB
}

// NewTradeTransactionScope creates a new TradeTransactionScope
func NewTradeTransactionScope(db *gorm.DB) *TradeTransactionScope {
	return &TradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *TradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tradeTransactionalRepositories{tx: tx})
	})
}

type tradeTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the sales order repository scoped to the current transaction
func (r *tradeTransactionalRepositories) OrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// BatchRepo returns the shipment batch repository scoped to the current transaction
func (r *tradeTransactionalRepositories) BatchRepo() inventory.ShipmentBatchRepository {
	return NewGormShipmentBatchRepository(r.tx)
}

// DistributorRepo returns the distributor repository scoped to the current transaction
func (r *tradeTransactionalRepositories) DistributorRepo() partner.DistributorRepository {
	return NewGormDistributorRepository(r.tx)
}

var _ apptrade.TransactionScope = (*TradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*tradeTransactionalRepositories)(nil)
