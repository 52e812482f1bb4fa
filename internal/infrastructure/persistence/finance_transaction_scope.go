package persistence

import (
	"context"

	appfinance "github.com/pharmalink/backend/internal/application/finance"
	"github.com/pharmalink/backend/internal/domain/finance"
	"github.com/pharmalink/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// FinanceTransactionScope implements the payment TransactionScope using
// GORM transactions. The order update and the payment insert commit or
// roll back together.
type FinanceTransactionScope struct {
	db *gorm.DB
}

// NewFinanceTransactionScope creates a new FinanceTransactionScope
func NewFinanceTransactionScope(db *gorm.DB) *FinanceTransactionScope {
	return &FinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *FinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&financeTransactionalRepositories{tx: tx})
	})
}

type financeTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the sales order repository scoped to the current transaction
func (r *financeTransactionalRepositories) OrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction
func (r *financeTransactionalRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var _ appfinance.TransactionScope = (*FinanceTransactionScope)(nil)
var _ appfinance.TransactionalRepositories = (*financeTransactionalRepositories)(nil)
