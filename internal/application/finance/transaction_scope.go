package finance

import (
	"context"

	"github.com/pharmalink/backend/internal/domain/finance"
	"github.com/pharmalink/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// payment touches. The order update and the payment insert commit or
// roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current transaction. Order reads go through FindByIDForUpdate so
// concurrent payments against the same order serialize.
type TransactionalRepositories interface {
	// OrderRepo returns the sales order repository scoped to the current transaction
	OrderRepo() trade.SalesOrderRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() finance.PaymentRepository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	orderRepo   trade.SalesOrderRepository
	paymentRepo finance.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(orderRepo trade.SalesOrderRepository, paymentRepo finance.PaymentRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
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

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRepository {
	return s.paymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
