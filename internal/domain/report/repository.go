package report

import (
	"context"
)

// ReportRepository defines the read-only queries feeding the derived
// reports. Implementations aggregate in SQL and return the flat inputs
// the builders in this package consume.
type ReportRepository interface {
	// StatementDebits returns the distributor's invoices matching the
	// filter, oldest first
	StatementDebits(ctx context.Context, filter StatementFilter) ([]StatementDebit, error)

	// StatementCredits returns the distributor's payments matching the
	// filter, oldest first
	StatementCredits(ctx context.Context, filter StatementFilter) ([]StatementCredit, error)

	// IntakeByMedicine aggregates received batch quantities per medicine
	IntakeByMedicine(ctx context.Context, filter StockSummaryFilter) ([]MedicineIntake, error)

	// OutflowByMedicine aggregates sold line-item quantities per medicine
	OutflowByMedicine(ctx context.Context, filter StockSummaryFilter) ([]MedicineOutflow, error)

	// RegisterRows returns one page of filtered payments, newest first,
	// with the total row count across all pages
	RegisterRows(ctx context.Context, filter PaymentRegisterFilter) ([]RegisterRow, int64, error)
}
