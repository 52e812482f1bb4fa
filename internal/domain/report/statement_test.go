package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildStatementEntries_RunningBalance(t *testing.T) {
	orderID := uuid.New()
	debits := []StatementDebit{
		{Date: day(1), OrderID: orderID, OrderNumber: "SO-001", Amount: decimal.NewFromInt(100)},
	}
	credits := []StatementCredit{
		{Date: day(5), PaymentID: uuid.New(), PaymentType: "CASH", Amount: decimal.NewFromInt(40)},
		{Date: day(9), PaymentID: uuid.New(), PaymentType: "TRANSFER", Amount: decimal.NewFromInt(60)},
	}

	entries, summary := BuildStatementEntries(debits, credits)
	require.Len(t, entries, 3)

	// Invoice 100, then payments 40 and 60: balance runs 100, 60, 0.
	assert.True(t, entries[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, entries[1].RunningBalance.Equal(decimal.NewFromInt(60)))
	assert.True(t, entries[2].RunningBalance.Equal(decimal.NewFromInt(0)))

	assert.Equal(t, 1, summary.TotalInvoices)
	assert.Equal(t, 2, summary.TotalPayments)
	assert.True(t, summary.OutstandingBalance.IsZero())
}

func TestBuildStatementEntries_Outstanding(t *testing.T) {
	debits := []StatementDebit{
		{Date: day(1), OrderID: uuid.New(), OrderNumber: "SO-001", Amount: decimal.NewFromInt(300)},
		{Date: day(3), OrderID: uuid.New(), OrderNumber: "SO-002", Amount: decimal.NewFromInt(200)},
	}
	credits := []StatementCredit{
		{Date: day(4), PaymentID: uuid.New(), PaymentType: "CASH", Amount: decimal.NewFromInt(120)},
	}

	entries, summary := BuildStatementEntries(debits, credits)
	require.Len(t, entries, 3)
	assert.True(t, summary.TotalInvoicedAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalPaidAmount.Equal(decimal.NewFromInt(120)))
	assert.True(t, summary.OutstandingBalance.Equal(decimal.NewFromInt(380)))
	assert.True(t, entries[2].RunningBalance.Equal(decimal.NewFromInt(380)))
}

func TestBuildStatementEntries_ChronologicalMerge(t *testing.T) {
	debits := []StatementDebit{
		{Date: day(10), OrderID: uuid.New(), OrderNumber: "SO-002", Amount: decimal.NewFromInt(50)},
		{Date: day(2), OrderID: uuid.New(), OrderNumber: "SO-001", Amount: decimal.NewFromInt(80)},
	}
	credits := []StatementCredit{
		{Date: day(6), PaymentID: uuid.New(), PaymentType: "CARD", Amount: decimal.NewFromInt(80)},
	}

	entries, _ := BuildStatementEntries(debits, credits)
	require.Len(t, entries, 3)
	assert.Equal(t, "Invoice SO-001", entries[0].Description)
	assert.Equal(t, "Payment (CARD)", entries[1].Description)
	assert.Equal(t, "Invoice SO-002", entries[2].Description)
}

func TestBuildStatementEntries_SameDayDebitBeforeCredit(t *testing.T) {
	debits := []StatementDebit{
		{Date: day(1), OrderID: uuid.New(), OrderNumber: "SO-001", Amount: decimal.NewFromInt(100)},
	}
	credits := []StatementCredit{
		{Date: day(1), PaymentID: uuid.New(), PaymentType: "CASH", Amount: decimal.NewFromInt(100)},
	}

	entries, _ := BuildStatementEntries(debits, credits)
	require.Len(t, entries, 2)
	assert.Equal(t, EntryDebit, entries[0].Kind)
	assert.False(t, entries[0].RunningBalance.IsNegative())
	assert.True(t, entries[1].RunningBalance.IsZero())
}

func TestBuildStatementEntries_Empty(t *testing.T) {
	entries, summary := BuildStatementEntries(nil, nil)
	assert.Empty(t, entries)
	assert.Equal(t, 0, summary.TotalInvoices)
	assert.True(t, summary.OutstandingBalance.IsZero())
}
