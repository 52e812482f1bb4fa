package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EntryKind distinguishes statement lines
type EntryKind string

const (
	EntryDebit  EntryKind = "debit"  // invoice raised against the distributor
	EntryCredit EntryKind = "credit" // payment received
)

// StatementDebit is an invoice line feeding a statement
type StatementDebit struct {
	Date        time.Time
	OrderID     uuid.UUID
	OrderNumber string
	Amount      decimal.Decimal
}

// StatementCredit is a payment line feeding a statement
type StatementCredit struct {
	Date        time.Time
	PaymentID   uuid.UUID
	PaymentType string
	Amount      decimal.Decimal
}

// StatementEntry is one chronological line of an account statement with
// the balance after the line was applied.
type StatementEntry struct {
	Date           time.Time       `json:"date"`
	Kind           EntryKind       `json:"kind"`
	Description    string          `json:"description"`
	ReferenceID    uuid.UUID       `json:"referenceId"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// StatementSummary aggregates a statement's totals
type StatementSummary struct {
	TotalInvoices       int             `json:"totalInvoices"`
	TotalPayments       int             `json:"totalPayments"`
	TotalInvoicedAmount decimal.Decimal `json:"totalInvoicedAmount"`
	TotalPaidAmount     decimal.Decimal `json:"totalPaidAmount"`
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
}

// StatementPeriod echoes the requested date range
type StatementPeriod struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// StatementFilter scopes the debits and credits feeding a statement.
// Currency is optional; when nil both currencies are included.
type StatementFilter struct {
	DistributorID uuid.UUID
	From          *time.Time
	To            *time.Time
	Currency      *valueobject.Currency
}

// CurrencyLabel returns the currency filter as echoed on the statement,
// "ALL" when no currency filter was applied
func (f StatementFilter) CurrencyLabel() string {
	if f.Currency == nil {
		return "ALL"
	}
	return f.Currency.String()
}

// AccountStatement is the full statement read model for one distributor.
// Currency is the distributor's own currency; CurrencyFilter echoes the
// requested currency scope, "ALL" when none was given.
type AccountStatement struct {
	DistributorID   uuid.UUID            `json:"distributorId"`
	DistributorName string               `json:"distributorName"`
	Currency        valueobject.Currency `json:"currency"`
	CurrencyFilter  string               `json:"currencyFilter"`
	Period          StatementPeriod      `json:"period"`
	Summary         StatementSummary     `json:"summary"`
	Transactions    []StatementEntry     `json:"transactions"`
}

// BuildStatementEntries merges invoices and payments into one
// chronological sequence and computes the running balance after each
// line. The balance is cumulative debits minus cumulative credits; a
// statement that ends settled therefore ends at zero. Lines sharing a
// timestamp keep debits ahead of credits so a same-day invoice and
// payment never show a negative intermediate balance.
func BuildStatementEntries(debits []StatementDebit, credits []StatementCredit) ([]StatementEntry, StatementSummary) {
	entries := make([]StatementEntry, 0, len(debits)+len(credits))
	for _, d := range debits {
		entries = append(entries, StatementEntry{
			Date:        d.Date,
			Kind:        EntryDebit,
			Description: "Invoice " + d.OrderNumber,
			ReferenceID: d.OrderID,
			Amount:      d.Amount,
		})
	}
	for _, c := range credits {
		entries = append(entries, StatementEntry{
			Date:        c.Date,
			Kind:        EntryCredit,
			Description: "Payment (" + c.PaymentType + ")",
			ReferenceID: c.PaymentID,
			Amount:      c.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	summary := StatementSummary{
		TotalInvoicedAmount: decimal.Zero,
		TotalPaidAmount:     decimal.Zero,
		OutstandingBalance:  decimal.Zero,
	}
	balance := decimal.Zero
	for i := range entries {
		switch entries[i].Kind {
		case EntryDebit:
			balance = balance.Add(entries[i].Amount)
			summary.TotalInvoices++
			summary.TotalInvoicedAmount = summary.TotalInvoicedAmount.Add(entries[i].Amount)
		case EntryCredit:
			balance = balance.Sub(entries[i].Amount)
			summary.TotalPayments++
			summary.TotalPaidAmount = summary.TotalPaidAmount.Add(entries[i].Amount)
		}
		entries[i].RunningBalance = balance
	}
	summary.OutstandingBalance = balance

	return entries, summary
}
