package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/partner"
	"github.com/pharmalink/backend/internal/domain/report"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReportRepo struct {
	debits   []report.StatementDebit
	credits  []report.StatementCredit
	intakes  []report.MedicineIntake
	outflows []report.MedicineOutflow
	rows     []report.RegisterRow
	total    int64

	lastRegisterFilter  report.PaymentRegisterFilter
	lastStatementFilter report.StatementFilter
}

func (r *fakeReportRepo) StatementDebits(_ context.Context, filter report.StatementFilter) ([]report.StatementDebit, error) {
	r.lastStatementFilter = filter
	return r.debits, nil
}

func (r *fakeReportRepo) StatementCredits(_ context.Context, filter report.StatementFilter) ([]report.StatementCredit, error) {
	r.lastStatementFilter = filter
	return r.credits, nil
}

func (r *fakeReportRepo) IntakeByMedicine(context.Context, report.StockSummaryFilter) ([]report.MedicineIntake, error) {
	return r.intakes, nil
}

func (r *fakeReportRepo) OutflowByMedicine(context.Context, report.StockSummaryFilter) ([]report.MedicineOutflow, error) {
	return r.outflows, nil
}

func (r *fakeReportRepo) RegisterRows(_ context.Context, filter report.PaymentRegisterFilter) ([]report.RegisterRow, int64, error) {
	r.lastRegisterFilter = filter
	return r.rows, r.total, nil
}

type fakeDistributorRepo struct {
	distributor *partner.Distributor
}

func (r *fakeDistributorRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Distributor, error) {
	if r.distributor == nil || r.distributor.ID != id {
		return nil, shared.ErrNotFound
	}
	return r.distributor, nil
}

func (r *fakeDistributorRepo) FindByCode(context.Context, string) (*partner.Distributor, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeDistributorRepo) FindAll(context.Context, shared.Filter) ([]partner.Distributor, error) {
	return nil, nil
}

func (r *fakeDistributorRepo) Save(context.Context, *partner.Distributor) error { return nil }

func (r *fakeDistributorRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }

func (r *fakeDistributorRepo) ExistsByCode(context.Context, string) (bool, error) { return false, nil }

func TestReportService_AccountStatement(t *testing.T) {
	distributor, err := partner.NewDistributor("DIST-001", "Kano Medical Supplies", partner.DistributorTypeLocal, valueobject.NGN)
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	repo := &fakeReportRepo{
		debits: []report.StatementDebit{
			{Date: day(1), OrderID: uuid.New(), OrderNumber: "SO-001", Amount: decimal.NewFromInt(100)},
		},
		credits: []report.StatementCredit{
			{Date: day(5), PaymentID: uuid.New(), PaymentType: "CASH", Amount: decimal.NewFromInt(40)},
		},
	}
	svc := NewReportService(repo, &fakeDistributorRepo{distributor: distributor}, zap.NewNop())

	stmt, err := svc.AccountStatement(context.Background(), report.StatementFilter{DistributorID: distributor.ID})
	require.NoError(t, err)
	assert.Equal(t, "Kano Medical Supplies", stmt.DistributorName)
	assert.Equal(t, valueobject.NGN, stmt.Currency)
	assert.Equal(t, "ALL", stmt.CurrencyFilter)
	require.Len(t, stmt.Transactions, 2)
	assert.True(t, stmt.Transactions[1].RunningBalance.Equal(decimal.NewFromInt(60)))
	assert.True(t, stmt.Summary.OutstandingBalance.Equal(decimal.NewFromInt(60)))
}

func TestReportService_AccountStatement_CurrencyFilterApplied(t *testing.T) {
	distributor, err := partner.NewDistributor("DIST-002", "Lagos Pharma Traders", partner.DistributorTypeInternational, valueobject.USD)
	require.NoError(t, err)

	repo := &fakeReportRepo{}
	svc := NewReportService(repo, &fakeDistributorRepo{distributor: distributor}, zap.NewNop())

	usd := valueobject.USD
	stmt, err := svc.AccountStatement(context.Background(), report.StatementFilter{
		DistributorID: distributor.ID,
		Currency:      &usd,
	})
	require.NoError(t, err)

	// The currency scope reaches both the order and the payment queries
	// and is echoed on the statement.
	require.NotNil(t, repo.lastStatementFilter.Currency)
	assert.Equal(t, valueobject.USD, *repo.lastStatementFilter.Currency)
	assert.Equal(t, "USD", stmt.CurrencyFilter)
}

func TestReportService_AccountStatement_DistributorNotFound(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeDistributorRepo{}, zap.NewNop())

	_, err := svc.AccountStatement(context.Background(), report.StatementFilter{DistributorID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReportService_StockSummary(t *testing.T) {
	medID := uuid.New()
	repo := &fakeReportRepo{
		intakes:  []report.MedicineIntake{{MedicineID: medID, MedicineName: "Amoxicillin 500mg", Quantity: 500}},
		outflows: []report.MedicineOutflow{{MedicineID: medID, MedicineName: "Amoxicillin 500mg", Quantity: 120}},
	}
	svc := NewReportService(repo, &fakeDistributorRepo{}, zap.NewNop())

	rows, err := svc.StockSummary(context.Background(), report.StockSummaryFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(380), rows[0].CurrentBalance)
}

func TestReportService_PaymentRegister_AppliesDefaults(t *testing.T) {
	repo := &fakeReportRepo{total: 120}
	svc := NewReportService(repo, &fakeDistributorRepo{}, zap.NewNop())

	register, err := svc.PaymentRegister(context.Background(), report.PaymentRegisterFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastRegisterFilter.Page)
	assert.Equal(t, report.DefaultRegisterLimit, repo.lastRegisterFilter.Limit)
	assert.Equal(t, 3, register.Pages)
}
