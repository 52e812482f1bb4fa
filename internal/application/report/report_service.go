package report

import (
	"context"

	"github.com/pharmalink/backend/internal/domain/partner"
	"github.com/pharmalink/backend/internal/domain/report"
	"go.uber.org/zap"
)

// ReportService assembles the derived reports. Every operation is a
// read-only snapshot: it never mutates order, payment or stock state.
type ReportService struct {
	reportRepo      report.ReportRepository
	distributorRepo partner.DistributorRepository
	logger          *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.ReportRepository, distributorRepo partner.DistributorRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		distributorRepo: distributorRepo,
		logger:          logger,
	}
}

// AccountStatement builds a distributor's statement for the filter's
// date range and optional currency: chronological invoices and payments
// with a running balance and the summary totals.
func (s *ReportService) AccountStatement(ctx context.Context, filter report.StatementFilter) (*report.AccountStatement, error) {
	distributor, err := s.distributorRepo.FindByID(ctx, filter.DistributorID)
	if err != nil {
		return nil, err
	}

	debits, err := s.reportRepo.StatementDebits(ctx, filter)
	if err != nil {
		return nil, err
	}
	credits, err := s.reportRepo.StatementCredits(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries, summary := report.BuildStatementEntries(debits, credits)

	return &report.AccountStatement{
		DistributorID:   distributor.ID,
		DistributorName: distributor.Name,
		Currency:        distributor.Currency,
		CurrencyFilter:  filter.CurrencyLabel(),
		Period:          report.StatementPeriod{From: filter.From, To: filter.To},
		Summary:         summary,
		Transactions:    entries,
	}, nil
}

// StockSummary builds the received/sold/balance rows for medicines
// matching the filter
func (s *ReportService) StockSummary(ctx context.Context, filter report.StockSummaryFilter) ([]report.StockSummaryRow, error) {
	intakes, err := s.reportRepo.IntakeByMedicine(ctx, filter)
	if err != nil {
		return nil, err
	}
	outflows, err := s.reportRepo.OutflowByMedicine(ctx, filter)
	if err != nil {
		return nil, err
	}
	return report.BuildStockSummary(intakes, outflows), nil
}

// PaymentRegister returns one page of the filtered payment register,
// newest first
func (s *ReportService) PaymentRegister(ctx context.Context, filter report.PaymentRegisterFilter) (*report.PaymentRegister, error) {
	filter.Normalize()

	rows, total, err := s.reportRepo.RegisterRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	register := report.NewPaymentRegister(rows, total, filter.Page, filter.Limit)
	return &register, nil
}
