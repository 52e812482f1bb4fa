package persistence

import (
	"context"
	"time"

	"github.com/pharmalink/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormReportRepository implements ReportRepository using GORM. All queries
// are read-only aggregations; the builders in the report domain package
// turn the flat rows into the final read models.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// StatementDebits returns the distributor's invoices matching the filter, oldest first
func (r *GormReportRepository) StatementDebits(ctx context.Context, filter report.StatementFilter) ([]report.StatementDebit, error) {
	query := r.db.WithContext(ctx).
		Table("sales_orders").
		Select("order_date AS date, id AS order_id, order_number, order_amount AS amount").
		Where("distributor_id = ?", filter.DistributorID)
	if filter.Currency != nil {
		query = query.Where("currency = ?", *filter.Currency)
	}
	query = applyDateRange(query, "order_date", filter.From, filter.To)

	var debits []report.StatementDebit
	if err := query.Order("order_date ASC, created_at ASC").Scan(&debits).Error; err != nil {
		return nil, err
	}
	return debits, nil
}

// StatementCredits returns the distributor's payments matching the filter, oldest first
func (r *GormReportRepository) StatementCredits(ctx context.Context, filter report.StatementFilter) ([]report.StatementCredit, error) {
	query := r.db.WithContext(ctx).
		Table("payments").
		Select("payment_date AS date, id AS payment_id, type AS payment_type, amount").
		Where("distributor_id = ?", filter.DistributorID)
	if filter.Currency != nil {
		query = query.Where("currency = ?", *filter.Currency)
	}
	query = applyDateRange(query, "payment_date", filter.From, filter.To)

	var credits []report.StatementCredit
	if err := query.Order("payment_date ASC, created_at ASC").Scan(&credits).Error; err != nil {
		return nil, err
	}
	return credits, nil
}

// IntakeByMedicine aggregates received batch quantities per medicine
func (r *GormReportRepository) IntakeByMedicine(ctx context.Context, filter report.StockSummaryFilter) ([]report.MedicineIntake, error) {
	query := r.db.WithContext(ctx).
		Table("shipment_batches sb").
		Select("sb.medicine_id, m.name AS medicine_name, COALESCE(SUM(sb.quantity_received), 0) AS quantity").
		Joins("JOIN medicines m ON m.id = sb.medicine_id").
		Joins("JOIN shipments s ON s.id = sb.shipment_id").
		Group("sb.medicine_id, m.name")

	if filter.MedicineID != nil {
		query = query.Where("sb.medicine_id = ?", *filter.MedicineID)
	}
	if filter.ManufacturerID != nil {
		query = query.Where("m.manufacturer_id = ?", *filter.ManufacturerID)
	}
	if filter.ShipmentMode != nil {
		query = query.Where("s.mode = ?", *filter.ShipmentMode)
	}
	query = applyDateRange(query, "sb.received_at", filter.From, filter.To)

	var intakes []report.MedicineIntake
	if err := query.Scan(&intakes).Error; err != nil {
		return nil, err
	}
	return intakes, nil
}

// OutflowByMedicine aggregates sold line-item quantities per medicine
func (r *GormReportRepository) OutflowByMedicine(ctx context.Context, filter report.StockSummaryFilter) ([]report.MedicineOutflow, error) {
	query := r.db.WithContext(ctx).
		Table("sales_line_items sli").
		Select("sli.medicine_id, m.name AS medicine_name, COALESCE(SUM(sli.quantity), 0) AS quantity").
		Joins("JOIN medicines m ON m.id = sli.medicine_id").
		Joins("JOIN sales_orders so ON so.id = sli.sales_order_id").
		Group("sli.medicine_id, m.name")

	if filter.MedicineID != nil {
		query = query.Where("sli.medicine_id = ?", *filter.MedicineID)
	}
	if filter.ManufacturerID != nil {
		query = query.Where("m.manufacturer_id = ?", *filter.ManufacturerID)
	}
	if filter.ShipmentMode != nil {
		// Sold quantities carry no shipment mode; restrict to batches
		// received on shipments of that mode.
		query = query.
			Joins("JOIN shipment_batches sb ON sb.id = sli.batch_id").
			Joins("JOIN shipments s ON s.id = sb.shipment_id").
			Where("s.mode = ?", *filter.ShipmentMode)
	}
	query = applyDateRange(query, "so.order_date", filter.From, filter.To)

	var outflows []report.MedicineOutflow
	if err := query.Scan(&outflows).Error; err != nil {
		return nil, err
	}
	return outflows, nil
}

// RegisterRows returns one page of filtered payments, newest first, with
// the total row count across all pages
func (r *GormReportRepository) RegisterRows(ctx context.Context, filter report.PaymentRegisterFilter) ([]report.RegisterRow, int64, error) {
	base := r.db.WithContext(ctx).
		Table("payments p").
		Joins("JOIN distributors d ON d.id = p.distributor_id").
		Joins("JOIN sales_orders so ON so.id = p.sales_order_id")

	if filter.PaymentType != nil {
		base = base.Where("p.type = ?", *filter.PaymentType)
	}
	if filter.Currency != nil {
		base = base.Where("p.currency = ?", *filter.Currency)
	}
	if filter.DistributorID != nil {
		base = base.Where("p.distributor_id = ?", *filter.DistributorID)
	}
	if filter.SalesOrderID != nil {
		base = base.Where("p.sales_order_id = ?", *filter.SalesOrderID)
	}
	base = applyDateRange(base, "p.payment_date", filter.From, filter.To)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var rows []report.RegisterRow
	if err := base.Session(&gorm.Session{}).
		Select(`p.id AS payment_id, p.payment_date AS date, p.amount, p.type,
			p.currency, p.distributor_id, d.name AS distributor_name,
			p.sales_order_id, so.order_number`).
		Order("p.payment_date DESC, p.created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// applyDateRange narrows a query to the optional [from, to] window on column
func applyDateRange(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", *from)
	}
	if to != nil {
		query = query.Where(column+" <= ?", *to)
	}
	return query
}

// Ensure GormReportRepository implements ReportRepository
var _ report.ReportRepository = (*GormReportRepository)(nil)
