package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentBatchRepository implements ShipmentBatchRepository using GORM
type GormShipmentBatchRepository struct {
	db *gorm.DB
}

// NewGormShipmentBatchRepository creates a new GormShipmentBatchRepository
func NewGormShipmentBatchRepository(db *gorm.DB) *GormShipmentBatchRepository {
	return &GormShipmentBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormShipmentBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ShipmentBatch, error) {
	var batch inventory.ShipmentBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAllocatable returns all batches of a medicine that still hold
// stock. The rows are locked for update so concurrent allocations of the
// same medicine serialize until the enclosing transaction ends.
func (r *GormShipmentBatchRepository) FindAllocatable(ctx context.Context, medicineID uuid.UUID) ([]*inventory.ShipmentBatch, error) {
	var batches []*inventory.ShipmentBatch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("medicine_id = ? AND quantity > 0", medicineID).
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByMedicine finds all batches of a medicine matching the filter
func (r *GormShipmentBatchRepository) FindByMedicine(ctx context.Context, medicineID uuid.UUID, filter shared.Filter) ([]inventory.ShipmentBatch, error) {
	var batches []inventory.ShipmentBatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.ShipmentBatch{}).
			Where("medicine_id = ?", medicineID),
		filter,
	)

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindWithStock finds batches with remaining quantity, intake order
func (r *GormShipmentBatchRepository) FindWithStock(ctx context.Context, filter shared.Filter) ([]inventory.ShipmentBatch, error) {
	var batches []inventory.ShipmentBatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.ShipmentBatch{}).
			Where("quantity > 0"),
		filter,
	)

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindExpiring finds batches with stock expiring on or before the given
// date, soonest expiry first
func (r *GormShipmentBatchRepository) FindExpiring(ctx context.Context, before time.Time, limit int) ([]inventory.ShipmentBatch, error) {
	var batches []inventory.ShipmentBatch
	query := r.db.WithContext(ctx).
		Where("quantity > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", before).
		Order("expiry_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindRecent returns the most recently received batches
func (r *GormShipmentBatchRepository) FindRecent(ctx context.Context, limit int) ([]inventory.ShipmentBatch, error) {
	var batches []inventory.ShipmentBatch
	query := r.db.WithContext(ctx).Order("received_at DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save persists a single batch's state
func (r *GormShipmentBatchRepository) Save(ctx context.Context, batch *inventory.ShipmentBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// SaveAll persists multiple batches
func (r *GormShipmentBatchRepository) SaveAll(ctx context.Context, batches []*inventory.ShipmentBatch) error {
	if len(batches) == 0 {
		return nil
	}
	for _, batch := range batches {
		if err := r.db.WithContext(ctx).Save(batch).Error; err != nil {
			return err
		}
	}
	return nil
}

// TotalStockValue returns the selling-price value of all remaining stock
func (r *GormShipmentBatchRepository) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&inventory.ShipmentBatch{}).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CountExpiring counts batches with stock expiring on or before the given date
func (r *GormShipmentBatchRepository) CountExpiring(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.ShipmentBatch{}).
		Where("quantity > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", before).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormShipmentBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		case "expired":
			if value == true {
				query = query.Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now())
			}
		case "shipment_id":
			query = query.Where("shipment_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ShipmentBatchSortFields, "")
	if orderBy == "" {
		return query.Order("received_at ASC, created_at ASC")
	}
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormShipmentBatchRepository implements ShipmentBatchRepository
var _ inventory.ShipmentBatchRepository = (*GormShipmentBatchRepository)(nil)
