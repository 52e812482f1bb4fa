package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID, batches included
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Shipment, error) {
	var shipment inventory.Shipment
	if err := r.db.WithContext(ctx).
		Preload("Batches").
		First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindAll finds all shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Shipment, error) {
	var shipments []inventory.Shipment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Shipment{}), filter, true)

	if err := query.Preload("Batches").Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save creates or updates a shipment together with its batches
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *inventory.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(shipment).Error; err != nil {
			return err
		}
		for i := range shipment.Batches {
			shipment.Batches[i].ShipmentID = shipment.ID
			if err := tx.Save(&shipment.Batches[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts shipments matching the filter
func (r *GormShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Shipment{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByProformaInvoice checks if a shipment with the given proforma invoice number exists
func (r *GormShipmentRepository) ExistsByProformaInvoice(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Shipment{}).
		Where("proforma_invoice_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormShipmentRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("proforma_invoice_number ILIKE ? OR bill_of_lading ILIKE ? OR supplier_name ILIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "mode":
			query = query.Where("mode = ?", value)
		case "delivery_status":
			query = query.Where("delivery_status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("received_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("received_date <= ?", t)
			}
		}
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ShipmentSortFields, "received_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ inventory.ShipmentRepository = (*GormShipmentRepository)(nil)
