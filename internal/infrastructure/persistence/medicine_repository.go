package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/catalog"
	"github.com/pharmalink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMedicineRepository implements MedicineRepository using GORM
type GormMedicineRepository struct {
	db *gorm.DB
}

// NewGormMedicineRepository creates a new GormMedicineRepository
func NewGormMedicineRepository(db *gorm.DB) *GormMedicineRepository {
	return &GormMedicineRepository{db: db}
}

// FindByID finds a medicine by its ID
func (r *GormMedicineRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Medicine, error) {
	var medicine catalog.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &medicine, nil
}

// FindByNameAndStrength finds a medicine by its name and strength
func (r *GormMedicineRepository) FindByNameAndStrength(ctx context.Context, name, strength string) (*catalog.Medicine, error) {
	var medicine catalog.Medicine
	if err := r.db.WithContext(ctx).
		Where("name = ? AND strength = ?", name, strength).
		First(&medicine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &medicine, nil
}

// FindByIDs finds multiple medicines by their IDs
func (r *GormMedicineRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Medicine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var medicines []catalog.Medicine
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// FindAll finds all medicines matching the filter
func (r *GormMedicineRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Medicine, error) {
	var medicines []catalog.Medicine
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Medicine{}), filter, true)

	if err := query.Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// Save creates or updates a medicine
func (r *GormMedicineRepository) Save(ctx context.Context, medicine *catalog.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

// Count counts medicines matching the filter
func (r *GormMedicineRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Medicine{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActive counts active medicines
func (r *GormMedicineRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Medicine{}).
		Where("active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormMedicineRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR strength ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "manufacturer_id":
			query = query.Where("manufacturer_id = ?", value)
		case "form":
			query = query.Where("form = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MedicineSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormMedicineRepository implements MedicineRepository
var _ catalog.MedicineRepository = (*GormMedicineRepository)(nil)
