package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/partner"
	"github.com/pharmalink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDistributorRepository implements DistributorRepository using GORM
type GormDistributorRepository struct {
	db *gorm.DB
}

// NewGormDistributorRepository creates a new GormDistributorRepository
func NewGormDistributorRepository(db *gorm.DB) *GormDistributorRepository {
	return &GormDistributorRepository{db: db}
}

// FindByID finds a distributor by its ID
func (r *GormDistributorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Distributor, error) {
	var distributor partner.Distributor
	if err := r.db.WithContext(ctx).First(&distributor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &distributor, nil
}

// FindByCode finds a distributor by its code
func (r *GormDistributorRepository) FindByCode(ctx context.Context, code string) (*partner.Distributor, error) {
	var distributor partner.Distributor
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&distributor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &distributor, nil
}

// FindAll finds all distributors matching the filter
func (r *GormDistributorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Distributor, error) {
	var distributors []partner.Distributor
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Distributor{}), filter, true)

	if err := query.Find(&distributors).Error; err != nil {
		return nil, err
	}
	return distributors, nil
}

// Save creates or updates a distributor
func (r *GormDistributorRepository) Save(ctx context.Context, distributor *partner.Distributor) error {
	return r.db.WithContext(ctx).Save(distributor).Error
}

// Count counts distributors matching the filter
func (r *GormDistributorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Distributor{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a distributor with the given code exists
func (r *GormDistributorRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Distributor{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormDistributorRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "currency":
			query = query.Where("currency = ?", value)
		case "country":
			query = query.Where("country = ?", value)
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

	orderBy := ValidateSortField(filter.OrderBy, DistributorSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormDistributorRepository implements DistributorRepository
var _ partner.DistributorRepository = (*GormDistributorRepository)(nil)
