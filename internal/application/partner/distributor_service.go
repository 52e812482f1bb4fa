package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/partner"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreateDistributorRequest is the input for creating a distributor
type CreateDistributorRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,currency"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	CreditLimit string `json:"creditLimit"`
}

// UpdateDistributorRequest is the input for updating a distributor
type UpdateDistributorRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

// DistributorListFilter narrows the distributor list
type DistributorListFilter struct {
	Type   *string
	Active *bool
	Search string
	Page   int
	PageSize int
}

// DistributorService handles distributor operations
type DistributorService struct {
	distributorRepo partner.DistributorRepository
}

// NewDistributorService creates a new DistributorService
func NewDistributorService(distributorRepo partner.DistributorRepository) *DistributorService {
	return &DistributorService{distributorRepo: distributorRepo}
}

// Create creates a new distributor
func (s *DistributorService) Create(ctx context.Context, req CreateDistributorRequest) (*partner.Distributor, error) {
	exists, err := s.distributorRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}

	distributor, err := partner.NewDistributor(req.Code, req.Name, partner.DistributorType(req.Type), currency)
	if err != nil {
		return nil, err
	}
	if err := distributor.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.City); err != nil {
		return nil, err
	}
	if req.CreditLimit != "" {
		limit, err := decimal.NewFromString(req.CreditLimit)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit is not a valid number")
		}
		if err := distributor.SetCreditLimit(limit); err != nil {
			return nil, err
		}
	}

	if err := s.distributorRepo.Save(ctx, distributor); err != nil {
		return nil, err
	}
	return distributor, nil
}

// GetByID retrieves a distributor by ID
func (s *DistributorService) GetByID(ctx context.Context, id uuid.UUID) (*partner.Distributor, error) {
	return s.distributorRepo.FindByID(ctx, id)
}

// Update updates a distributor's contact information
func (s *DistributorService) Update(ctx context.Context, id uuid.UUID, req UpdateDistributorRequest) (*partner.Distributor, error) {
	distributor, err := s.distributorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := distributor.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.City); err != nil {
		return nil, err
	}
	if err := s.distributorRepo.Save(ctx, distributor); err != nil {
		return nil, err
	}
	return distributor, nil
}

// Deactivate marks a distributor as inactive. Orders and payments keep
// their references; nothing is deleted.
func (s *DistributorService) Deactivate(ctx context.Context, id uuid.UUID) error {
	distributor, err := s.distributorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	distributor.Deactivate()
	return s.distributorRepo.Save(ctx, distributor)
}

// List retrieves distributors with filtering and pagination
func (s *DistributorService) List(ctx context.Context, filter DistributorListFilter) (shared.Paginated[partner.Distributor], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Type != nil {
		f.Filters["type"] = *filter.Type
	}
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}

	distributors, err := s.distributorRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[partner.Distributor]{}, err
	}
	total, err := s.distributorRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[partner.Distributor]{}, err
	}
	return shared.NewPaginated(distributors, total, f.Page, f.PageSize), nil
}
