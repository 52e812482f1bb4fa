package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/catalog"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// CreateManufacturerRequest is the input for creating a manufacturer
type CreateManufacturerRequest struct {
	Name        string `json:"name" binding:"required"`
	Country     string `json:"country"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// ManufacturerService handles manufacturer operations
type ManufacturerService struct {
	manufacturerRepo catalog.ManufacturerRepository
}

// NewManufacturerService creates a new ManufacturerService
func NewManufacturerService(manufacturerRepo catalog.ManufacturerRepository) *ManufacturerService {
	return &ManufacturerService{manufacturerRepo: manufacturerRepo}
}

// Create creates a new manufacturer
func (s *ManufacturerService) Create(ctx context.Context, req CreateManufacturerRequest) (*catalog.Manufacturer, error) {
	if _, err := s.manufacturerRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.ErrAlreadyExists
	}

	manufacturer, err := catalog.NewManufacturer(req.Name, req.Country)
	if err != nil {
		return nil, err
	}
	manufacturer.UpdateContact(req.ContactName, req.Phone, req.Email, req.Address)

	if err := s.manufacturerRepo.Save(ctx, manufacturer); err != nil {
		return nil, err
	}
	return manufacturer, nil
}

// GetByID retrieves a manufacturer by ID
func (s *ManufacturerService) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	return s.manufacturerRepo.FindByID(ctx, id)
}

// List retrieves manufacturers with pagination
func (s *ManufacturerService) List(ctx context.Context, page, pageSize int) (shared.Paginated[catalog.Manufacturer], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	manufacturers, err := s.manufacturerRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[catalog.Manufacturer]{}, err
	}
	total, err := s.manufacturerRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[catalog.Manufacturer]{}, err
	}
	return shared.NewPaginated(manufacturers, total, f.Page, f.PageSize), nil
}
