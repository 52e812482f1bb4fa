package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/catalog"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// CreateMedicineRequest is the input for creating a medicine
type CreateMedicineRequest struct {
	Name              string     `json:"name" binding:"required"`
	Strength          string     `json:"strength"`
	Form              string     `json:"form" binding:"required"`
	PackSize          string     `json:"packSize"`
	ManufacturerID    uuid.UUID  `json:"manufacturerId" binding:"required"`
	CountryOfOrigin   string     `json:"countryOfOrigin"`
	ManufacturingDate *time.Time `json:"manufacturingDate"`
	Description       string     `json:"description"`
}

// UpdateMedicineRequest is the input for updating a medicine's
// descriptive fields
type UpdateMedicineRequest struct {
	PackSize        string `json:"packSize"`
	CountryOfOrigin string `json:"countryOfOrigin"`
	Description     string `json:"description"`
}

// MedicineListFilter narrows the medicine list
type MedicineListFilter struct {
	ManufacturerID *uuid.UUID
	Search         string
	Page           int
	PageSize       int
}

// MedicineService handles medicine catalog operations
type MedicineService struct {
	medicineRepo     catalog.MedicineRepository
	manufacturerRepo catalog.ManufacturerRepository
}

// NewMedicineService creates a new MedicineService
func NewMedicineService(medicineRepo catalog.MedicineRepository, manufacturerRepo catalog.ManufacturerRepository) *MedicineService {
	return &MedicineService{
		medicineRepo:     medicineRepo,
		manufacturerRepo: manufacturerRepo,
	}
}

// Create creates a new medicine
func (s *MedicineService) Create(ctx context.Context, req CreateMedicineRequest) (*catalog.Medicine, error) {
	if _, err := s.manufacturerRepo.FindByID(ctx, req.ManufacturerID); err != nil {
		return nil, err
	}

	if _, err := s.medicineRepo.FindByNameAndStrength(ctx, req.Name, req.Strength); err == nil {
		return nil, shared.ErrAlreadyExists
	}

	medicine, err := catalog.NewMedicine(req.Name, req.Strength, catalog.MedicineForm(req.Form), req.ManufacturerID)
	if err != nil {
		return nil, err
	}
	medicine.PackSize = req.PackSize
	medicine.CountryOfOrigin = req.CountryOfOrigin
	medicine.Description = req.Description
	if req.ManufacturingDate != nil {
		medicine.ManufacturingDate = req.ManufacturingDate
	}

	if err := s.medicineRepo.Save(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// GetByID retrieves a medicine by ID
func (s *MedicineService) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Medicine, error) {
	return s.medicineRepo.FindByID(ctx, id)
}

// Update updates a medicine's descriptive fields
func (s *MedicineService) Update(ctx context.Context, id uuid.UUID, req UpdateMedicineRequest) (*catalog.Medicine, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	medicine.Update(req.PackSize, req.CountryOfOrigin, req.Description)
	if err := s.medicineRepo.Save(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// Deactivate marks a medicine as no longer orderable
func (s *MedicineService) Deactivate(ctx context.Context, id uuid.UUID) error {
	medicine, err := s.medicineRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	medicine.Deactivate()
	return s.medicineRepo.Save(ctx, medicine)
}

// List retrieves medicines with filtering and pagination
func (s *MedicineService) List(ctx context.Context, filter MedicineListFilter) (shared.Paginated[catalog.Medicine], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.ManufacturerID != nil {
		f.Filters["manufacturer_id"] = *filter.ManufacturerID
	}

	medicines, err := s.medicineRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[catalog.Medicine]{}, err
	}
	total, err := s.medicineRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[catalog.Medicine]{}, err
	}
	return shared.NewPaginated(medicines, total, f.Page, f.PageSize), nil
}
