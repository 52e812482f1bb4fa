package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// MedicineForm represents the dosage form of a medicine
type MedicineForm string

const (
	FormTablet     MedicineForm = "Tablet"
	FormCapsule    MedicineForm = "Capsule"
	FormSyrup      MedicineForm = "Syrup"
	FormInjection  MedicineForm = "Injection"
	FormCream      MedicineForm = "Cream"
	FormOintment   MedicineForm = "Ointment"
	FormDrops      MedicineForm = "Drops"
	FormInhaler    MedicineForm = "Inhaler"
	FormSuspension MedicineForm = "Suspension"
	FormSuppository MedicineForm = "Suppository"
)

// IsValid checks if the form is one of the supported dosage forms
func (f MedicineForm) IsValid() bool {
	switch f {
	case FormTablet, FormCapsule, FormSyrup, FormInjection, FormCream,
		FormOintment, FormDrops, FormInhaler, FormSuspension, FormSuppository:
		return true
	}
	return false
}

// Medicine represents a pharmaceutical product in the catalog.
// It is the aggregate root for medicine-related operations. Stock levels
// live on shipment batches in the inventory context; the medicine itself
// carries only descriptive data.
type Medicine struct {
	shared.BaseAggregateRoot
	Name              string       `gorm:"type:varchar(200);not null;uniqueIndex:idx_medicine_name_strength,priority:1"`
	Strength          string       `gorm:"type:varchar(50);uniqueIndex:idx_medicine_name_strength,priority:2"` // e.g. "500mg"
	Form              MedicineForm `gorm:"type:varchar(30);not null"`
	PackSize          string       `gorm:"type:varchar(50)"` // e.g. "10x10 blister"
	ManufacturerID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	CountryOfOrigin   string       `gorm:"type:varchar(100)"`
	ManufacturingDate *time.Time
	Description       string `gorm:"type:text"`
	Active            bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Medicine) TableName() string {
	return "medicines"
}

// NewMedicine creates a new medicine
func NewMedicine(name, strength string, form MedicineForm, manufacturerID uuid.UUID) (*Medicine, error) {
	if err := validateMedicineName(name); err != nil {
		return nil, err
	}
	if !form.IsValid() {
		return nil, shared.NewDomainError("INVALID_MEDICINE_FORM", "Unsupported dosage form: "+string(form))
	}
	if manufacturerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANUFACTURER", "Manufacturer is required")
	}

	return &Medicine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Strength:          strings.TrimSpace(strength),
		Form:              form,
		ManufacturerID:    manufacturerID,
		Active:            true,
	}, nil
}

// Update updates the medicine's descriptive information. Name, strength,
// form and manufacturer are identity and stay fixed once batches reference
// the medicine.
func (m *Medicine) Update(packSize, countryOfOrigin, description string) {
	m.PackSize = packSize
	m.CountryOfOrigin = countryOfOrigin
	m.Description = description
	m.Touch()
	m.IncrementVersion()
}

// SetManufacturingDate sets the manufacturing date of the current production run
func (m *Medicine) SetManufacturingDate(d time.Time) {
	m.ManufacturingDate = &d
	m.Touch()
	m.IncrementVersion()
}

// Deactivate marks the medicine as no longer orderable
func (m *Medicine) Deactivate() {
	m.Active = false
	m.Touch()
	m.IncrementVersion()
}

// Activate marks the medicine as orderable
func (m *Medicine) Activate() {
	m.Active = true
	m.Touch()
	m.IncrementVersion()
}

// DisplayName returns the name with strength for receipts and reports
func (m *Medicine) DisplayName() string {
	if m.Strength == "" {
		return m.Name
	}
	return m.Name + " " + m.Strength
}

func validateMedicineName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_MEDICINE_NAME", "Medicine name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_MEDICINE_NAME", "Medicine name cannot exceed 200 characters")
	}
	return nil
}
