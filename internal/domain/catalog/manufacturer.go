package catalog

import (
	"strings"

	"github.com/pharmalink/backend/internal/domain/shared"
)

// Manufacturer represents a pharmaceutical manufacturer
type Manufacturer struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Country     string `gorm:"type:varchar(100)"`
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200)"`
	Address     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Manufacturer) TableName() string {
	return "manufacturers"
}

// NewManufacturer creates a new manufacturer
func NewManufacturer(name, country string) (*Manufacturer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MANUFACTURER_NAME", "Manufacturer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_MANUFACTURER_NAME", "Manufacturer name cannot exceed 200 characters")
	}

	return &Manufacturer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Country:           country,
	}, nil
}

// UpdateContact updates the manufacturer's contact information
func (m *Manufacturer) UpdateContact(contactName, phone, email, address string) {
	m.ContactName = contactName
	m.Phone = phone
	m.Email = email
	m.Address = address
	m.Touch()
	m.IncrementVersion()
}
