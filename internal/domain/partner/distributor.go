package partner

import (
	"regexp"
	"strings"

	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DistributorType represents the type of distributor
type DistributorType string

const (
	DistributorTypeLocal         DistributorType = "local"
	DistributorTypeInternational DistributorType = "international"
)

// IsValid checks if the distributor type is supported
func (t DistributorType) IsValid() bool {
	return t == DistributorTypeLocal || t == DistributorTypeInternational
}

// Distributor represents a wholesale buyer of medicines. Orders and
// payments reference distributors by ID, so a distributor that has traded
// is deactivated rather than deleted.
type Distributor struct {
	shared.BaseAggregateRoot
	Code        string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string               `gorm:"type:varchar(200);not null"`
	Type        DistributorType      `gorm:"type:varchar(20);not null;default:'local'"`
	ContactName string               `gorm:"type:varchar(100)"`
	Phone       string               `gorm:"type:varchar(50);index"`
	Email       string               `gorm:"type:varchar(200);index"`
	Address     string               `gorm:"type:text"`
	City        string               `gorm:"type:varchar(100)"`
	Country     string               `gorm:"type:varchar(100);default:'Nigeria'"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null;default:'NGN'"`
	CreditLimit decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool                 `gorm:"not null;default:true"`
	Notes       string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Distributor) TableName() string {
	return "distributors"
}

// NewDistributor creates a new distributor with required fields
func NewDistributor(code, name string, distributorType DistributorType, currency valueobject.Currency) (*Distributor, error) {
	if err := validateDistributorCode(code); err != nil {
		return nil, err
	}
	if err := validateDistributorName(name); err != nil {
		return nil, err
	}
	if !distributorType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISTRIBUTOR_TYPE", "Distributor type must be local or international")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency: "+currency.String())
	}

	return &Distributor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Type:              distributorType,
		Currency:          currency,
		CreditLimit:       decimal.Zero,
		Country:           "Nigeria",
		Active:            true,
	}, nil
}

// Update updates the distributor's contact information
func (d *Distributor) Update(name, contactName, phone, email, address, city string) error {
	if err := validateDistributorName(name); err != nil {
		return err
	}

	d.Name = name
	d.ContactName = contactName
	d.Phone = phone
	d.Email = email
	d.Address = address
	d.City = city
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetCreditLimit sets the distributor's credit limit
func (d *Distributor) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	d.CreditLimit = limit
	d.Touch()
	d.IncrementVersion()
	return nil
}

// Deactivate marks the distributor as inactive. Existing orders and
// payments keep referencing it.
func (d *Distributor) Deactivate() {
	d.Active = false
	d.Touch()
	d.IncrementVersion()
}

// Activate marks the distributor as active
func (d *Distributor) Activate() {
	d.Active = true
	d.Touch()
	d.IncrementVersion()
}

var distributorCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validateDistributorCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_DISTRIBUTOR_CODE", "Distributor code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_DISTRIBUTOR_CODE", "Distributor code cannot exceed 50 characters")
	}
	if !distributorCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_DISTRIBUTOR_CODE", "Distributor code can only contain letters, numbers, hyphens and underscores")
	}
	return nil
}

func validateDistributorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_DISTRIBUTOR_NAME", "Distributor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_DISTRIBUTOR_NAME", "Distributor name cannot exceed 200 characters")
	}
	return nil
}
