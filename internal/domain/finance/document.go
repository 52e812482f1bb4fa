package finance

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// Document is a descriptive pointer to an uploaded file supporting a
// payment. The file itself lives in object storage.
type Document struct {
	shared.BaseEntity
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	FileName  string    `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "payment_documents"
}

// NewDocument creates a new document reference
func NewDocument(paymentID uuid.UUID, url, fileName string) (*Document, error) {
	if strings.TrimSpace(url) == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_URL", "Document URL cannot be empty")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NAME", "Document file name cannot be empty")
	}

	return &Document{
		BaseEntity: shared.NewBaseEntity(),
		PaymentID:  paymentID,
		URL:        url,
		FileName:   fileName,
	}, nil
}
