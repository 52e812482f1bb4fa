package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/catalog"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ShipmentService handles shipment intake and delivery tracking
type ShipmentService struct {
	scope        TransactionScope
	shipmentRepo inventory.ShipmentRepository
	logger       *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(scope TransactionScope, shipmentRepo inventory.ShipmentRepository, logger *zap.Logger) *ShipmentService {
	return &ShipmentService{
		scope:        scope,
		shipmentRepo: shipmentRepo,
		logger:       logger,
	}
}

// Create registers an inbound shipment with its batches. Medicines
// described inline are created (or matched by name and strength) in the
// same transaction as the shipment itself.
func (s *ShipmentService) Create(ctx context.Context, actorID uuid.UUID, req CreateShipmentRequest) (*ShipmentResponse, error) {
	mode := inventory.ShipmentMode(req.Mode)
	receivedDate := time.Now()
	if req.ReceivedDate != nil {
		receivedDate = *req.ReceivedDate
	}

	var response ShipmentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.ShipmentRepo().ExistsByProformaInvoice(ctx, req.ProformaInvoiceNumber)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrAlreadyExists
		}

		shipment, err := inventory.NewShipment(req.ProformaInvoiceNumber, req.SupplierName, mode, receivedDate, actorID)
		if err != nil {
			return err
		}
		shipment.BillOfLading = req.BillOfLading
		shipment.Notes = req.Notes

		for _, batchReq := range req.Batches {
			medicineID, err := s.resolveMedicine(ctx, repos, batchReq)
			if err != nil {
				return err
			}

			unitCost, err := valueobject.NewMoneyFromString(batchReq.UnitCost, valueobject.DefaultCurrency)
			if err != nil {
				return shared.NewDomainError("INVALID_UNIT_COST", "Unit cost is not a valid number")
			}
			unitPrice, err := valueobject.NewMoneyFromString(batchReq.UnitPrice, valueobject.DefaultCurrency)
			if err != nil {
				return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price is not a valid number")
			}

			batch, err := inventory.NewShipmentBatch(
				medicineID,
				batchReq.BatchNumber,
				receivedDate,
				batchReq.ExpiryDate,
				batchReq.Quantity,
				unitCost,
				unitPrice,
			)
			if err != nil {
				return err
			}
			shipment.AddBatch(batch)
		}

		if err := repos.ShipmentRepo().Save(ctx, shipment); err != nil {
			return err
		}

		s.logger.Info("shipment received",
			zap.String("shipment_id", shipment.ID.String()),
			zap.String("invoice", shipment.ProformaInvoiceNumber),
			zap.Int("batches", len(shipment.Batches)),
			zap.Int64("quantity", shipment.TotalQuantity()),
		)

		response = ToShipmentResponse(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// resolveMedicine returns the batch's medicine ID, creating the medicine
// when the request describes it inline. An inline medicine matching an
// existing name and strength reuses the existing record.
func (s *ShipmentService) resolveMedicine(ctx context.Context, repos TransactionalRepositories, req CreateShipmentBatchRequest) (uuid.UUID, error) {
	if req.MedicineID != nil {
		medicine, err := repos.MedicineRepo().FindByID(ctx, *req.MedicineID)
		if err != nil {
			return uuid.Nil, err
		}
		return medicine.ID, nil
	}
	if req.Medicine == nil {
		return uuid.Nil, shared.NewDomainError("INVALID_BATCH", "Batch needs a medicine reference or an inline medicine")
	}

	existing, err := repos.MedicineRepo().FindByNameAndStrength(ctx, req.Medicine.Name, req.Medicine.Strength)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, err
	}

	if _, err := repos.ManufacturerRepo().FindByID(ctx, req.Medicine.ManufacturerID); err != nil {
		return uuid.Nil, err
	}

	medicine, err := catalog.NewMedicine(req.Medicine.Name, req.Medicine.Strength, catalog.MedicineForm(req.Medicine.Form), req.Medicine.ManufacturerID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := repos.MedicineRepo().Save(ctx, medicine); err != nil {
		return uuid.Nil, err
	}
	return medicine.ID, nil
}

// GetByID retrieves a shipment by ID
func (s *ShipmentService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List retrieves shipments with filtering and pagination
func (s *ShipmentService) List(ctx context.Context, filter ShipmentListFilter) (shared.Paginated[ShipmentResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Mode != nil {
		f.Filters["mode"] = *filter.Mode
	}
	if filter.DeliveryStatus != nil {
		f.Filters["delivery_status"] = *filter.DeliveryStatus
	}

	shipments, err := s.shipmentRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ShipmentResponse]{}, err
	}
	total, err := s.shipmentRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[ShipmentResponse]{}, err
	}

	items := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		items = append(items, ToShipmentResponse(&shipments[i]))
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// UpdateDeliveryStatus transitions a shipment's delivery status
func (s *ShipmentService) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status string) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.UpdateDeliveryStatus(inventory.DeliveryStatus(status)); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}
