package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/pharmalink/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// SalesOrderService orchestrates order creation: stock allocation, batch
// deduction and order persistence happen in one transaction, so a
// failure on any line leaves no trace of the others.
type SalesOrderService struct {
	scope     TransactionScope
	orderRepo trade.SalesOrderRepository
	logger    *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(scope TransactionScope, orderRepo trade.SalesOrderRepository, logger *zap.Logger) *SalesOrderService {
	return &SalesOrderService{
		scope:     scope,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Create creates a sales order for the given sales rep. Per requested
// item it loads the medicine's batches under row locks, allocates in
// intake order and deducts the touched batches. Any shortage rolls the
// whole transaction back and surfaces the shortfall.
func (s *SalesOrderService) Create(ctx context.Context, salesRepID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency: "+req.Currency)
	}

	var response SalesOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		distributor, err := repos.DistributorRepo().FindByID(ctx, req.DistributorID)
		if err != nil {
			return err
		}
		if !distributor.Active {
			return shared.NewDomainError("DISTRIBUTOR_INACTIVE", "Distributor is deactivated and cannot order")
		}

		lineItems := make([]trade.SalesLineItem, 0, len(req.Items))
		// Batches are loaded once per medicine and reused across items,
		// so a medicine repeated in the request allocates against the
		// already-deducted in-memory quantities, never a fresh read.
		batchesByMedicine := make(map[uuid.UUID][]*inventory.ShipmentBatch)
		touched := make(map[uuid.UUID]*inventory.ShipmentBatch)
		for _, item := range req.Items {
			batches, loaded := batchesByMedicine[item.MedicineID]
			if !loaded {
				found, err := repos.BatchRepo().FindAllocatable(ctx, item.MedicineID)
				if err != nil {
					return err
				}
				batches = found
				batchesByMedicine[item.MedicineID] = found
			}

			allocations, err := inventory.AllocateFIFO(item.MedicineID, item.Quantity, batches)
			if err != nil {
				return err
			}

			for _, alloc := range allocations {
				line, err := trade.NewSalesLineItem(item.MedicineID, alloc.Batch.ID, alloc.Quantity, alloc.UnitPrice)
				if err != nil {
					return err
				}
				lineItems = append(lineItems, *line)
				touched[alloc.Batch.ID] = alloc.Batch
			}
		}

		deducted := make([]*inventory.ShipmentBatch, 0, len(touched))
		for _, batch := range touched {
			deducted = append(deducted, batch)
		}
		if err := repos.BatchRepo().SaveAll(ctx, deducted); err != nil {
			return err
		}

		orderNumber, err := repos.OrderRepo().NextOrderNumber(ctx)
		if err != nil {
			return err
		}

		order, err := trade.NewSalesOrder(orderNumber, req.DistributorID, salesRepID, currency, time.Now(), lineItems)
		if err != nil {
			return err
		}
		order.Notes = req.Notes

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		s.logger.Info("sales order created",
			zap.String("order_id", order.ID.String()),
			zap.String("order_number", order.OrderNumber),
			zap.String("distributor_id", order.DistributorID.String()),
			zap.Int("lines", len(order.LineItems)),
			zap.String("amount", order.OrderAmount.Amount().String()),
		)

		response = ToSalesOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, filter SalesOrderListFilter) (shared.Paginated[SalesOrderResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.DistributorID != nil {
		f.Filters["distributor_id"] = *filter.DistributorID
	}
	if filter.PaymentStatus != nil {
		f.Filters["payment_status"] = *filter.PaymentStatus
	}

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, err
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, err
	}

	items := make([]SalesOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToSalesOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}
