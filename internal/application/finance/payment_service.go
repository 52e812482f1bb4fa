package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/finance"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// PaymentService records payments against sales orders. Applying the
// payment to the order and inserting the payment row happen in one
// transaction; an overpayment or settled-order rejection leaves both
// untouched.
type PaymentService struct {
	scope       TransactionScope
	paymentRepo finance.PaymentRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope, paymentRepo finance.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		scope:       scope,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Create records a payment. The order row is locked for the duration of
// the transaction, the payment is applied through the order's own guards
// and the payment record is written with the distributor denormalized
// from the order.
func (s *PaymentService) Create(ctx context.Context, actorID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	paymentType := finance.PaymentType(req.Type)
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Unsupported payment type: "+req.Type)
	}

	var response PaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, req.SalesOrderID)
		if err != nil {
			return err
		}

		amount, err := valueobject.NewMoneyFromString(req.Amount, order.Currency)
		if err != nil {
			return shared.NewDomainError("INVALID_AMOUNT", "Payment amount is not a valid number")
		}

		if err := order.ApplyPayment(amount); err != nil {
			return err
		}

		paymentDate := time.Now()
		if req.PaymentDate != nil {
			paymentDate = *req.PaymentDate
		}

		payment, err := finance.NewPayment(order.ID, order.DistributorID, amount, paymentType, paymentDate, actorID)
		if err != nil {
			return err
		}
		payment.Reference = req.Reference
		payment.Notes = req.Notes
		for _, doc := range req.Documents {
			if err := payment.AttachDocument(doc.URL, doc.FileName); err != nil {
				return err
			}
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		s.logger.Info("payment recorded",
			zap.String("payment_id", payment.ID.String()),
			zap.String("order_id", order.ID.String()),
			zap.String("amount", amount.Amount().String()),
			zap.String("order_status", string(order.PaymentStatus)),
		)

		response = ToPaymentResponse(payment, order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	return s.paymentRepo.FindByID(ctx, id)
}

// ListByOrder retrieves all payments of a sales order, oldest first
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.Payment, error) {
	return s.paymentRepo.FindBySalesOrder(ctx, orderID)
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) (shared.Paginated[finance.Payment], error) {
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
	if filter.SalesOrderID != nil {
		f.Filters["sales_order_id"] = *filter.SalesOrderID
	}

	payments, err := s.paymentRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[finance.Payment]{}, err
	}
	total, err := s.paymentRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[finance.Payment]{}, err
	}
	return shared.NewPaginated(payments, total, f.Page, f.PageSize), nil
}
