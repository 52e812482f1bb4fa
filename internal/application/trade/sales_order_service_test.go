package trade

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/partner"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/pharmalink/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBatchRepo mimics database read semantics: reads hand out copies,
// and only SaveAll writes state back to the store.
type fakeBatchRepo struct {
	store map[uuid.UUID]*inventory.ShipmentBatch
}

func newFakeBatchRepo(batches ...*inventory.ShipmentBatch) *fakeBatchRepo {
	r := &fakeBatchRepo{store: make(map[uuid.UUID]*inventory.ShipmentBatch)}
	for _, b := range batches {
		r.store[b.ID] = b
	}
	return r
}

func (r *fakeBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.ShipmentBatch, error) {
	b, ok := r.store[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) FindAllocatable(_ context.Context, medicineID uuid.UUID) ([]*inventory.ShipmentBatch, error) {
	var result []*inventory.ShipmentBatch
	for _, b := range r.store {
		if b.MedicineID == medicineID && b.HasStock() {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeBatchRepo) FindByMedicine(context.Context, uuid.UUID, shared.Filter) ([]inventory.ShipmentBatch, error) {
	return nil, nil
}

func (r *fakeBatchRepo) FindWithStock(context.Context, shared.Filter) ([]inventory.ShipmentBatch, error) {
	return nil, nil
}

func (r *fakeBatchRepo) FindExpiring(context.Context, time.Time, int) ([]inventory.ShipmentBatch, error) {
	return nil, nil
}

func (r *fakeBatchRepo) FindRecent(context.Context, int) ([]inventory.ShipmentBatch, error) {
	return nil, nil
}

func (r *fakeBatchRepo) Save(_ context.Context, batch *inventory.ShipmentBatch) error {
	cp := *batch
	r.store[batch.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) SaveAll(ctx context.Context, batches []*inventory.ShipmentBatch) error {
	for _, b := range batches {
		if err := r.Save(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeBatchRepo) TotalStockValue(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeBatchRepo) CountExpiring(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeOrderRepo struct {
	saved []*trade.SalesOrder
	seq   int
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	for _, o := range r.saved {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeOrderRepo) FindByOrderNumber(context.Context, string) (*trade.SalesOrder, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindAll(context.Context, shared.Filter) ([]trade.SalesOrder, error) {
	orders := make([]trade.SalesOrder, 0, len(r.saved))
	for _, o := range r.saved {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *fakeOrderRepo) FindByDistributor(context.Context, uuid.UUID, shared.Filter) ([]trade.SalesOrder, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *trade.SalesOrder) error {
	r.saved = append(r.saved, order)
	return nil
}

func (r *fakeOrderRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.saved)), nil
}

func (r *fakeOrderRepo) NextOrderNumber(context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("SO-2026-%04d", r.seq), nil
}

type fakeDistributorRepo struct {
	store map[uuid.UUID]*partner.Distributor
}

func newFakeDistributorRepo(distributors ...*partner.Distributor) *fakeDistributorRepo {
	r := &fakeDistributorRepo{store: make(map[uuid.UUID]*partner.Distributor)}
	for _, d := range distributors {
		r.store[d.ID] = d
	}
	return r
}

func (r *fakeDistributorRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Distributor, error) {
	d, ok := r.store[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

func (r *fakeDistributorRepo) FindByCode(context.Context, string) (*partner.Distributor, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeDistributorRepo) FindAll(context.Context, shared.Filter) ([]partner.Distributor, error) {
	return nil, nil
}

func (r *fakeDistributorRepo) Save(context.Context, *partner.Distributor) error { return nil }

func (r *fakeDistributorRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }

func (r *fakeDistributorRepo) ExistsByCode(context.Context, string) (bool, error) { return false, nil }

func testBatch(t *testing.T, medicineID uuid.UUID, receivedAt time.Time, quantity int64, unitCost float64) *inventory.ShipmentBatch {
	t.Helper()
	b, err := inventory.NewShipmentBatch(medicineID, "BN-"+uuid.NewString()[:8], receivedAt, nil, quantity,
		valueobject.NewMoneyNGNFromFloat(unitCost), valueobject.NewMoneyNGNFromFloat(unitCost*1.5))
	require.NoError(t, err)
	return b
}

func testDistributor(t *testing.T) *partner.Distributor {
	t.Helper()
	d, err := partner.NewDistributor("DIST-001", "Kano Medical Supplies", partner.DistributorTypeLocal, valueobject.NGN)
	require.NoError(t, err)
	return d
}

func newService(batchRepo *fakeBatchRepo, orderRepo *fakeOrderRepo, distRepo *fakeDistributorRepo) *SalesOrderService {
	scope := NewNoOpTransactionScope(orderRepo, batchRepo, distRepo)
	return NewSalesOrderService(scope, orderRepo, zap.NewNop())
}

func TestSalesOrderService_Create(t *testing.T) {
	medicineID := uuid.New()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	distributor := testDistributor(t)

	older := testBatch(t, medicineID, base, 100, 50)
	newer := testBatch(t, medicineID, base.AddDate(0, 0, 5), 100, 60)
	batchRepo := newFakeBatchRepo(older, newer)
	orderRepo := &fakeOrderRepo{}
	svc := newService(batchRepo, orderRepo, newFakeDistributorRepo(distributor))

	resp, err := svc.Create(context.Background(), uuid.New(), CreateSalesOrderRequest{
		DistributorID: distributor.ID,
		Items:         []CreateSalesOrderItem{{MedicineID: medicineID, Quantity: 120}},
	})
	require.NoError(t, err)

	// One priced line per touched batch, oldest batch drained first.
	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, older.ID, resp.LineItems[0].BatchID)
	assert.Equal(t, int64(100), resp.LineItems[0].Quantity)
	assert.Equal(t, newer.ID, resp.LineItems[1].BatchID)
	assert.Equal(t, int64(20), resp.LineItems[1].Quantity)

	// Lines charge each batch's unit cost: 100*50 + 20*60.
	assert.Equal(t, "6200", resp.OrderAmount)
	assert.Equal(t, trade.PaymentStatusPending, resp.PaymentStatus)

	// Deductions persisted.
	stored, err := batchRepo.FindByID(context.Background(), older.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Quantity)
	stored, err = batchRepo.FindByID(context.Background(), newer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(80), stored.Quantity)
}

func TestSalesOrderService_Create_ShortageRollsBackEverything(t *testing.T) {
	medA := uuid.New()
	medB := uuid.New()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	distributor := testDistributor(t)

	batchA := testBatch(t, medA, base, 100, 50)
	batchB := testBatch(t, medB, base, 10, 30)
	batchRepo := newFakeBatchRepo(batchA, batchB)
	orderRepo := &fakeOrderRepo{}
	svc := newService(batchRepo, orderRepo, newFakeDistributorRepo(distributor))

	// First item allocatable, second short by 30.
	_, err := svc.Create(context.Background(), uuid.New(), CreateSalesOrderRequest{
		DistributorID: distributor.ID,
		Items: []CreateSalesOrderItem{
			{MedicineID: medA, Quantity: 50},
			{MedicineID: medB, Quantity: 40},
		},
	})

	var shortage *inventory.ShortageError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, medB, shortage.MedicineID)
	assert.Equal(t, int64(30), shortage.Shortage)

	// Nothing persisted: no order, no deduction on the first item either.
	assert.Empty(t, orderRepo.saved)
	stored, err := batchRepo.FindByID(context.Background(), batchA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.Quantity)
}

func TestSalesOrderService_Create_RepeatedMedicineDrawsFromSameStock(t *testing.T) {
	medicineID := uuid.New()
	distributor := testDistributor(t)

	batch := testBatch(t, medicineID, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), 10, 50)
	batchRepo := newFakeBatchRepo(batch)
	orderRepo := &fakeOrderRepo{}
	svc := newService(batchRepo, orderRepo, newFakeDistributorRepo(distributor))

	// Two items for the same medicine must consume one shared stock
	// position, the second continuing where the first left off.
	resp, err := svc.Create(context.Background(), uuid.New(), CreateSalesOrderRequest{
		DistributorID: distributor.ID,
		Items: []CreateSalesOrderItem{
			{MedicineID: medicineID, Quantity: 6},
			{MedicineID: medicineID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, batch.ID, resp.LineItems[0].BatchID)
	assert.Equal(t, int64(6), resp.LineItems[0].Quantity)
	assert.Equal(t, batch.ID, resp.LineItems[1].BatchID)
	assert.Equal(t, int64(4), resp.LineItems[1].Quantity)
	assert.Equal(t, "500", resp.OrderAmount)

	stored, err := batchRepo.FindByID(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Quantity)
}

func TestSalesOrderService_Create_RepeatedMedicineCannotOversell(t *testing.T) {
	medicineID := uuid.New()
	distributor := testDistributor(t)

	batch := testBatch(t, medicineID, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), 10, 50)
	batchRepo := newFakeBatchRepo(batch)
	orderRepo := &fakeOrderRepo{}
	svc := newService(batchRepo, orderRepo, newFakeDistributorRepo(distributor))

	// Each item alone fits the batch, but together they ask for twice
	// the stock. The second item must see the first item's deduction
	// and fail, not allocate from a fresh read of the same batch.
	_, err := svc.Create(context.Background(), uuid.New(), CreateSalesOrderRequest{
		DistributorID: distributor.ID,
		Items: []CreateSalesOrderItem{
			{MedicineID: medicineID, Quantity: 10},
			{MedicineID: medicineID, Quantity: 10},
		},
	})

	var shortage *inventory.ShortageError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, medicineID, shortage.MedicineID)
	assert.Equal(t, int64(10), shortage.Shortage)

	assert.Empty(t, orderRepo.saved)
	stored, err := batchRepo.FindByID(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Quantity)
}

func TestSalesOrderService_Create_DistributorNotFound(t *testing.T) {
	svc := newService(newFakeBatchRepo(), &fakeOrderRepo{}, newFakeDistributorRepo())

	_, err := svc.Create(context.Background(), uuid.New(), CreateSalesOrderRequest{
		DistributorID: uuid.New(),
		Items:         []CreateSalesOrderItem{{MedicineID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSalesOrderService_Create_InactiveDistributorRejected(t *testing.T) {
	distributor := testDistributor(t)
	distributor.Deactivate()
	svc := newService(newFakeBatchRepo(), &fakeOrderRepo{}, newFakeDistributorRepo(distributor))

	_, err := svc.Create(context.Background(), uuid.New(), CreateSalesOrderRequest{
		DistributorID: distributor.ID,
		Items:         []CreateSalesOrderItem{{MedicineID: uuid.New(), Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestSalesOrderService_Create_InvalidCurrencyRejected(t *testing.T) {
	distributor := testDistributor(t)
	svc := newService(newFakeBatchRepo(), &fakeOrderRepo{}, newFakeDistributorRepo(distributor))

	_, err := svc.Create(context.Background(), uuid.New(), CreateSalesOrderRequest{
		DistributorID: distributor.ID,
		Currency:      "EUR",
		Items:         []CreateSalesOrderItem{{MedicineID: uuid.New(), Quantity: 1}},
	})
	assert.Error(t, err)
}
