package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBatchRepo struct {
	batches    []*inventory.ShipmentBatch
	stockValue decimal.Decimal
}

func (r *fakeBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.ShipmentBatch, error) {
	for _, b := range r.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBatchRepo) FindAllocatable(_ context.Context, medicineID uuid.UUID) ([]*inventory.ShipmentBatch, error) {
	var result []*inventory.ShipmentBatch
	for _, b := range r.batches {
		if b.MedicineID == medicineID && b.HasStock() {
			result = append(result, b)
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

func (r *fakeBatchRepo) FindExpiring(_ context.Context, before time.Time, limit int) ([]inventory.ShipmentBatch, error) {
	var result []inventory.ShipmentBatch
	for _, b := range r.batches {
		if b.HasStock() && b.ExpiryDate != nil && b.ExpiryDate.Before(before) {
			result = append(result, *b)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *fakeBatchRepo) FindRecent(_ context.Context, limit int) ([]inventory.ShipmentBatch, error) {
	var result []inventory.ShipmentBatch
	for _, b := range r.batches {
		result = append(result, *b)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *fakeBatchRepo) Save(context.Context, *inventory.ShipmentBatch) error { return nil }

func (r *fakeBatchRepo) SaveAll(context.Context, []*inventory.ShipmentBatch) error { return nil }

func (r *fakeBatchRepo) TotalStockValue(context.Context) (decimal.Decimal, error) {
	return r.stockValue, nil
}

func (r *fakeBatchRepo) CountExpiring(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for _, b := range r.batches {
		if b.HasStock() && b.ExpiryDate != nil && b.ExpiryDate.Before(before) {
			n++
		}
	}
	return n, nil
}

type fakeCache struct {
	values map[string]string
	sets   int
	hits   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.values[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.values[key] = value
	c.sets++
	return nil
}

func expiringBatch(t *testing.T, medicineID uuid.UUID, daysToExpiry int, quantity int64) *inventory.ShipmentBatch {
	t.Helper()
	expiry := time.Now().AddDate(0, 0, daysToExpiry)
	b, err := inventory.NewShipmentBatch(medicineID, "BN-"+uuid.NewString()[:8], time.Now(), &expiry, quantity,
		valueobject.NewMoneyNGNFromFloat(10), valueobject.NewMoneyNGNFromFloat(20))
	require.NoError(t, err)
	return b
}

func TestInventoryService_Overview(t *testing.T) {
	medicineID := uuid.New()
	repo := &fakeBatchRepo{
		batches:    []*inventory.ShipmentBatch{expiringBatch(t, medicineID, 30, 100)},
		stockValue: decimal.NewFromInt(250000),
	}
	cache := newFakeCache()
	svc := NewInventoryService(repo, newFakeMedicineRepo(), cache, zap.NewNop())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "250000", overview.TotalStockValue)
	assert.Equal(t, int64(1), overview.ExpiringBatches)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache.
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.sets)
}

func TestInventoryService_OverviewWithoutCache(t *testing.T) {
	repo := &fakeBatchRepo{stockValue: decimal.Zero}
	svc := NewInventoryService(repo, newFakeMedicineRepo(), nil, zap.NewNop())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0", overview.TotalStockValue)
}

func TestInventoryService_ExpiringBatches(t *testing.T) {
	medicineID := uuid.New()
	repo := &fakeBatchRepo{batches: []*inventory.ShipmentBatch{
		expiringBatch(t, medicineID, 30, 100),
		expiringBatch(t, medicineID, 400, 50),
	}}
	svc := NewInventoryService(repo, newFakeMedicineRepo(), nil, zap.NewNop())

	views, err := svc.ExpiringBatches(context.Background(), 90, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.InDelta(t, 29, views[0].DaysToExpiry, 1)
}

func TestInventoryService_AllocationQueue(t *testing.T) {
	medicineID := uuid.New()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	newer, err := inventory.NewShipmentBatch(medicineID, "B-NEW", base.AddDate(0, 0, 5), nil, 10,
		valueobject.NewMoneyNGNFromFloat(1), valueobject.NewMoneyNGNFromFloat(2))
	require.NoError(t, err)
	older, err := inventory.NewShipmentBatch(medicineID, "B-OLD", base, nil, 10,
		valueobject.NewMoneyNGNFromFloat(1), valueobject.NewMoneyNGNFromFloat(2))
	require.NoError(t, err)

	repo := &fakeBatchRepo{batches: []*inventory.ShipmentBatch{newer, older}}
	svc := NewInventoryService(repo, newFakeMedicineRepo(), nil, zap.NewNop())

	queue, err := svc.AllocationQueue(context.Background(), medicineID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "B-OLD", queue[0].BatchNumber)
	assert.Equal(t, "B-NEW", queue[1].BatchNumber)
}
