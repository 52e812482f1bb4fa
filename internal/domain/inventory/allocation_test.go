package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch(t *testing.T, medicineID uuid.UUID, batchNumber string, receivedAt time.Time, quantity int64, unitCost float64) *ShipmentBatch {
	t.Helper()
	b, err := NewShipmentBatch(
		medicineID,
		batchNumber,
		receivedAt,
		nil,
		quantity,
		valueobject.NewMoneyNGNFromFloat(unitCost),
		valueobject.NewMoneyNGNFromFloat(unitCost*1.5),
	)
	require.NoError(t, err)
	return b
}

func TestAllocateFIFO_OldestBatchFirst(t *testing.T) {
	medicineID := uuid.New()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	older := newTestBatch(t, medicineID, "B-OLD", base, 100, 50)
	newer := newTestBatch(t, medicineID, "B-NEW", base.AddDate(0, 0, 5), 100, 60)

	// Input deliberately newest-first; allocation must still drain the
	// older batch before touching the newer one.
	allocations, err := AllocateFIFO(medicineID, 120, []*ShipmentBatch{newer, older})
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	assert.Equal(t, older.ID, allocations[0].Batch.ID)
	assert.Equal(t, int64(100), allocations[0].Quantity)
	assert.Equal(t, newer.ID, allocations[1].Batch.ID)
	assert.Equal(t, int64(20), allocations[1].Quantity)

	assert.Equal(t, int64(0), older.Quantity)
	assert.Equal(t, int64(80), newer.Quantity)
}

func TestAllocateFIFO_PricePerSourceBatch(t *testing.T) {
	medicineID := uuid.New()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	cheap := newTestBatch(t, medicineID, "B1", base, 30, 50)
	dear := newTestBatch(t, medicineID, "B2", base.AddDate(0, 0, 1), 30, 75)

	allocations, err := AllocateFIFO(medicineID, 40, []*ShipmentBatch{cheap, dear})
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	// Each slice is priced at its own batch's unit cost.
	assert.True(t, allocations[0].UnitPrice.Amount().Equal(decimal.NewFromInt(50)))
	assert.True(t, allocations[1].UnitPrice.Amount().Equal(decimal.NewFromInt(75)))
	assert.True(t, allocations[0].LineTotal().Amount().Equal(decimal.NewFromInt(1500)))
	assert.True(t, allocations[1].LineTotal().Amount().Equal(decimal.NewFromInt(750)))
}

func TestAllocateFIFO_ShortageLeavesBatchesUntouched(t *testing.T) {
	medicineID := uuid.New()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	b1 := newTestBatch(t, medicineID, "B1", base, 10, 50)
	b2 := newTestBatch(t, medicineID, "B2", base.AddDate(0, 0, 1), 15, 50)

	allocations, err := AllocateFIFO(medicineID, 40, []*ShipmentBatch{b1, b2})
	assert.Nil(t, allocations)

	var shortage *ShortageError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, medicineID, shortage.MedicineID)
	assert.Equal(t, int64(40), shortage.Requested)
	assert.Equal(t, int64(15), shortage.Shortage)

	// No partial deduction on shortage.
	assert.Equal(t, int64(10), b1.Quantity)
	assert.Equal(t, int64(15), b2.Quantity)
}

func TestAllocateFIFO_ZeroRequest(t *testing.T) {
	medicineID := uuid.New()
	b := newTestBatch(t, medicineID, "B1", time.Now(), 10, 50)

	allocations, err := AllocateFIFO(medicineID, 0, []*ShipmentBatch{b})
	assert.NoError(t, err)
	assert.Empty(t, allocations)
	assert.Equal(t, int64(10), b.Quantity)
}

func TestAllocateFIFO_NegativeRequestRejected(t *testing.T) {
	_, err := AllocateFIFO(uuid.New(), -5, nil)
	assert.Error(t, err)
}

func TestAllocateFIFO_SkipsExhaustedAndOtherMedicines(t *testing.T) {
	medicineID := uuid.New()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	empty := newTestBatch(t, medicineID, "B-EMPTY", base, 5, 50)
	require.NoError(t, empty.Deduct(5))
	other := newTestBatch(t, uuid.New(), "B-OTHER", base, 100, 50)
	usable := newTestBatch(t, medicineID, "B-OK", base.AddDate(0, 0, 2), 20, 50)

	allocations, err := AllocateFIFO(medicineID, 15, []*ShipmentBatch{empty, other, usable})
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, usable.ID, allocations[0].Batch.ID)
	assert.Equal(t, int64(100), other.Quantity)
}

func TestAllocateFIFO_ExpiredBatchStillAllocated(t *testing.T) {
	medicineID := uuid.New()
	expiry := time.Now().AddDate(0, 0, -10)

	expired, err := NewShipmentBatch(
		medicineID, "B-EXP",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		&expiry,
		50,
		valueobject.NewMoneyNGNFromFloat(30),
		valueobject.NewMoneyNGNFromFloat(50),
	)
	require.NoError(t, err)
	fresh := newTestBatch(t, medicineID, "B-FRESH", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 50, 50)

	// Allocation follows intake order only; expiry is a reporting
	// concern and does not reorder or exclude batches here.
	allocations, err := AllocateFIFO(medicineID, 60, []*ShipmentBatch{fresh, expired})
	require.NoError(t, err)
	require.Len(t, allocations, 2)
	assert.Equal(t, expired.ID, allocations[0].Batch.ID)
	assert.Equal(t, int64(50), allocations[0].Quantity)
}

func TestSortBatchesFIFO_DeterministicTieBreak(t *testing.T) {
	medicineID := uuid.New()
	received := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	a := newTestBatch(t, medicineID, "A", received, 10, 50)
	b := newTestBatch(t, medicineID, "B", received, 10, 50)
	// Same received and created timestamps force the ID tie-break.
	b.CreatedAt = a.CreatedAt

	first := []*ShipmentBatch{a, b}
	second := []*ShipmentBatch{b, a}
	SortBatchesFIFO(first)
	SortBatchesFIFO(second)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
}
