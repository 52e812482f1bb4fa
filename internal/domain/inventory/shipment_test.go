package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	creator := uuid.New()

	t.Run("valid shipment", func(t *testing.T) {
		s, err := NewShipment("PI-2026-001", "Cipla Ltd", ShipmentModeAir, time.Now(), creator)
		require.NoError(t, err)
		assert.Equal(t, DeliveryStatusPending, s.DeliveryStatus)
		assert.Equal(t, ShipmentModeAir, s.Mode)
	})

	t.Run("empty invoice number rejected", func(t *testing.T) {
		_, err := NewShipment(" ", "Cipla Ltd", ShipmentModeAir, time.Now(), creator)
		assert.Error(t, err)
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		_, err := NewShipment("PI-2026-001", "Cipla Ltd", ShipmentMode("RAIL"), time.Now(), creator)
		assert.Error(t, err)
	})
}

func TestShipment_UpdateDeliveryStatus(t *testing.T) {
	s, err := NewShipment("PI-2026-001", "Cipla Ltd", ShipmentModeSea, time.Now(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, s.UpdateDeliveryStatus(DeliveryStatusInTransit))
	require.NoError(t, s.UpdateDeliveryStatus(DeliveryStatusDelivered))

	// Delivered is terminal.
	err = s.UpdateDeliveryStatus(DeliveryStatusInTransit)
	assert.Error(t, err)
}

func TestShipment_AddBatchAndTotalQuantity(t *testing.T) {
	s, err := NewShipment("PI-2026-001", "Cipla Ltd", ShipmentModeLand, time.Now(), uuid.New())
	require.NoError(t, err)

	b1 := mustBatch(t, uuid.New(), "BN-1", 100)
	b2 := mustBatch(t, uuid.New(), "BN-2", 250)
	s.AddBatch(b1)
	s.AddBatch(b2)

	assert.Equal(t, int64(350), s.TotalQuantity())
	assert.Equal(t, s.ID, s.Batches[0].ShipmentID)
}

func TestShipmentBatch_Deduct(t *testing.T) {
	b := mustBatch(t, uuid.New(), "BN-1", 100)

	require.NoError(t, b.Deduct(60))
	assert.Equal(t, int64(40), b.Quantity)
	assert.Equal(t, int64(100), b.QuantityReceived, "received quantity is immutable")

	err := b.Deduct(41)
	assert.Error(t, err)
	assert.Equal(t, int64(40), b.Quantity, "failed deduction must not change quantity")

	require.NoError(t, b.Deduct(40))
	assert.False(t, b.HasStock())
}

func TestShipmentBatch_DeductTouchesUpdatedAt(t *testing.T) {
	b := mustBatch(t, uuid.New(), "BN-1", 100)
	created := b.UpdatedAt

	time.Sleep(time.Millisecond)
	require.NoError(t, b.Deduct(10))
	assert.True(t, b.UpdatedAt.After(created))
}

func TestShipmentBatch_Expiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 45)

	b, err := NewShipmentBatch(uuid.New(), "BN-1", now, &expiry, 10,
		valueobject.NewMoneyNGNFromFloat(10), valueobject.NewMoneyNGNFromFloat(20))
	require.NoError(t, err)

	assert.False(t, b.IsExpired(now))
	assert.True(t, b.ExpiresWithin(90, now))
	assert.False(t, b.ExpiresWithin(30, now))
	assert.True(t, b.IsExpired(now.AddDate(0, 2, 0)))

	noExpiry := mustBatch(t, uuid.New(), "BN-2", 10)
	assert.False(t, noExpiry.IsExpired(now))
	assert.False(t, noExpiry.ExpiresWithin(365, now))
}

func mustBatch(t *testing.T, medicineID uuid.UUID, batchNumber string, quantity int64) *ShipmentBatch {
	t.Helper()
	b, err := NewShipmentBatch(medicineID, batchNumber, time.Now(), nil, quantity,
		valueobject.NewMoneyNGNFromFloat(10), valueobject.NewMoneyNGNFromFloat(20))
	require.NoError(t, err)
	return b
}
