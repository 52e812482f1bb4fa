package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	orderID := uuid.New()
	distributorID := uuid.New()
	actorID := uuid.New()

	t.Run("valid payment", func(t *testing.T) {
		p, err := NewPayment(orderID, distributorID, valueobject.NewMoneyNGNFromFloat(5000), PaymentTypeTransfer, time.Now(), actorID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.NGN, p.Currency)
		assert.Equal(t, PaymentTypeTransfer, p.Type)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewPayment(orderID, distributorID, valueobject.Zero(valueobject.NGN), PaymentTypeCash, time.Now(), actorID)
		assert.Error(t, err)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, err := NewPayment(orderID, distributorID, valueobject.NewMoneyNGNFromFloat(100), PaymentType("BARTER"), time.Now(), actorID)
		assert.Error(t, err)
	})

	t.Run("missing actor rejected", func(t *testing.T) {
		_, err := NewPayment(orderID, distributorID, valueobject.NewMoneyNGNFromFloat(100), PaymentTypeCash, time.Now(), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestPayment_AttachDocument(t *testing.T) {
	p, err := NewPayment(uuid.New(), uuid.New(), valueobject.NewMoneyNGNFromFloat(100), PaymentTypeCheque, time.Now(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, p.AttachDocument("https://files.example.com/slips/1.pdf", "bank-slip.pdf"))
	require.Len(t, p.Documents, 1)
	assert.Equal(t, p.ID, p.Documents[0].PaymentID)

	assert.Error(t, p.AttachDocument("", "x.pdf"))
	assert.Error(t, p.AttachDocument("https://files.example.com/y.pdf", " "))
}
