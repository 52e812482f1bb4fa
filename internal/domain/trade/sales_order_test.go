package trade

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

func newTestOrder(t *testing.T, lineTotals ...float64) *SalesOrder {
	t.Helper()
	items := make([]SalesLineItem, 0, len(lineTotals))
	for _, total := range lineTotals {
		item, err := NewSalesLineItem(uuid.New(), uuid.New(), 1, valueobject.NewMoneyNGNFromFloat(total))
		require.NoError(t, err)
		items = append(items, *item)
	}
	order, err := NewSalesOrder("SO-2026-0001", uuid.New(), uuid.New(), valueobject.NGN, time.Now(), items)
	require.NoError(t, err)
	return order
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("order amount is sum of line totals", func(t *testing.T) {
		order := newTestOrder(t, 1500, 750)
		assert.True(t, order.OrderAmount.Amount().Equal(decimal.NewFromInt(2250)))
		assert.True(t, order.AmountPaid.IsZero())
		assert.True(t, order.AmountRemaining.Equals(order.OrderAmount))
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
	})

	t.Run("line items bound to order", func(t *testing.T) {
		order := newTestOrder(t, 100, 200)
		for _, item := range order.LineItems {
			assert.Equal(t, order.ID, item.SalesOrderID)
		}
	})

	t.Run("empty order rejected", func(t *testing.T) {
		_, err := NewSalesOrder("SO-1", uuid.New(), uuid.New(), valueobject.NGN, time.Now(), nil)
		assert.Error(t, err)
	})
}

func TestNewSalesLineItem(t *testing.T) {
	item, err := NewSalesLineItem(uuid.New(), uuid.New(), 30, valueobject.NewMoneyNGNFromFloat(50))
	require.NoError(t, err)
	assert.True(t, item.LineTotal.Amount().Equal(decimal.NewFromInt(1500)))

	_, err = NewSalesLineItem(uuid.New(), uuid.New(), 0, valueobject.NewMoneyNGNFromFloat(50))
	assert.Error(t, err)
}

func TestSalesOrder_ApplyPayment(t *testing.T) {
	t.Run("partial then full settles the order", func(t *testing.T) {
		order := newTestOrder(t, 100)

		require.NoError(t, order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(40)))
		assert.Equal(t, PaymentStatusPartial, order.PaymentStatus)
		assert.True(t, order.AmountRemaining.Amount().Equal(decimal.NewFromInt(60)))

		require.NoError(t, order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(60)))
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
		assert.True(t, order.AmountRemaining.IsZero())
		assert.True(t, order.IsFullyPaid())
	})

	t.Run("exact single payment settles immediately", func(t *testing.T) {
		order := newTestOrder(t, 100)
		require.NoError(t, order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(100)))
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	})

	t.Run("overpayment rejected with outstanding balance", func(t *testing.T) {
		order := newTestOrder(t, 100)
		require.NoError(t, order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(80)))

		err := order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(50))
		var overpay *OverpaymentError
		require.True(t, errors.As(err, &overpay))
		assert.True(t, overpay.Outstanding.Amount().Equal(decimal.NewFromInt(20)))

		// Rejected payment leaves the order untouched.
		assert.True(t, order.AmountPaid.Amount().Equal(decimal.NewFromInt(80)))
		assert.Equal(t, PaymentStatusPartial, order.PaymentStatus)
	})

	t.Run("settled order accepts nothing", func(t *testing.T) {
		order := newTestOrder(t, 100)
		require.NoError(t, order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(100)))

		err := order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(1))
		var alreadyPaid *AlreadyPaidError
		assert.True(t, errors.As(err, &alreadyPaid))
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		order := newTestOrder(t, 100)
		assert.Error(t, order.ApplyPayment(valueobject.Zero(valueobject.NGN)))
		assert.Error(t, order.ApplyPayment(valueobject.NewMoneyNGNFromFloat(-10)))
	})

	t.Run("currency mismatch rejected", func(t *testing.T) {
		order := newTestOrder(t, 100)
		usd, err := valueobject.NewMoney(decimal.NewFromInt(10), valueobject.USD)
		require.NoError(t, err)
		assert.Error(t, order.ApplyPayment(usd))
	})

	t.Run("exact decimal settlement without drift", func(t *testing.T) {
		item, err := NewSalesLineItem(uuid.New(), uuid.New(), 3, valueobject.NewMoneyNGNFromFloat(0.1))
		require.NoError(t, err)
		order, err := NewSalesOrder("SO-2026-0002", uuid.New(), uuid.New(), valueobject.NGN, time.Now(), []SalesLineItem{*item})
		require.NoError(t, err)

		a, _ := valueobject.NewMoneyFromString("0.1", valueobject.NGN)
		b, _ := valueobject.NewMoneyFromString("0.2", valueobject.NGN)
		require.NoError(t, order.ApplyPayment(a))
		require.NoError(t, order.ApplyPayment(b))
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	})
}
