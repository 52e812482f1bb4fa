package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency_IsValid(t *testing.T) {
	tests := []struct {
		currency Currency
		isValid  bool
	}{
		{NGN, true},
		{USD, true},
		{Currency("EUR"), false},
		{Currency(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.currency), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.currency.IsValid())
		})
	}
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), NGN)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, NGN, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(100), Currency("XYZ"))
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyNGN(decimal.NewFromInt(40))
	b := NewMoneyNGN(decimal.NewFromInt(60))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(100)))

	usd := Zero(USD)
	_, err = a.Add(usd)
	assert.Error(t, err, "mixed-currency addition must fail")
}

func TestMoney_Subtract(t *testing.T) {
	total := NewMoneyNGN(decimal.NewFromInt(100))
	paid := NewMoneyNGN(decimal.NewFromInt(80))

	remaining, err := total.Subtract(paid)
	require.NoError(t, err)
	assert.True(t, remaining.Amount().Equal(decimal.NewFromInt(20)))
}

func TestMoney_MultiplyByInt(t *testing.T) {
	unitPrice := NewMoneyNGNFromFloat(12.5)
	lineTotal := unitPrice.MultiplyByInt(4)
	assert.True(t, lineTotal.Amount().Equal(decimal.NewFromInt(50)))
}

func TestMoney_ExactDecimalArithmetic(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, no float drift between order totals
	// and payment sums.
	a, err := NewMoneyFromString("0.1", NGN)
	require.NoError(t, err)
	b, err := NewMoneyFromString("0.2", NGN)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	expected, _ := decimal.NewFromString("0.3")
	assert.True(t, sum.Amount().Equal(expected))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyNGNFromFloat(2500.75)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("1234.56"))
	expected, _ := decimal.NewFromString("1234.56")
	assert.True(t, m.Amount().Equal(expected))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
