package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStockSummary(t *testing.T) {
	amoxID := uuid.New()
	paraID := uuid.New()
	syrupID := uuid.New()

	intakes := []MedicineIntake{
		{MedicineID: amoxID, MedicineName: "Amoxicillin 500mg", Quantity: 500},
		{MedicineID: paraID, MedicineName: "Paracetamol 500mg", Quantity: 1000},
	}
	outflows := []MedicineOutflow{
		{MedicineID: amoxID, MedicineName: "Amoxicillin 500mg", Quantity: 120},
		// Sold from stock received before the filter window: appears with
		// zero received.
		{MedicineID: syrupID, MedicineName: "Cough Syrup 100ml", Quantity: 30},
	}

	rows := BuildStockSummary(intakes, outflows)
	require.Len(t, rows, 3)

	byID := make(map[uuid.UUID]StockSummaryRow)
	for _, r := range rows {
		byID[r.MedicineID] = r
	}

	assert.Equal(t, int64(500), byID[amoxID].TotalReceived)
	assert.Equal(t, int64(120), byID[amoxID].TotalSold)
	assert.Equal(t, int64(380), byID[amoxID].CurrentBalance)

	assert.Equal(t, int64(1000), byID[paraID].TotalReceived)
	assert.Equal(t, int64(0), byID[paraID].TotalSold)

	assert.Equal(t, int64(0), byID[syrupID].TotalReceived)
	assert.Equal(t, int64(-30), byID[syrupID].CurrentBalance)
}

func TestBuildStockSummary_SortedByName(t *testing.T) {
	rows := BuildStockSummary(
		[]MedicineIntake{
			{MedicineID: uuid.New(), MedicineName: "Zinc 20mg", Quantity: 10},
			{MedicineID: uuid.New(), MedicineName: "Amlodipine 5mg", Quantity: 10},
		},
		nil,
	)
	require.Len(t, rows, 2)
	assert.Equal(t, "Amlodipine 5mg", rows[0].MedicineName)
	assert.Equal(t, "Zinc 20mg", rows[1].MedicineName)
}

func TestPaymentRegisterFilter_Normalize(t *testing.T) {
	f := PaymentRegisterFilter{}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultRegisterLimit, f.Limit)

	f = PaymentRegisterFilter{Page: 3, Limit: 20}
	f.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Limit)
}

func TestNewPaymentRegister_Pages(t *testing.T) {
	reg := NewPaymentRegister(nil, 101, 1, 50)
	assert.Equal(t, 3, reg.Pages)

	reg = NewPaymentRegister(nil, 100, 2, 50)
	assert.Equal(t, 2, reg.Pages)
}
