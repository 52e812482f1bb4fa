package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/inventory"
)

// StockSummaryFilter narrows which intake and sales rows feed the summary
type StockSummaryFilter struct {
	From           *time.Time
	To             *time.Time
	MedicineID     *uuid.UUID
	ManufacturerID *uuid.UUID
	ShipmentMode   *inventory.ShipmentMode
}

// MedicineIntake is the received side of the summary, aggregated per medicine
type MedicineIntake struct {
	MedicineID   uuid.UUID
	MedicineName string
	Quantity     int64
}

// MedicineOutflow is the sold side of the summary, aggregated per medicine
type MedicineOutflow struct {
	MedicineID   uuid.UUID
	MedicineName string
	Quantity     int64
}

// StockSummaryRow is one medicine's movement within the filtered window
type StockSummaryRow struct {
	MedicineID     uuid.UUID `json:"medicineId"`
	MedicineName   string    `json:"medicineName"`
	TotalReceived  int64     `json:"totalReceived"`
	TotalSold      int64     `json:"totalSold"`
	CurrentBalance int64     `json:"currentBalance"`
}

// BuildStockSummary joins the received and sold aggregates into one row
// per medicine touched by either side. Balance is received minus sold
// within the filtered window.
func BuildStockSummary(intakes []MedicineIntake, outflows []MedicineOutflow) []StockSummaryRow {
	rows := make(map[uuid.UUID]*StockSummaryRow)

	for _, in := range intakes {
		row, ok := rows[in.MedicineID]
		if !ok {
			row = &StockSummaryRow{MedicineID: in.MedicineID, MedicineName: in.MedicineName}
			rows[in.MedicineID] = row
		}
		row.TotalReceived += in.Quantity
	}
	for _, out := range outflows {
		row, ok := rows[out.MedicineID]
		if !ok {
			row = &StockSummaryRow{MedicineID: out.MedicineID, MedicineName: out.MedicineName}
			rows[out.MedicineID] = row
		}
		row.TotalSold += out.Quantity
	}

	result := make([]StockSummaryRow, 0, len(rows))
	for _, row := range rows {
		row.CurrentBalance = row.TotalReceived - row.TotalSold
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MedicineName < result[j].MedicineName
	})
	return result
}
