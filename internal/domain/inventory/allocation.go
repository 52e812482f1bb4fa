package inventory

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/shared"
	"github.com/pharmalink/backend/internal/domain/shared/valueobject"
)

// ShortageError reports that available stock could not cover a requested
// quantity. The caller must abort the enclosing transaction so no partial
// deduction survives.
type ShortageError struct {
	MedicineID uuid.UUID
	Requested  int64
	Shortage   int64
}

// Error implements the error interface
func (e *ShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for medicine %s: requested %d, short by %d",
		e.MedicineID, e.Requested, e.Shortage)
}

// Allocation is one priced slice of an allocation plan, drawn from a
// single batch. UnitPrice is the price charged per unit, which is the
// source batch's unit cost; the batch's selling price is a catalog
// attribute and does not drive order pricing.
type Allocation struct {
	Batch     *ShipmentBatch
	Quantity  int64
	UnitPrice valueobject.Money
}

// LineTotal returns quantity times the charged unit price
func (a Allocation) LineTotal() valueobject.Money {
	return a.UnitPrice.MultiplyByInt(a.Quantity)
}

// SortBatchesFIFO orders batches by intake order: received timestamp
// ascending, ties broken by creation timestamp then ID so the walk is
// deterministic regardless of input order.
func SortBatchesFIFO(batches []*ShipmentBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.Before(b.ReceivedAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

// AllocateFIFO allocates the requested quantity across the given batches
// in strict intake order, oldest received first. Expired batches are not
// excluded here: sale allocation follows intake order only, and expiry is
// surfaced through the expiring-stock views instead.
//
// On success every touched batch has been deducted and one allocation per
// touched batch is returned. On shortage no batch is modified and a
// *ShortageError carrying the shortfall is returned. A zero request
// yields no allocations and no error.
func AllocateFIFO(medicineID uuid.UUID, requested int64, batches []*ShipmentBatch) ([]Allocation, error) {
	if requested < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity cannot be negative")
	}
	if requested == 0 {
		return nil, nil
	}

	candidates := make([]*ShipmentBatch, 0, len(batches))
	var available int64
	for _, b := range batches {
		if b.MedicineID == medicineID && b.HasStock() {
			candidates = append(candidates, b)
			available += b.Quantity
		}
	}

	if available < requested {
		return nil, &ShortageError{
			MedicineID: medicineID,
			Requested:  requested,
			Shortage:   requested - available,
		}
	}

	SortBatchesFIFO(candidates)

	allocations := make([]Allocation, 0, len(candidates))
	remaining := requested
	for _, batch := range candidates {
		if remaining == 0 {
			break
		}
		take := min(batch.Quantity, remaining)
		if err := batch.Deduct(take); err != nil {
			return nil, err
		}
		allocations = append(allocations, Allocation{
			Batch:     batch,
			Quantity:  take,
			UnitPrice: batch.UnitCost,
		})
		remaining -= take
	}

	return allocations, nil
}
