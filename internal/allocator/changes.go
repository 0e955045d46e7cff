package allocator

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

// Change is one pending edit of a row's allocation.
type Change struct {
	RowID    int64
	Proposed decimal.Decimal
}

// ApplyChanges recomputes each change in order, every one seeing the
// allocations stored by the ones before it. All row ids are checked before
// anything is mutated.
func ApplyChanges(batch *domain.AllocationBatch, changes []Change) ([]Result, error) {
	for _, c := range changes {
		if !batch.Has(c.RowID) {
			return nil, fmt.Errorf("%w: row %d not in batch %s", domain.ErrInvalidRowReference, c.RowID, batch.Key)
		}
	}

	results := make([]Result, 0, len(changes))
	for _, c := range changes {
		res, err := Recompute(batch, c.RowID, c.Proposed)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// SetPaymentDate records the payment date of a row. Allocations are untouched.
func SetPaymentDate(batch *domain.AllocationBatch, rowID int64, date *time.Time) error {
	row, err := batch.Row(rowID)
	if err != nil {
		return err
	}
	if date == nil {
		row.PaymentDate = nil
		return nil
	}
	d := *date
	row.PaymentDate = &d
	return nil
}

// Reset sets every allocation in the batch to zero and returns how many
// rows changed.
func Reset(batch *domain.AllocationBatch) int {
	changed := 0
	for _, r := range batch.Rows() {
		if !r.Allocate.IsZero() {
			changed++
		}
		r.Allocate = decimal.Zero
	}
	return changed
}
