package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BatchKey identifies the allocation batch of one payor in one business.
type BatchKey struct {
	BID  int64
	TCID int64
}

func (k BatchKey) String() string {
	return fmt.Sprintf("B%d/TC%d", k.BID, k.TCID)
}

// AllocationBatch is the set of unpaid assessments reconciled against one
// payor fund. Rows keep their load order; lookups go through an index
// owned by the batch.
type AllocationBatch struct {
	Key       BatchKey
	PayorName string
	TotalFund decimal.Decimal

	rows  []*AssessmentRow
	index map[int64]int
}

// NewAllocationBatch builds a batch over rows. Row identifiers must be unique.
func NewAllocationBatch(key BatchKey, totalFund decimal.Decimal, rows []*AssessmentRow) (*AllocationBatch, error) {
	b := &AllocationBatch{
		Key:       key,
		TotalFund: totalFund,
		rows:      make([]*AssessmentRow, 0, len(rows)),
		index:     make(map[int64]int, len(rows)),
	}
	for _, r := range rows {
		if _, dup := b.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRow, r.ID)
		}
		b.index[r.ID] = len(b.rows)
		b.rows = append(b.rows, r)
	}
	return b, nil
}

// Rows returns the rows in display order. The slice is a copy; the rows are shared.
func (b *AllocationBatch) Rows() []*AssessmentRow {
	out := make([]*AssessmentRow, len(b.rows))
	copy(out, b.rows)
	return out
}

// Len returns the number of rows.
func (b *AllocationBatch) Len() int {
	return len(b.rows)
}

// Row returns the row with the given id or ErrInvalidRowReference.
func (b *AllocationBatch) Row(id int64) (*AssessmentRow, error) {
	i, ok := b.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: row %d not in batch %s", ErrInvalidRowReference, id, b.Key)
	}
	return b.rows[i], nil
}

// Has reports whether a row with the given id is in the batch.
func (b *AllocationBatch) Has(id int64) bool {
	_, ok := b.index[id]
	return ok
}
