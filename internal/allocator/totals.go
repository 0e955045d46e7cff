package allocator

import (
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

// Totals is the summary row of an allocation batch.
type Totals struct {
	Amount     decimal.Decimal
	AmountPaid decimal.Decimal
	AmountOwed decimal.Decimal
	Allocate   decimal.Decimal
}

// ComputeTotals sums the monetary columns of the batch.
func ComputeTotals(batch *domain.AllocationBatch) Totals {
	var t Totals
	for _, r := range batch.Rows() {
		t.Amount = t.Amount.Add(r.Amount)
		t.AmountPaid = t.AmountPaid.Add(r.AmountPaid)
		t.AmountOwed = t.AmountOwed.Add(r.AmountOwed)
		t.Allocate = t.Allocate.Add(r.Allocate)
	}
	return t
}

// Unallocated is the part of the fund not yet assigned to any row.
func Unallocated(batch *domain.AllocationBatch) decimal.Decimal {
	return batch.TotalFund.Sub(ComputeTotals(batch).Allocate)
}
