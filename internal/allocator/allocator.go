// Package allocator reconciles a payor's fund against the unpaid assessments
// of an allocation batch, one edited row at a time.
package allocator

import (
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

// Result describes a single recompute of an edited row.
type Result struct {
	RowID    int64
	Proposed decimal.Decimal
	Previous decimal.Decimal
	Applied  decimal.Decimal

	FundsAllocatedElsewhere decimal.Decimal
	// FundsRemaining is not floored at zero; a negative value means the
	// other rows already exceed the fund.
	FundsRemaining decimal.Decimal

	Clamp domain.ClampKind
}

// Changed reports whether the recompute altered the stored allocation.
func (r Result) Changed() bool {
	return !r.Previous.Equal(r.Applied)
}

// Recompute applies a proposed allocation to one row of the batch.
//
// A proposal of zero or less stores zero. Otherwise the proposal is capped
// first by what the fund has left after every other row's stored
// allocation, then by the amount owed on the row. Only the edited row is
// mutated. An unknown row leaves the batch untouched.
func Recompute(batch *domain.AllocationBatch, rowID int64, proposed decimal.Decimal) (Result, error) {
	row, err := batch.Row(rowID)
	if err != nil {
		return Result{}, err
	}

	elsewhere := AllocatedExcept(batch, rowID)
	res := Result{
		RowID:                   rowID,
		Proposed:                proposed,
		Previous:                row.Allocate,
		FundsAllocatedElsewhere: elsewhere,
		FundsRemaining:          batch.TotalFund.Sub(elsewhere),
		Clamp:                   domain.ClampNone,
	}

	if !proposed.IsPositive() {
		row.Allocate = decimal.Zero
		res.Applied = row.Allocate
		if proposed.IsNegative() {
			res.Clamp = domain.ClampNonPositive
		}
		return res, nil
	}

	amtToPay := proposed
	if amtToPay.GreaterThan(res.FundsRemaining) {
		amtToPay = res.FundsRemaining
		res.Clamp = domain.ClampFunds
	}
	if amtToPay.GreaterThan(row.AmountOwed) {
		amtToPay = row.AmountOwed
		res.Clamp = domain.ClampOwed
	}

	row.Allocate = amtToPay
	res.Applied = amtToPay
	return res, nil
}

// AllocatedExcept sums the stored allocations of every row but rowID.
func AllocatedExcept(batch *domain.AllocationBatch, rowID int64) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range batch.Rows() {
		if r.ID == rowID {
			continue
		}
		sum = sum.Add(r.Allocate)
	}
	return sum
}
