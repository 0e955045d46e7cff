package allocator

import (
	"fmt"

	"github.com/alexanderramin/fundalloc/internal/domain"
)

// ViolationCode names a broken allocation invariant.
type ViolationCode string

const (
	ViolationNegative     ViolationCode = "NEGATIVE_ALLOCATION"
	ViolationExceedsOwed  ViolationCode = "EXCEEDS_OWED"
	ViolationExceedsFunds ViolationCode = "EXCEEDS_FUND"
)

// Violation describes one broken invariant. RowID is zero for batch-level
// violations.
type Violation struct {
	Code    ViolationCode
	RowID   int64
	Message string
}

// Check reports every row whose allocation is negative or above what is
// owed, and whether the batch as a whole allocates more than the fund.
// Recompute preserves these invariants only while the fund covers the other
// rows, so stored batches can still violate them.
func Check(batch *domain.AllocationBatch) []Violation {
	var out []Violation
	for _, r := range batch.Rows() {
		if r.Allocate.IsNegative() {
			out = append(out, Violation{
				Code:    ViolationNegative,
				RowID:   r.ID,
				Message: fmt.Sprintf("row %d allocates %s", r.ID, r.Allocate.StringFixed(domain.CentPlaces)),
			})
		}
		if r.Allocate.GreaterThan(r.AmountOwed) {
			out = append(out, Violation{
				Code:  ViolationExceedsOwed,
				RowID: r.ID,
				Message: fmt.Sprintf("row %d allocates %s but owes %s", r.ID,
					r.Allocate.StringFixed(domain.CentPlaces), r.AmountOwed.StringFixed(domain.CentPlaces)),
			})
		}
	}
	total := ComputeTotals(batch).Allocate
	if total.GreaterThan(batch.TotalFund) {
		out = append(out, Violation{
			Code: ViolationExceedsFunds,
			Message: fmt.Sprintf("allocations total %s but the fund is %s",
				total.StringFixed(domain.CentPlaces), batch.TotalFund.StringFixed(domain.CentPlaces)),
		})
	}
	return out
}
