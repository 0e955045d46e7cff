package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssessmentRow is one unpaid assessment of a payor, as shown in the
// allocation grid. Allocate is the only field the allocator mutates.
type AssessmentRow struct {
	ID         int64 // ASMID, unique within a batch
	BID        int64
	TCID       int64
	ARID       int64 // account rule
	Assessment string
	Date       time.Time

	Amount     decimal.Decimal
	AmountPaid decimal.Decimal
	AmountOwed decimal.Decimal
	Allocate   decimal.Decimal

	PaymentDate *time.Time
	UpdatedAt   time.Time
}

// OwedAmount is what remains to be paid on an assessment.
func OwedAmount(amount, paid decimal.Decimal) decimal.Decimal {
	return amount.Sub(paid)
}

// IsUnpaid reports whether anything is still owed on the row.
func (r *AssessmentRow) IsUnpaid() bool {
	return r.AmountOwed.IsPositive()
}
