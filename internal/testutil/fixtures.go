package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

var testAssessmentCounter atomic.Int64

// TestDate is the assessment date fixtures use unless told otherwise.
var TestDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Money parses a literal amount for fixtures.
func Money(s string) decimal.Decimal {
	return domain.MustAmount(s)
}

// Payor options
type PayorOption func(*domain.Payor)

func WithFund(amount string) PayorOption {
	return func(p *domain.Payor) {
		p.Fund = Money(amount)
	}
}

func NewTestPayor(bid, tcid int64, name string, opts ...PayorOption) *domain.Payor {
	p := &domain.Payor{
		BID:  bid,
		TCID: tcid,
		Name: name,
		Fund: decimal.Zero,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Assessment options
type AssessmentOption func(*domain.AssessmentRow)

func WithAmountPaid(amount string) AssessmentOption {
	return func(a *domain.AssessmentRow) {
		a.AmountPaid = Money(amount)
	}
}

func WithAllocate(amount string) AssessmentOption {
	return func(a *domain.AssessmentRow) {
		a.Allocate = Money(amount)
	}
}

func WithAssessedOn(d time.Time) AssessmentOption {
	return func(a *domain.AssessmentRow) {
		a.Date = d
	}
}

func WithPaymentDate(d time.Time) AssessmentOption {
	return func(a *domain.AssessmentRow) {
		a.PaymentDate = &d
	}
}

func WithARID(arid int64) AssessmentOption {
	return func(a *domain.AssessmentRow) {
		a.ARID = arid
	}
}

func WithAssessmentID(id int64) AssessmentOption {
	return func(a *domain.AssessmentRow) {
		a.ID = id
	}
}

// NewTestAssessment builds an unpaid assessment of amount for the payor at
// key. IDs are allocated from a package counter unless WithAssessmentID is used.
func NewTestAssessment(key domain.BatchKey, name, amount string, opts ...AssessmentOption) *domain.AssessmentRow {
	a := &domain.AssessmentRow{
		ID:         1000 + testAssessmentCounter.Add(1),
		BID:        key.BID,
		TCID:       key.TCID,
		ARID:       1,
		Assessment: name,
		Date:       TestDate,
		Amount:     Money(amount),
		AmountPaid: decimal.Zero,
		Allocate:   decimal.Zero,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.AmountOwed = domain.OwedAmount(a.Amount, a.AmountPaid)
	return a
}
