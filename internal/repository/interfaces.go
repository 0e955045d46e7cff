package repository

import (
	"context"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

// PayorSummary is a payor joined with the totals of its unpaid assessments,
// used for the list of payors with funds to allocate.
type PayorSummary struct {
	Payor       domain.Payor
	UnpaidCount int
	Owed        decimal.Decimal
	Allocated   decimal.Decimal
}

// Unallocated is the part of the payor's fund not assigned to any assessment.
func (s PayorSummary) Unallocated() decimal.Decimal {
	return s.Payor.Fund.Sub(s.Allocated)
}

type PayorRepo interface {
	Create(ctx context.Context, p *domain.Payor) error
	Get(ctx context.Context, key domain.BatchKey) (*domain.Payor, error)
	List(ctx context.Context, bid int64) ([]*domain.Payor, error)
	ListSummaries(ctx context.Context, bid int64) ([]PayorSummary, error)
	UpdateFund(ctx context.Context, key domain.BatchKey, fund decimal.Decimal) error
}

type AssessmentRepo interface {
	Create(ctx context.Context, a *domain.AssessmentRow) error
	GetByID(ctx context.Context, id int64) (*domain.AssessmentRow, error)
	ListByPayor(ctx context.Context, key domain.BatchKey, unpaidOnly bool) ([]*domain.AssessmentRow, error)
	UpdateAllocation(ctx context.Context, a *domain.AssessmentRow) error
}

type AllocationEventRepo interface {
	Create(ctx context.Context, e *domain.AllocationEvent) error
	ListByBatch(ctx context.Context, key domain.BatchKey, limit int) ([]*domain.AllocationEvent, error)
}
