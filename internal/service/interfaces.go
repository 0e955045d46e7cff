package service

import (
	"context"
	"time"

	"github.com/alexanderramin/fundalloc/internal/allocator"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/importer"
	"github.com/alexanderramin/fundalloc/internal/repository"
	"github.com/shopspring/decimal"
)

type PayorService interface {
	Create(ctx context.Context, p *domain.Payor) error
	Get(ctx context.Context, key domain.BatchKey) (*domain.Payor, error)
	List(ctx context.Context, bid int64) ([]repository.PayorSummary, error)
	SetFund(ctx context.Context, key domain.BatchKey, raw string) (*domain.Payor, error)
}

// RawChange is one pending grid edit as typed by the operator.
type RawChange struct {
	RowID  int64
	Amount string
}

// AllocationOutcome is the batch state after a use case together with the
// per-row recompute results, in the order they were applied.
type AllocationOutcome struct {
	Batch       *domain.AllocationBatch
	Results     []allocator.Result
	Unallocated decimal.Decimal
	Violations  []allocator.Violation
}

// Result returns the last recompute result, or false if none ran.
func (o *AllocationOutcome) Result() (allocator.Result, bool) {
	if len(o.Results) == 0 {
		return allocator.Result{}, false
	}
	return o.Results[len(o.Results)-1], true
}

type AllocationService interface {
	Load(ctx context.Context, key domain.BatchKey) (*AllocationOutcome, error)
	Allocate(ctx context.Context, key domain.BatchKey, rowID int64, raw string) (*AllocationOutcome, error)
	ApplyChanges(ctx context.Context, key domain.BatchKey, changes []RawChange) (*AllocationOutcome, error)
	SetPaymentDate(ctx context.Context, key domain.BatchKey, rowID int64, date *time.Time) (*AllocationOutcome, error)
	Reset(ctx context.Context, key domain.BatchKey) (*AllocationOutcome, error)
	History(ctx context.Context, key domain.BatchKey, limit int) ([]*domain.AllocationEvent, error)
}

// ImportResult holds the outcome of a rent-roll import.
type ImportResult struct {
	PayorCount      int
	AssessmentCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
