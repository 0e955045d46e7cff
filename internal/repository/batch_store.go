package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/domain"
)

// BatchStore loads and saves allocation batches: a payor's fund together
// with its unpaid assessments.
type BatchStore struct {
	payors      PayorRepo
	assessments AssessmentRepo
}

// NewBatchStore creates a BatchStore over the given repositories.
func NewBatchStore(payors PayorRepo, assessments AssessmentRepo) *BatchStore {
	return &BatchStore{payors: payors, assessments: assessments}
}

// NewSQLiteBatchStore creates a BatchStore whose repositories share conn,
// typically the tx handed out by a UnitOfWork.
func NewSQLiteBatchStore(conn db.DBTX) *BatchStore {
	return NewBatchStore(NewSQLitePayorRepo(conn), NewSQLiteAssessmentRepo(conn))
}

// Load reads the batch for key. The payor must exist; a payor without
// unpaid assessments yields an empty batch.
func (s *BatchStore) Load(ctx context.Context, key domain.BatchKey) (*domain.AllocationBatch, error) {
	payor, err := s.payors.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	rows, err := s.assessments.ListByPayor(ctx, key, true)
	if err != nil {
		return nil, err
	}
	batch, err := domain.NewAllocationBatch(key, payor.Fund, rows)
	if err != nil {
		return nil, fmt.Errorf("building batch %s: %w", key, err)
	}
	batch.PayorName = payor.Name
	return batch, nil
}

// Save persists the allocation and payment date of every row in the batch.
func (s *BatchStore) Save(ctx context.Context, batch *domain.AllocationBatch) error {
	for _, row := range batch.Rows() {
		if err := s.assessments.UpdateAllocation(ctx, row); err != nil {
			return fmt.Errorf("saving batch %s: %w", batch.Key, err)
		}
	}
	return nil
}
