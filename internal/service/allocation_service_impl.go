package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/allocator"
	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type allocationService struct {
	batches  *repository.BatchStore
	events   repository.AllocationEventRepo
	uow      db.UnitOfWork
	locks    *batchLocker
	observer UseCaseObserver
}

func NewAllocationService(
	batches *repository.BatchStore,
	events repository.AllocationEventRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AllocationService {
	return &allocationService{
		batches:  batches,
		events:   events,
		uow:      uow,
		locks:    newBatchLocker(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// batchMutation changes a loaded batch in memory and reports the recomputes
// it performed. Each result is recorded as an allocation event.
type batchMutation func(batch *domain.AllocationBatch) ([]allocator.Result, error)

func (s *allocationService) Load(ctx context.Context, key domain.BatchKey) (*AllocationOutcome, error) {
	batch, err := s.batches.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading batch %s: %w", key, err)
	}
	return newOutcome(batch, nil), nil
}

func (s *allocationService) Allocate(ctx context.Context, key domain.BatchKey, rowID int64, raw string) (*AllocationOutcome, error) {
	return s.ApplyChanges(ctx, key, []RawChange{{RowID: rowID, Amount: raw}})
}

func (s *allocationService) ApplyChanges(ctx context.Context, key domain.BatchKey, raw []RawChange) (outcome *AllocationOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"batch":   key.String(),
		"changes": len(raw),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "allocate",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	changes, err := parseChanges(raw)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return s.Load(ctx, key)
	}

	outcome, err = s.mutate(ctx, key, func(batch *domain.AllocationBatch) ([]allocator.Result, error) {
		return allocator.ApplyChanges(batch, changes)
	})
	if err != nil {
		return nil, err
	}
	fields["unallocated"] = outcome.Unallocated.StringFixed(domain.CentPlaces)
	if res, ok := outcome.Result(); ok {
		fields["clamp"] = string(res.Clamp)
	}
	return outcome, nil
}

func (s *allocationService) SetPaymentDate(ctx context.Context, key domain.BatchKey, rowID int64, date *time.Time) (outcome *AllocationOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"batch": key.String(),
		"row":   rowID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "set-payment-date",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	return s.mutate(ctx, key, func(batch *domain.AllocationBatch) ([]allocator.Result, error) {
		return nil, allocator.SetPaymentDate(batch, rowID, date)
	})
}

func (s *allocationService) Reset(ctx context.Context, key domain.BatchKey) (outcome *AllocationOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"batch": key.String()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reset",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	outcome, err = s.mutate(ctx, key, func(batch *domain.AllocationBatch) ([]allocator.Result, error) {
		rows := batch.Rows()
		previous := make([]decimal.Decimal, len(rows))
		for i, r := range rows {
			previous[i] = r.Allocate
		}
		allocator.Reset(batch)

		var results []allocator.Result
		for i, r := range rows {
			if previous[i].IsZero() {
				continue
			}
			results = append(results, allocator.Result{
				RowID:    r.ID,
				Proposed: decimal.Zero,
				Previous: previous[i],
				Applied:  r.Allocate,
				Clamp:    domain.ClampNone,
			})
		}
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	fields["cleared"] = len(outcome.Results)
	return outcome, nil
}

func (s *allocationService) History(ctx context.Context, key domain.BatchKey, limit int) ([]*domain.AllocationEvent, error) {
	return s.events.ListByBatch(ctx, key, limit)
}

// mutate loads the batch inside one transaction, applies fn, saves every
// row and records an event per result. Calls for the same key run one at a
// time.
func (s *allocationService) mutate(ctx context.Context, key domain.BatchKey, fn batchMutation) (*AllocationOutcome, error) {
	var outcome *AllocationOutcome
	err := s.locks.WithLock(ctx, key, func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txBatches := repository.NewSQLiteBatchStore(tx)
			txEvents := repository.NewSQLiteAllocationEventRepo(tx)

			batch, err := txBatches.Load(ctx, key)
			if err != nil {
				return fmt.Errorf("loading batch %s: %w", key, err)
			}
			results, err := fn(batch)
			if err != nil {
				return err
			}
			if err := txBatches.Save(ctx, batch); err != nil {
				return err
			}

			now := time.Now().UTC()
			for _, res := range results {
				event := &domain.AllocationEvent{
					ID:        uuid.New().String(),
					Key:       key,
					RowID:     res.RowID,
					Proposed:  res.Proposed,
					Previous:  res.Previous,
					Applied:   res.Applied,
					Clamp:     res.Clamp,
					CreatedAt: now,
				}
				if err := txEvents.Create(ctx, event); err != nil {
					return err
				}
			}

			outcome = newOutcome(batch, results)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func newOutcome(batch *domain.AllocationBatch, results []allocator.Result) *AllocationOutcome {
	return &AllocationOutcome{
		Batch:       batch,
		Results:     results,
		Unallocated: allocator.Unallocated(batch),
		Violations:  allocator.Check(batch),
	}
}

func parseChanges(raw []RawChange) ([]allocator.Change, error) {
	changes := make([]allocator.Change, 0, len(raw))
	for _, rc := range raw {
		amount, err := domain.ParseAmount(rc.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rc.RowID, err)
		}
		changes = append(changes, allocator.Change{RowID: rc.RowID, Proposed: amount})
	}
	return changes, nil
}
