package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/repository"
	"github.com/alexanderramin/fundalloc/internal/testutil"
	"github.com/stretchr/testify/require"
)

// allocFixture is a payor with a fund of 100 and two unpaid assessments
// owing 50 and 80.
type allocFixture struct {
	db     *sql.DB
	key    domain.BatchKey
	rent   *domain.AssessmentRow
	water  *domain.AssessmentRow
	events repository.AllocationEventRepo
	rows   repository.AssessmentRepo
}

func seedAllocFixture(t *testing.T, database *sql.DB) allocFixture {
	t.Helper()
	ctx := context.Background()
	payor := testutil.NewTestPayor(1, 7, "Aaron Read", testutil.WithFund("100"))
	require.NoError(t, repository.NewSQLitePayorRepo(database).Create(ctx, payor))

	key := payor.Key()
	rent := testutil.NewTestAssessment(key, "Rent", "50")
	water := testutil.NewTestAssessment(key, "Water", "80")
	assessments := repository.NewSQLiteAssessmentRepo(database)
	require.NoError(t, assessments.Create(ctx, rent))
	require.NoError(t, assessments.Create(ctx, water))

	return allocFixture{
		db:     database,
		key:    key,
		rent:   rent,
		water:  water,
		events: repository.NewSQLiteAllocationEventRepo(database),
		rows:   assessments,
	}
}

func newAllocationServiceFor(database *sql.DB, uow db.UnitOfWork, observers ...UseCaseObserver) AllocationService {
	return NewAllocationService(
		repository.NewSQLiteBatchStore(database),
		repository.NewSQLiteAllocationEventRepo(database),
		uow,
		observers...,
	)
}

func setupAllocation(t *testing.T) (allocFixture, AllocationService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	fx := seedAllocFixture(t, database)
	return fx, newAllocationServiceFor(database, testutil.NewTestUoW(database))
}

func (fx allocFixture) allocateOf(t *testing.T, row *domain.AssessmentRow) string {
	t.Helper()
	got, err := fx.rows.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	return got.Allocate.StringFixed(2)
}

// recordingObserver keeps every use-case event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
