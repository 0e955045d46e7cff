package allocator

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCents(rng *rand.Rand, maxCents int64) decimal.Decimal {
	return decimal.New(rng.Int63n(maxCents+1), -domain.CentPlaces)
}

// TestRecompute_Invariants_HoldWhileFundsCoverOtherRows property-tests the
// allocation invariant over random edit sequences that start from a
// consistent batch: every row stays within [0, owed] and the batch never
// allocates more than the fund.
func TestRecompute_Invariants_HoldWhileFundsCoverOtherRows(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(8) + 1
		rows := make([]*domain.AssessmentRow, n)
		for i := range rows {
			rows[i] = &domain.AssessmentRow{
				ID:         int64(i + 1),
				AmountOwed: randomCents(rng, 50_000),
			}
		}
		fund := randomCents(rng, 150_000)
		b, err := domain.NewAllocationBatch(domain.BatchKey{BID: 1, TCID: int64(trial + 1)}, fund, rows)
		require.NoError(t, err)

		for edit := 0; edit < 30; edit++ {
			id := int64(rng.Intn(n) + 1)
			proposed := randomCents(rng, 80_000).Sub(decimal.NewFromInt(100))

			res, err := Recompute(b, id, proposed)
			require.NoError(t, err)
			require.False(t, res.FundsRemaining.IsNegative(),
				"trial %d edit %d: a consistent batch never leaves negative remaining funds", trial, edit)

			for _, r := range b.Rows() {
				assert.False(t, r.Allocate.IsNegative(),
					"trial %d edit %d: row %d allocate %s must be >= 0", trial, edit, r.ID, r.Allocate)
				assert.True(t, r.Allocate.LessThanOrEqual(r.AmountOwed),
					"trial %d edit %d: row %d allocate %s must be <= owed %s", trial, edit, r.ID, r.Allocate, r.AmountOwed)
			}
			total := ComputeTotals(b).Allocate
			assert.True(t, total.LessThanOrEqual(fund),
				"trial %d edit %d: total %s must not exceed fund %s", trial, edit, total, fund)
			assert.Empty(t, Check(b))
		}
	}
}

// TestRecompute_Property_OnlyEditedRowChanges checks that a recompute never
// writes to any row other than the edited one.
func TestRecompute_Property_OnlyEditedRowChanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(6) + 2
		rows := make([]*domain.AssessmentRow, n)
		for i := range rows {
			rows[i] = &domain.AssessmentRow{
				ID:         int64(i + 10),
				AmountOwed: randomCents(rng, 20_000),
				Allocate:   randomCents(rng, 20_000),
			}
		}
		b, err := domain.NewAllocationBatch(domain.BatchKey{BID: 2, TCID: 2}, randomCents(rng, 60_000), rows)
		require.NoError(t, err)

		before := make(map[int64]decimal.Decimal, n)
		for _, r := range b.Rows() {
			before[r.ID] = r.Allocate
		}

		edited := int64(rng.Intn(n) + 10)
		_, err = Recompute(b, edited, randomCents(rng, 30_000))
		require.NoError(t, err)

		for _, r := range b.Rows() {
			if r.ID == edited {
				continue
			}
			assert.True(t, before[r.ID].Equal(r.Allocate), "trial %d: row %d changed", trial, r.ID)
		}
	}
}

// TestRecompute_Property_Idempotent re-applies the same proposal and
// expects the same stored allocation.
func TestRecompute_Property_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(5) + 1
		rows := make([]*domain.AssessmentRow, n)
		for i := range rows {
			rows[i] = &domain.AssessmentRow{ID: int64(i + 1), AmountOwed: randomCents(rng, 10_000)}
		}
		b, err := domain.NewAllocationBatch(domain.BatchKey{BID: 3, TCID: 3}, randomCents(rng, 30_000), rows)
		require.NoError(t, err)

		id := int64(rng.Intn(n) + 1)
		proposed := randomCents(rng, 20_000).Sub(decimal.NewFromInt(20))
		first, err := Recompute(b, id, proposed)
		require.NoError(t, err)
		second, err := Recompute(b, id, proposed)
		require.NoError(t, err)
		assert.True(t, first.Applied.Equal(second.Applied), "trial %d", trial)
	}
}
