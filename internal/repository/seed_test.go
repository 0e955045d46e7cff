package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/stretchr/testify/require"
)

// seedBatch stores a payor and its assessments and returns the batch key.
func seedBatch(t *testing.T, conn db.DBTX, payor *domain.Payor, rows ...*domain.AssessmentRow) domain.BatchKey {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, NewSQLitePayorRepo(conn).Create(ctx, payor))
	assessments := NewSQLiteAssessmentRepo(conn)
	for _, r := range rows {
		require.NoError(t, assessments.Create(ctx, r))
	}
	return payor.Key()
}
