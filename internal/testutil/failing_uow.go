package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/fundalloc/internal/db"
)

// FaultyUoW is a UnitOfWork that fails the Nth write inside each
// transaction, so tests can check that a multi-write use case rolls back.
//
// Writes (ExecContext) are counted from 1 per transaction; reads pass
// through. Execs holds the number of writes attempted by the last transaction.
type FaultyUoW struct {
	DB         *sql.DB
	FailOnExec int32
	Err        error

	Execs atomic.Int32
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &faultyTx{DBTX: tx, failOn: u.FailOnExec, err: u.Err}
	fnErr := fn(ctx, wrapped)
	u.Execs.Store(wrapped.count.Load())
	if fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if n := f.count.Add(1); n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
