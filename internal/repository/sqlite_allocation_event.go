package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/domain"
)

// eventTimeLayout is fixed-width so created_at sorts lexically.
const eventTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteAllocationEventRepo implements AllocationEventRepo using a SQLite database.
type SQLiteAllocationEventRepo struct {
	db db.DBTX
}

// NewSQLiteAllocationEventRepo creates a new SQLiteAllocationEventRepo.
func NewSQLiteAllocationEventRepo(conn db.DBTX) *SQLiteAllocationEventRepo {
	return &SQLiteAllocationEventRepo{db: conn}
}

func (r *SQLiteAllocationEventRepo) Create(ctx context.Context, e *domain.AllocationEvent) error {
	query := `INSERT INTO allocation_events (id, bid, tcid, asmid, proposed, previous, applied, clamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Key.BID,
		e.Key.TCID,
		e.RowID,
		moneyToText(e.Proposed),
		moneyToText(e.Previous),
		moneyToText(e.Applied),
		string(e.Clamp),
		e.CreatedAt.UTC().Format(eventTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting allocation event: %w", err)
	}
	return nil
}

// ListByBatch returns the most recent events of a batch, newest first.
// A limit of zero or less returns every event.
func (r *SQLiteAllocationEventRepo) ListByBatch(ctx context.Context, key domain.BatchKey, limit int) ([]*domain.AllocationEvent, error) {
	query := `SELECT id, bid, tcid, asmid, proposed, previous, applied, clamp, created_at
		FROM allocation_events WHERE bid = ? AND tcid = ?
		ORDER BY created_at DESC, rowid DESC`
	args := []any{key.BID, key.TCID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing allocation events: %w", err)
	}
	defer rows.Close()

	var events []*domain.AllocationEvent
	for rows.Next() {
		var e domain.AllocationEvent
		var proposed, previous, applied, clamp, createdAt string
		if err := rows.Scan(&e.ID, &e.Key.BID, &e.Key.TCID, &e.RowID,
			&proposed, &previous, &applied, &clamp, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning allocation event: %w", err)
		}
		if e.Proposed, err = textToMoney(proposed, "proposed"); err != nil {
			return nil, err
		}
		if e.Previous, err = textToMoney(previous, "previous"); err != nil {
			return nil, err
		}
		if e.Applied, err = textToMoney(applied, "applied"); err != nil {
			return nil, err
		}
		e.Clamp = domain.ClampKind(clamp)
		if !domain.ValidClampKinds[e.Clamp] {
			return nil, fmt.Errorf("allocation event %s: unknown clamp %q", e.ID, clamp)
		}
		e.CreatedAt, _ = time.Parse(eventTimeLayout, createdAt)
		events = append(events, &e)
	}
	return events, rows.Err()
}
