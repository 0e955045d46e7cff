package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

// SQLitePayorRepo implements PayorRepo using a SQLite database.
type SQLitePayorRepo struct {
	db db.DBTX
}

// NewSQLitePayorRepo creates a new SQLitePayorRepo.
func NewSQLitePayorRepo(conn db.DBTX) *SQLitePayorRepo {
	return &SQLitePayorRepo{db: conn}
}

func (r *SQLitePayorRepo) Create(ctx context.Context, p *domain.Payor) error {
	p.UpdatedAt = nowUTC()
	query := `INSERT INTO payors (bid, tcid, name, fund, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.BID,
		p.TCID,
		p.Name,
		moneyToText(p.Fund),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting payor: %w", err)
	}
	return nil
}

func (r *SQLitePayorRepo) Get(ctx context.Context, key domain.BatchKey) (*domain.Payor, error) {
	query := `SELECT bid, tcid, name, fund, updated_at FROM payors WHERE bid = ? AND tcid = ?`
	row := r.db.QueryRowContext(ctx, query, key.BID, key.TCID)

	p, err := scanPayor(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("payor %s: %w", key, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// List returns the payors of business bid, or of every business when bid is 0.
func (r *SQLitePayorRepo) List(ctx context.Context, bid int64) ([]*domain.Payor, error) {
	query := `SELECT bid, tcid, name, fund, updated_at FROM payors
		WHERE (? = 0 OR bid = ?) ORDER BY bid, name, tcid`
	rows, err := r.db.QueryContext(ctx, query, bid, bid)
	if err != nil {
		return nil, fmt.Errorf("listing payors: %w", err)
	}
	defer rows.Close()

	var payors []*domain.Payor
	for rows.Next() {
		p, err := scanPayor(rows.Scan)
		if err != nil {
			return nil, err
		}
		payors = append(payors, p)
	}
	return payors, rows.Err()
}

// ListSummaries returns payors with the totals of their unpaid assessments.
// Money is summed in Go; SQLite would sum the TEXT columns as floats.
func (r *SQLitePayorRepo) ListSummaries(ctx context.Context, bid int64) ([]PayorSummary, error) {
	payors, err := r.List(ctx, bid)
	if err != nil {
		return nil, err
	}

	query := `SELECT bid, tcid, amount, amount_paid, allocate FROM assessments WHERE (? = 0 OR bid = ?)`
	rows, err := r.db.QueryContext(ctx, query, bid, bid)
	if err != nil {
		return nil, fmt.Errorf("listing assessment totals: %w", err)
	}
	defer rows.Close()

	type totals struct {
		count     int
		owed      decimal.Decimal
		allocated decimal.Decimal
	}
	byKey := make(map[domain.BatchKey]*totals)
	for rows.Next() {
		var key domain.BatchKey
		var amountStr, paidStr, allocStr string
		if err := rows.Scan(&key.BID, &key.TCID, &amountStr, &paidStr, &allocStr); err != nil {
			return nil, fmt.Errorf("scanning assessment totals: %w", err)
		}
		amount, err := textToMoney(amountStr, "amount")
		if err != nil {
			return nil, err
		}
		paid, err := textToMoney(paidStr, "amount_paid")
		if err != nil {
			return nil, err
		}
		alloc, err := textToMoney(allocStr, "allocate")
		if err != nil {
			return nil, err
		}
		owed := domain.OwedAmount(amount, paid)
		if !owed.IsPositive() {
			continue
		}
		t := byKey[key]
		if t == nil {
			t = &totals{}
			byKey[key] = t
		}
		t.count++
		t.owed = t.owed.Add(owed)
		t.allocated = t.allocated.Add(alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]PayorSummary, 0, len(payors))
	for _, p := range payors {
		s := PayorSummary{Payor: *p}
		if t := byKey[p.Key()]; t != nil {
			s.UnpaidCount = t.count
			s.Owed = t.owed
			s.Allocated = t.allocated
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *SQLitePayorRepo) UpdateFund(ctx context.Context, key domain.BatchKey, fund decimal.Decimal) error {
	query := `UPDATE payors SET fund = ?, updated_at = ? WHERE bid = ? AND tcid = ?`
	res, err := r.db.ExecContext(ctx, query, moneyToText(fund), nowUTC().Format(time.RFC3339), key.BID, key.TCID)
	if err != nil {
		return fmt.Errorf("updating payor fund: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("payor %s: %w", key, ErrNotFound)
	}
	return nil
}

func scanPayor(scan func(dest ...any) error) (*domain.Payor, error) {
	var p domain.Payor
	var fundStr, updatedStr string
	if err := scan(&p.BID, &p.TCID, &p.Name, &fundStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning payor: %w", err)
	}
	fund, err := textToMoney(fundStr, "fund")
	if err != nil {
		return nil, err
	}
	p.Fund = fund
	p.UpdatedAt = parseTimestamp(updatedStr)
	return &p, nil
}
