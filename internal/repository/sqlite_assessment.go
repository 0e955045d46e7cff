package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/domain"
)

// SQLiteAssessmentRepo implements AssessmentRepo using a SQLite database.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssessmentRepo creates a new SQLiteAssessmentRepo.
func NewSQLiteAssessmentRepo(conn db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: conn}
}

const assessmentColumns = `asmid, bid, tcid, arid, name, assessed_on, amount, amount_paid, allocate, payment_date, updated_at`

func (r *SQLiteAssessmentRepo) Create(ctx context.Context, a *domain.AssessmentRow) error {
	a.UpdatedAt = nowUTC()
	query := `INSERT INTO assessments (` + assessmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.BID,
		a.TCID,
		a.ARID,
		a.Assessment,
		a.Date.Format(dateLayout),
		moneyToText(a.Amount),
		moneyToText(a.AmountPaid),
		moneyToText(a.Allocate),
		nullableTimeToString(a.PaymentDate, dateLayout),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting assessment %d: %w", a.ID, err)
	}
	a.AmountOwed = domain.OwedAmount(a.Amount, a.AmountPaid)
	return nil
}

func (r *SQLiteAssessmentRepo) GetByID(ctx context.Context, id int64) (*domain.AssessmentRow, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE asmid = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	a, err := scanAssessment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assessment %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

// ListByPayor returns a payor's assessments oldest first. With unpaidOnly,
// fully paid assessments are left out.
func (r *SQLiteAssessmentRepo) ListByPayor(ctx context.Context, key domain.BatchKey, unpaidOnly bool) ([]*domain.AssessmentRow, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments
		WHERE bid = ? AND tcid = ? ORDER BY assessed_on, asmid`
	rows, err := r.db.QueryContext(ctx, query, key.BID, key.TCID)
	if err != nil {
		return nil, fmt.Errorf("listing assessments for %s: %w", key, err)
	}
	defer rows.Close()

	var out []*domain.AssessmentRow
	for rows.Next() {
		a, err := scanAssessment(rows.Scan)
		if err != nil {
			return nil, err
		}
		if unpaidOnly && !a.IsUnpaid() {
			continue
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAllocation persists the editable columns of an assessment: the
// allocation and the payment date.
func (r *SQLiteAssessmentRepo) UpdateAllocation(ctx context.Context, a *domain.AssessmentRow) error {
	a.UpdatedAt = nowUTC()
	query := `UPDATE assessments SET allocate = ?, payment_date = ?, updated_at = ? WHERE asmid = ?`
	res, err := r.db.ExecContext(ctx, query,
		moneyToText(a.Allocate),
		nullableTimeToString(a.PaymentDate, dateLayout),
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating allocation of assessment %d: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assessment %d: %w", a.ID, ErrNotFound)
	}
	return nil
}

func scanAssessment(scan func(dest ...any) error) (*domain.AssessmentRow, error) {
	var a domain.AssessmentRow
	var assessedOn, amountStr, paidStr, allocStr, updatedStr string
	var paymentDate sql.NullString

	err := scan(&a.ID, &a.BID, &a.TCID, &a.ARID, &a.Assessment, &assessedOn,
		&amountStr, &paidStr, &allocStr, &paymentDate, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}

	if a.Date, err = time.Parse(dateLayout, assessedOn); err != nil {
		return nil, fmt.Errorf("parsing assessed_on %q: %w", assessedOn, err)
	}
	if a.Amount, err = textToMoney(amountStr, "amount"); err != nil {
		return nil, err
	}
	if a.AmountPaid, err = textToMoney(paidStr, "amount_paid"); err != nil {
		return nil, err
	}
	if a.Allocate, err = textToMoney(allocStr, "allocate"); err != nil {
		return nil, err
	}
	a.AmountOwed = domain.OwedAmount(a.Amount, a.AmountPaid)
	a.PaymentDate = parseNullableTime(paymentDate, dateLayout)
	a.UpdatedAt = parseTimestamp(updatedStr)
	return &a, nil
}
