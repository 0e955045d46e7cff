package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Columns added by ALTER TABLE already exist on re-run.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Money columns hold canonical decimal strings ("1250.5"); dates are
// "2006-01-02" and timestamps RFC3339 UTC.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS payors (
		bid        INTEGER NOT NULL CHECK(bid > 0),
		tcid       INTEGER NOT NULL CHECK(tcid > 0),
		name       TEXT NOT NULL,
		fund       TEXT NOT NULL DEFAULT '0',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (bid, tcid)
	)`,

	`CREATE TABLE IF NOT EXISTS assessments (
		asmid       INTEGER PRIMARY KEY CHECK(asmid > 0),
		bid         INTEGER NOT NULL,
		tcid        INTEGER NOT NULL,
		arid        INTEGER NOT NULL DEFAULT 0,
		name        TEXT NOT NULL,
		assessed_on TEXT NOT NULL,
		amount      TEXT NOT NULL,
		amount_paid TEXT NOT NULL DEFAULT '0',
		allocate    TEXT NOT NULL DEFAULT '0',
		updated_at  TEXT NOT NULL,
		FOREIGN KEY (bid, tcid) REFERENCES payors(bid, tcid) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_payor ON assessments(bid, tcid)`,
	`ALTER TABLE assessments ADD COLUMN payment_date TEXT`,

	`CREATE TABLE IF NOT EXISTS allocation_events (
		id         TEXT PRIMARY KEY,
		bid        INTEGER NOT NULL,
		tcid       INTEGER NOT NULL,
		asmid      INTEGER NOT NULL REFERENCES assessments(asmid) ON DELETE CASCADE,
		proposed   TEXT NOT NULL,
		previous   TEXT NOT NULL,
		applied    TEXT NOT NULL,
		clamp      TEXT NOT NULL
		           CHECK(clamp IN ('none','non_positive','funds','owed')),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_allocation_events_batch ON allocation_events(bid, tcid, created_at)`,
}
