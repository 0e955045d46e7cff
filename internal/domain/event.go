package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationEvent is the audit record written for every persisted recompute.
type AllocationEvent struct {
	ID        string
	Key       BatchKey
	RowID     int64
	Proposed  decimal.Decimal
	Previous  decimal.Decimal
	Applied   decimal.Decimal
	Clamp     ClampKind
	CreatedAt time.Time
}
