package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Payor is a transactant holding a fund of received but unallocated money
// within a business.
type Payor struct {
	BID       int64
	TCID      int64
	Name      string
	Fund      decimal.Decimal
	UpdatedAt time.Time
}

// Key returns the batch key for this payor's allocations.
func (p *Payor) Key() BatchKey {
	return BatchKey{BID: p.BID, TCID: p.TCID}
}

// Validate checks identifiers, name and fund.
func (p *Payor) Validate() error {
	if p.BID <= 0 || p.TCID <= 0 {
		return fmt.Errorf("payor ids must be positive (bid=%d, tcid=%d)", p.BID, p.TCID)
	}
	if p.Name == "" {
		return fmt.Errorf("payor name is required")
	}
	if p.Fund.IsNegative() {
		return fmt.Errorf("payor fund %s must not be negative", p.Fund.StringFixed(CentPlaces))
	}
	return nil
}
