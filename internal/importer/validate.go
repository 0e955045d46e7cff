package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Payors) == 0 {
		errs = append(errs, fmt.Errorf("payors: at least one payor is required"))
	}

	payorKeys := make(map[domain.BatchKey]bool)
	asmIDs := make(map[int64]bool)
	for i, p := range schema.Payors {
		prefix := fmt.Sprintf("payors[%d]", i)
		errs = append(errs, validatePayor(prefix, &p, payorKeys)...)
		for j, a := range p.Assessments {
			errs = append(errs, validateAssessment(fmt.Sprintf("%s.assessments[%d]", prefix, j), &a, asmIDs)...)
		}
	}

	return errs
}

func validatePayor(prefix string, p *PayorImport, seen map[domain.BatchKey]bool) []error {
	var errs []error

	if p.BID <= 0 {
		errs = append(errs, fmt.Errorf("%s.bid must be positive", prefix))
	}
	if p.TCID <= 0 {
		errs = append(errs, fmt.Errorf("%s.tcid must be positive", prefix))
	}
	key := domain.BatchKey{BID: p.BID, TCID: p.TCID}
	if seen[key] {
		errs = append(errs, fmt.Errorf("%s: duplicate payor %s", prefix, key))
	}
	seen[key] = true

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if _, err := optionalAmount(prefix+".fund", p.Fund); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func validateAssessment(prefix string, a *AssessmentImport, seen map[int64]bool) []error {
	var errs []error

	if a.ASMID <= 0 {
		errs = append(errs, fmt.Errorf("%s.asmid must be positive", prefix))
	} else if seen[a.ASMID] {
		errs = append(errs, fmt.Errorf("%s: duplicate asmid %d", prefix, a.ASMID))
	}
	seen[a.ASMID] = true

	if a.ARID < 0 {
		errs = append(errs, fmt.Errorf("%s.arid must not be negative", prefix))
	}
	if a.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if a.Date == "" {
		errs = append(errs, fmt.Errorf("%s.date is required", prefix))
	} else if _, err := time.Parse(dateLayout, a.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, a.Date))
	}
	if a.PaymentDate != nil {
		if _, err := time.Parse(dateLayout, *a.PaymentDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.payment_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *a.PaymentDate))
		}
	}

	var amount decimal.Decimal
	amountOK := false
	if a.Amount == "" {
		errs = append(errs, fmt.Errorf("%s.amount is required", prefix))
	} else if v, err := optionalAmount(prefix+".amount", a.Amount); err != nil {
		errs = append(errs, err)
	} else {
		amount, amountOK = v, true
	}

	paid, err := optionalAmount(prefix+".amount_paid", a.AmountPaid)
	if err != nil {
		errs = append(errs, err)
	} else if amountOK && paid.GreaterThan(amount) {
		errs = append(errs, fmt.Errorf("%s.amount_paid %s exceeds amount %s", prefix,
			paid.StringFixed(domain.CentPlaces), amount.StringFixed(domain.CentPlaces)))
	}

	if _, err := optionalAmount(prefix+".allocate", a.Allocate); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// optionalAmount parses a non-negative money field; empty means zero.
func optionalAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := domain.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative, got %s", field, v.StringFixed(domain.CentPlaces))
	}
	return v, nil
}
