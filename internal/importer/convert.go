package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/domain"
)

// Generated holds the domain values produced from an import schema.
type Generated struct {
	Payors      []*domain.Payor
	Assessments []*domain.AssessmentRow
}

// Convert turns a validated ImportSchema into domain payors and assessments.
// Callers should run ValidateImportSchema first; Convert only reports the
// first problem it meets.
func Convert(schema *ImportSchema) (*Generated, error) {
	out := &Generated{}

	for _, p := range schema.Payors {
		fund, err := optionalAmount("fund", p.Fund)
		if err != nil {
			return nil, fmt.Errorf("payor %d/%d: %w", p.BID, p.TCID, err)
		}
		payor := &domain.Payor{
			BID:  p.BID,
			TCID: p.TCID,
			Name: p.Name,
			Fund: fund,
		}
		out.Payors = append(out.Payors, payor)

		for _, a := range p.Assessments {
			row, err := convertAssessment(payor.Key(), a)
			if err != nil {
				return nil, fmt.Errorf("assessment %d: %w", a.ASMID, err)
			}
			out.Assessments = append(out.Assessments, row)
		}
	}
	return out, nil
}

func convertAssessment(key domain.BatchKey, a AssessmentImport) (*domain.AssessmentRow, error) {
	assessedOn, err := time.Parse(dateLayout, a.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	amount, err := optionalAmount("amount", a.Amount)
	if err != nil {
		return nil, err
	}
	paid, err := optionalAmount("amount_paid", a.AmountPaid)
	if err != nil {
		return nil, err
	}
	allocate, err := optionalAmount("allocate", a.Allocate)
	if err != nil {
		return nil, err
	}

	arid := a.ARID
	if arid == 0 {
		arid = 1
	}
	row := &domain.AssessmentRow{
		ID:          a.ASMID,
		BID:         key.BID,
		TCID:        key.TCID,
		ARID:        arid,
		Assessment:  a.Name,
		Date:        assessedOn,
		Amount:      amount,
		AmountPaid:  paid,
		AmountOwed:  domain.OwedAmount(amount, paid),
		Allocate:    allocate,
		PaymentDate: parseOptionalDate(a.PaymentDate),
	}
	return row, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
