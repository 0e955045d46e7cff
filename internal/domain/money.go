package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CentPlaces is the precision all stored monetary values are rounded to.
const CentPlaces = 2

// RoundCents rounds d half-up to whole cents.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// ParseAmount parses an operator-entered monetary value. A leading sign, a
// dollar sign and thousands separators are accepted ("-$1,250.5"); exponent
// notation such as "1e2" is not.
// The result is rounded to cents.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], strings.TrimSpace(s[1:])
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") || strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNonNumericInput, raw)
	}
	d, err := decimal.NewFromString(sign + s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNonNumericInput, raw)
	}
	return RoundCents(d), nil
}

// MustAmount is ParseAmount for literals known to be valid. It panics otherwise.
func MustAmount(raw string) decimal.Decimal {
	d, err := ParseAmount(raw)
	if err != nil {
		panic(err)
	}
	return d
}
