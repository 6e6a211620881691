package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Rate is an annual interest rate in percent, held in decimal so the monthly
// conversion never passes through binary floating point.
type Rate struct {
	annualPercent decimal.Decimal
}

// NewRate builds a Rate from an annual percentage expressed as a decimal.
func NewRate(annualPercent decimal.Decimal) Rate {
	return Rate{annualPercent: annualPercent}
}

// ParseRate parses an annual percentage ("3.5", "0") into a Rate.
func ParseRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Rate{}, fmt.Errorf("parse rate %q: %w", s, err)
	}
	return Rate{annualPercent: d}, nil
}

// AnnualPercent returns the rate as entered, e.g. 3.5 for 3.5% APR.
func (r Rate) AnnualPercent() decimal.Decimal { return r.annualPercent }

// Monthly converts the annual percentage to a periodic rate:
// annualPercent / 100 / 12, kept at full decimal precision.
func (r Rate) Monthly() decimal.Decimal {
	return r.annualPercent.Div(hundred).Div(twelve)
}

func (r Rate) IsNegative() bool { return r.annualPercent.IsNegative() }

func (r Rate) IsZero() bool { return r.annualPercent.IsZero() }

func (r Rate) String() string { return r.annualPercent.String() + "%" }
