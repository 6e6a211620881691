// Package money provides the fixed-point primitives every schedule and ledger
// calculation routes through. Amounts live as integer minor units (cents);
// rate math runs in decimal and is rounded back to minor units with a single
// round-half-up policy so results are reproducible across runs and stores.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount in minor currency units.
type Money int64

var (
	one  = decimal.NewFromInt(1)
	half = decimal.New(5, -1)
)

// FromMinor wraps a raw minor-unit amount.
func FromMinor(v int64) Money { return Money(v) }

// FromMajorString parses a major-unit amount ("249000", "1034.56") into minor
// units, rounding half-up if the input carries sub-minor precision.
func FromMajorString(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return RoundMinor(d.Shift(2)), nil
}

func (m Money) Minor() int64 { return int64(m) }

func (m Money) IsPositive() bool { return m > 0 }

func (m Money) IsZero() bool { return m == 0 }

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Sub(o Money) Money { return m - o }

// Decimal returns the amount in minor units as a decimal for rate math.
func (m Money) Decimal() decimal.Decimal { return decimal.NewFromInt(int64(m)) }

// RoundMinor rounds a minor-unit decimal to the nearest whole minor unit,
// half-up. This is the only rounding step in the system.
func RoundMinor(d decimal.Decimal) Money {
	floor := d.Floor()
	if d.Sub(floor).Cmp(half) >= 0 {
		floor = floor.Add(one)
	}
	return Money(floor.IntPart())
}

// Format renders the amount with currency symbol and thousands grouping,
// omitting the fractional part when it is zero: $249,000 and $1,034.56.
func (m Money) Format() string {
	neg := m < 0
	v := int64(m)
	if neg {
		v = -v
	}
	units := v / 100
	cents := v % 100

	digits := fmt.Sprintf("%d", units)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	out := "$" + b.String()
	if cents != 0 {
		out = fmt.Sprintf("%s.%02d", out, cents)
	}
	if neg {
		out = "-" + out
	}
	return out
}

func (m Money) String() string { return m.Format() }
