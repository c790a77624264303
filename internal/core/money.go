// Package core holds the domain model of the tracker: money, calendar
// dates, the ledger entities and their validation rules.
//
// All monetary amounts are fixed-point int64 minor units (hundredths).
// Arithmetic never goes through floats; decimal strings are converted at
// the edges with half-up rounding.
package core

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units.
type Money struct {
	Units int64 `json:"units"`
}

// NewMoney builds a Money from minor units.
func NewMoney(units int64) Money {
	return Money{Units: units}
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place. Both dot and comma separators are accepted.
// The result must be strictly positive.
//
// Examples:
//
//	ParseAmount("20000")  -> 2000000 units
//	ParseAmount("12,34")  -> 1234 units
//	ParseAmount("12.345") -> 1235 units
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(normalizeDecimal(s))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.Sign() <= 0 {
		return Money{}, ErrInvalidAmount
	}
	units := d.Shift(2).Round(0).IntPart()
	if units <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Units: units}, nil
}

// MoneyFromFloat converts a float amount (as produced by the smart-entry
// adapter's JSON numbers) to Money, rounding half-up to minor units.
func MoneyFromFloat(v float64) (Money, error) {
	if v <= 0 {
		return Money{}, ErrInvalidAmount
	}
	units := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	if units <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Units: units}, nil
}

func normalizeDecimal(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t':
			continue
		case ',':
			out = append(out, '.')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func (m Money) Add(o Money) Money  { return Money{Units: m.Units + o.Units} }
func (m Money) Sub(o Money) Money  { return Money{Units: m.Units - o.Units} }
func (m Money) Neg() Money         { return Money{Units: -m.Units} }
func (m Money) IsZero() bool       { return m.Units == 0 }
func (m Money) IsPositive() bool   { return m.Units > 0 }
func (m Money) Equal(o Money) bool { return m.Units == o.Units }

// Decimal returns the display value (major units) as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Units, -2)
}

// String formats the amount with two decimal places. Display only; all
// computation stays in minor units.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) Validate() error {
	if m.Units <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
