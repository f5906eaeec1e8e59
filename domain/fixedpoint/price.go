// Package fixedpoint provides the exact price type used across the
// matching engine. Prices carry four decimal places in an int64 raw
// value, so Price is comparable and usable as a map key.
package fixedpoint

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of raw units per whole price unit.
const Scale = 10_000

// ErrOverflow is returned when an arithmetic result does not fit the
// raw int64 representation.
var ErrOverflow = errors.New("fixedpoint: price overflow")

// Price is an exact fixed-point price with four decimal places.
// The zero value doubles as the "no price" sentinel used by
// market-data queries on an empty book side.
type Price struct {
	raw int64
}

// FromRaw builds a Price from its raw scaled value.
func FromRaw(raw int64) Price { return Price{raw: raw} }

// FromFloat converts a float price. Use Parse when exactness matters.
func FromFloat(f float64) Price { return Price{raw: int64(f * Scale)} }

// Parse converts a decimal string like "101.25" into a Price.
// Digits beyond the fourth decimal place are truncated.
func Parse(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("fixedpoint: parse %q: %w", s, err)
	}
	raw := d.Shift(4).Truncate(0)
	if !raw.BigInt().IsInt64() {
		return Price{}, ErrOverflow
	}
	return Price{raw: raw.IntPart()}, nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Price {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Raw returns the scaled int64 representation.
func (p Price) Raw() int64 { return p.raw }

// Float64 converts for display or external use only.
func (p Price) Float64() float64 { return float64(p.raw) / Scale }

// String formats with all four decimal places, e.g. "101.2500".
func (p Price) String() string {
	return decimal.New(p.raw, -4).StringFixed(4)
}

// Add returns p+o, or ErrOverflow.
func (p Price) Add(o Price) (Price, error) {
	sum := p.raw + o.raw
	if (p.raw > 0 && o.raw > 0 && sum < 0) ||
		(p.raw < 0 && o.raw < 0 && sum > 0) {
		return Price{}, ErrOverflow
	}
	return Price{raw: sum}, nil
}

// Sub returns p-o, or ErrOverflow.
func (p Price) Sub(o Price) (Price, error) {
	diff := p.raw - o.raw
	if (p.raw >= 0 && o.raw < 0 && diff < 0) ||
		(p.raw < 0 && o.raw > 0 && diff > 0) {
		return Price{}, ErrOverflow
	}
	return Price{raw: diff}, nil
}

// MulInt scales p by an integer factor, or returns ErrOverflow.
func (p Price) MulInt(n int64) (Price, error) {
	if p.raw == 0 || n == 0 {
		return Price{}, nil
	}
	if p.raw == math.MinInt64 && n == -1 {
		return Price{}, ErrOverflow
	}
	r := p.raw * n
	if r/n != p.raw {
		return Price{}, ErrOverflow
	}
	return Price{raw: r}, nil
}

// DivInt divides p by an integer, truncating toward zero.
func (p Price) DivInt(n int64) Price { return Price{raw: p.raw / n} }

// Cmp returns -1, 0 or 1 comparing p against o.
func (p Price) Cmp(o Price) int {
	switch {
	case p.raw < o.raw:
		return -1
	case p.raw > o.raw:
		return 1
	default:
		return 0
	}
}

func (p Price) Equal(o Price) bool              { return p.raw == o.raw }
func (p Price) LessThan(o Price) bool           { return p.raw < o.raw }
func (p Price) LessThanOrEqual(o Price) bool    { return p.raw <= o.raw }
func (p Price) GreaterThan(o Price) bool        { return p.raw > o.raw }
func (p Price) GreaterThanOrEqual(o Price) bool { return p.raw >= o.raw }

// IsPositive reports whether p is a valid tradable price.
func (p Price) IsPositive() bool { return p.raw > 0 }

// IsZero reports whether p is the "no price" sentinel.
func (p Price) IsZero() bool { return p.raw == 0 }

// MarshalJSON encodes the price as its decimal string.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted decimal string or a bare number.
func (p *Price) UnmarshalJSON(b []byte) error {
	v, err := Parse(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
