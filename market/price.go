package market

import (
	"math"

	"github.com/river-walras/nexuscore/fixed"
)

// Raw sentinel values reserved by the Price wire representation.
const (
	// PriceRawUndef marks a price that was never set.
	PriceRawUndef int64 = math.MaxInt64
	// PriceRawError marks a price produced by a failed computation.
	PriceRawError int64 = math.MinInt64
)

// Price is a signed fixed-point price with explicit decimal precision.
// It is an immutable value type: every operation returns a new Price.
type Price struct {
	Raw       int64
	Precision uint8
}

// NewPrice creates a Price from a float, validating the precision and
// rounding half-to-even at that precision.
func NewPrice(value float64, precision uint8) (Price, error) {
	if err := fixed.CheckFixedPrecision(precision); err != nil {
		return Price{}, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Price{}, ErrPriceNotFinite
	}
	return Price{Raw: fixed.F64ToFixedI64(value, precision), Precision: precision}, nil
}

// PriceFromRaw creates a Price from a raw value, validating that the raw
// value matches the declared precision.
func PriceFromRaw(raw int64, precision uint8) (Price, error) {
	if err := fixed.CheckFixedPrecision(precision); err != nil {
		return Price{}, err
	}
	if err := fixed.CheckFixedRawI64(raw, precision); err != nil {
		return Price{}, err
	}
	return Price{Raw: raw, Precision: precision}, nil
}

// PriceFromStr creates a Price from an exact decimal string, inferring the
// precision from the fractional digits.
func PriceFromStr(value string) (Price, error) {
	raw, precision, err := parseDecimal(value)
	if err != nil {
		return Price{}, err
	}
	return Price{Raw: raw, Precision: precision}, nil
}

// CorrectPriceRaw repairs a raw price written by a legacy float-truncating
// encoder, rounding half away from zero to the nearest valid multiple.
func CorrectPriceRaw(raw int64, precision uint8) int64 {
	return fixed.CorrectRawI64(raw, precision)
}

// IsUndefined reports whether the price carries the undefined sentinel.
func (p Price) IsUndefined() bool {
	return p.Raw == PriceRawUndef
}

// IsError reports whether the price carries the error sentinel.
func (p Price) IsError() bool {
	return p.Raw == PriceRawError
}

// IsValid reports whether the price is neither undefined nor the error sentinel.
func (p Price) IsValid() bool {
	return !p.IsUndefined() && !p.IsError()
}

// AsF64 returns the price as a float.
func (p Price) AsF64() float64 {
	return fixed.FixedI64ToF64(p.Raw)
}

// Add returns p + other at p's precision.
func (p Price) Add(other Price) Price {
	return Price{Raw: p.Raw + other.Raw, Precision: maxPrecision(p.Precision, other.Precision)}
}

// Sub returns p - other at p's precision.
func (p Price) Sub(other Price) Price {
	return Price{Raw: p.Raw - other.Raw, Precision: maxPrecision(p.Precision, other.Precision)}
}

// Cmp compares two prices by raw value.
func (p Price) Cmp(other Price) int {
	switch {
	case p.Raw < other.Raw:
		return -1
	case p.Raw > other.Raw:
		return 1
	default:
		return 0
	}
}

// LessThan reports p < other.
func (p Price) LessThan(other Price) bool {
	return p.Raw < other.Raw
}

// GreaterThan reports p > other.
func (p Price) GreaterThan(other Price) bool {
	return p.Raw > other.Raw
}

func (p Price) String() string {
	return formatDecimal(p.Raw, p.Precision)
}

func maxPrecision(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
