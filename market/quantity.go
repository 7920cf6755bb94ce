package market

import (
	"math"

	"github.com/river-walras/nexuscore/fixed"
)

// Quantity is an unsigned fixed-point size with explicit decimal precision.
// It is an immutable value type: every operation returns a new Quantity.
type Quantity struct {
	Raw       uint64
	Precision uint8
}

// NewQuantity creates a Quantity from a float, validating the precision and
// rounding half-to-even at that precision.
func NewQuantity(value float64, precision uint8) (Quantity, error) {
	if err := fixed.CheckFixedPrecision(precision); err != nil {
		return Quantity{}, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Quantity{}, ErrQuantityInvalid
	}
	return Quantity{Raw: fixed.F64ToFixedU64(value, precision), Precision: precision}, nil
}

// QuantityFromRaw creates a Quantity from a raw value, validating that the
// raw value matches the declared precision.
func QuantityFromRaw(raw uint64, precision uint8) (Quantity, error) {
	if err := fixed.CheckFixedPrecision(precision); err != nil {
		return Quantity{}, err
	}
	if err := fixed.CheckFixedRawU64(raw, precision); err != nil {
		return Quantity{}, err
	}
	return Quantity{Raw: raw, Precision: precision}, nil
}

// QuantityFromStr creates a Quantity from an exact decimal string, inferring
// the precision from the fractional digits.
func QuantityFromStr(value string) (Quantity, error) {
	raw, precision, err := parseDecimal(value)
	if err != nil {
		return Quantity{}, err
	}
	if raw < 0 {
		return Quantity{}, ErrQuantityInvalid
	}
	return Quantity{Raw: uint64(raw), Precision: precision}, nil
}

// QuantityZero returns the zero quantity at the given precision.
func QuantityZero(precision uint8) Quantity {
	return Quantity{Precision: precision}
}

// CorrectQuantityRaw repairs a raw quantity written by a legacy
// float-truncating encoder, rounding half up to the nearest valid multiple.
func CorrectQuantityRaw(raw uint64, precision uint8) uint64 {
	return fixed.CorrectRawU64(raw, precision)
}

// IsZero reports whether the quantity is zero.
func (q Quantity) IsZero() bool {
	return q.Raw == 0
}

// IsPositive reports whether the quantity is greater than zero.
func (q Quantity) IsPositive() bool {
	return q.Raw > 0
}

// AsF64 returns the quantity as a float.
func (q Quantity) AsF64() float64 {
	return fixed.FixedU64ToF64(q.Raw)
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{Raw: q.Raw + other.Raw, Precision: maxPrecision(q.Precision, other.Precision)}
}

// Sub returns q - other, saturating at zero.
func (q Quantity) Sub(other Quantity) Quantity {
	raw := uint64(0)
	if q.Raw > other.Raw {
		raw = q.Raw - other.Raw
	}
	return Quantity{Raw: raw, Precision: maxPrecision(q.Precision, other.Precision)}
}

// Min returns the smaller of q and other.
func (q Quantity) Min(other Quantity) Quantity {
	if q.Raw <= other.Raw {
		return q
	}
	return other
}

// Cmp compares two quantities by raw value.
func (q Quantity) Cmp(other Quantity) int {
	switch {
	case q.Raw < other.Raw:
		return -1
	case q.Raw > other.Raw:
		return 1
	default:
		return 0
	}
}

func (q Quantity) String() string {
	return formatDecimal(int64(q.Raw), q.Precision)
}
