package fixed

import (
	"math"

	"lukechampine.com/uint128"
)

const twoPow64 = 1 << 64

// Scalar128 is the internal scale of the 128-bit backing (10^Precision128).
var Scalar128 = uint128.From64(PowersOfTen[Precision128])

// U128FromF64 converts a non-negative float to a 128-bit integer.
// The caller guarantees value >= 0 and value < 2^128.
func U128FromF64(value float64) uint128.Uint128 {
	hi := uint64(value / twoPow64)
	lo := uint64(value - float64(hi)*twoPow64)
	return uint128.New(lo, hi)
}

// U128ToF64 converts a 128-bit integer to the nearest float.
func U128ToF64(value uint128.Uint128) float64 {
	return float64(value.Hi)*twoPow64 + float64(value.Lo)
}

// F64ToFixedU128 converts a float to an unsigned 128-bit raw value of given
// precision, rounding half-to-even at the user-visible precision.
func F64ToFixedU128(value float64, precision uint8) uint128.Uint128 {
	rounded := math.RoundToEven(value * float64(PowersOfTen[precision]))
	return U128FromF64(rounded).Mul64(PowersOfTen[Precision128-precision])
}

// FixedU128ToF64 converts an unsigned 128-bit raw value back to a float.
func FixedU128ToF64(raw uint128.Uint128) float64 {
	return U128ToF64(raw) / float64(PowersOfTen[Precision128])
}

// CheckFixedRawU128 returns an error when raw is not an exact multiple of the
// scale implied by precision. Precisions at or above Precision128 (including
// wei) carry significance in every bit, so validation is skipped.
func CheckFixedRawU128(raw uint128.Uint128, precision uint8) error {
	if precision >= Precision128 {
		return nil
	}
	scale := PowersOfTen[Precision128-precision]
	_, remainder := raw.QuoRem64(scale)
	if remainder != 0 {
		return InvalidRawValueError{
			Raw:       raw.String(),
			Precision: precision,
			Remainder: uint128.From64(remainder).String(),
			Scale:     uint128.From64(scale).String(),
		}
	}
	return nil
}

// CorrectRawU128 rounds raw half away from zero to the nearest valid
// multiple of the scale implied by precision.
func CorrectRawU128(raw uint128.Uint128, precision uint8) uint128.Uint128 {
	if precision >= Precision128 {
		return raw
	}
	scale := PowersOfTen[Precision128-precision]
	_, remainder := raw.QuoRem64(scale)
	if remainder == 0 {
		return raw
	}
	if remainder*2 >= scale {
		return raw.Add64(scale - remainder)
	}
	return raw.Sub64(remainder)
}
