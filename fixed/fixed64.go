package fixed

import (
	"math"
	"strconv"
)

// F64ToFixedI64 converts a float to a signed raw value of given precision.
// Rounding is IEEE-754 half-to-even at the user-visible precision, NOT at
// Precision: rounding at the internal scale would amplify the float error
// bits sitting below the declared precision.
func F64ToFixedI64(value float64, precision uint8) int64 {
	rounded := int64(math.RoundToEven(value * float64(PowersOfTen[precision])))
	return rounded * int64(PowersOfTen[Precision-precision])
}

// F64ToFixedU64 converts a float to an unsigned raw value of given precision.
func F64ToFixedU64(value float64, precision uint8) uint64 {
	rounded := uint64(math.RoundToEven(value * float64(PowersOfTen[precision])))
	return rounded * PowersOfTen[Precision-precision]
}

// FixedI64ToF64 converts a signed raw value back to a float.
func FixedI64ToF64(raw int64) float64 {
	return float64(raw) / float64(Scalar)
}

// FixedU64ToF64 converts an unsigned raw value back to a float.
func FixedU64ToF64(raw uint64) float64 {
	return float64(raw) / float64(Scalar)
}

// CheckFixedRawI64 returns an error when raw is not an exact multiple of the
// scale implied by precision. At precision == Precision every bit is
// significant and the check is skipped.
func CheckFixedRawI64(raw int64, precision uint8) error {
	if precision >= Precision {
		return nil
	}
	scale := int64(PowersOfTen[Precision-precision])
	if remainder := raw % scale; remainder != 0 {
		return InvalidRawValueError{
			Raw:       strconv.FormatInt(raw, 10),
			Precision: precision,
			Remainder: strconv.FormatInt(remainder, 10),
			Scale:     strconv.FormatInt(scale, 10),
		}
	}
	return nil
}

// CheckFixedRawU64 is the unsigned variant of CheckFixedRawI64.
func CheckFixedRawU64(raw uint64, precision uint8) error {
	if precision >= Precision {
		return nil
	}
	scale := PowersOfTen[Precision-precision]
	if remainder := raw % scale; remainder != 0 {
		return InvalidRawValueError{
			Raw:       strconv.FormatUint(raw, 10),
			Precision: precision,
			Remainder: strconv.FormatUint(remainder, 10),
			Scale:     strconv.FormatUint(scale, 10),
		}
	}
	return nil
}

// CorrectRawI64 rounds raw half away from zero to the nearest valid multiple
// of the scale implied by precision. Legacy encoders wrote raw values with a
// plain float truncation, so decode paths repair them with this instead of
// rejecting.
func CorrectRawI64(raw int64, precision uint8) int64 {
	if precision >= Precision {
		return raw
	}
	scale := int64(PowersOfTen[Precision-precision])
	remainder := raw % scale
	if remainder == 0 {
		return raw
	}
	if remainder < 0 {
		if -remainder*2 >= scale {
			return raw - (scale + remainder)
		}
		return raw - remainder
	}
	if remainder*2 >= scale {
		return raw + (scale - remainder)
	}
	return raw - remainder
}

// CorrectRawU64 is the unsigned variant of CorrectRawI64.
func CorrectRawU64(raw uint64, precision uint8) uint64 {
	if precision >= Precision {
		return raw
	}
	scale := PowersOfTen[Precision-precision]
	remainder := raw % scale
	if remainder == 0 {
		return raw
	}
	if remainder*2 >= scale {
		return raw + (scale - remainder)
	}
	return raw - remainder
}
