// Package fixed implements the raw integer representation backing every
// price and quantity in the system. A value of decimal precision p is stored
// as round(v * 10^p) * 10^(Precision - p), so that all values share one
// internal scale and arithmetic stays integer-exact.
package fixed

import "fmt"

const (
	// Precision is the number of decimal places of the 64-bit backing.
	Precision uint8 = 9
	// Scalar is the internal scale of the 64-bit backing (10^Precision).
	Scalar int64 = 1_000_000_000

	// Precision128 is the number of decimal places of the 128-bit backing.
	Precision128 uint8 = 16

	// WeiPrecision is the precision of wei denominated values. It exceeds
	// Precision128, so raw validation is not possible and is bypassed.
	WeiPrecision uint8 = 18
)

// PowersOfTen holds 10^i for i in [0, 19] so that the raw validation hot
// path is a single table lookup and modulo.
var PowersOfTen = [20]uint64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
	10_000_000_000,
	100_000_000_000,
	1_000_000_000_000,
	10_000_000_000_000,
	100_000_000_000_000,
	1_000_000_000_000_000,
	10_000_000_000_000_000,
	100_000_000_000_000_000,
	1_000_000_000_000_000_000,
	10_000_000_000_000_000_000,
}

// InvalidPrecisionError reports a precision above the supported maximum.
type InvalidPrecisionError struct {
	Precision uint8
	Max       uint8
}

func (e InvalidPrecisionError) Error() string {
	return fmt.Sprintf("invalid precision %d, maximum is %d", e.Precision, e.Max)
}

// InvalidRawValueError reports a raw value that is not an exact multiple of
// the scale implied by its declared precision. It indicates the raw value
// was produced by something other than the fixed-point constructors,
// typically float truncation on a legacy encode path.
type InvalidRawValueError struct {
	Raw       string
	Precision uint8
	Remainder string
	Scale     string
}

func (e InvalidRawValueError) Error() string {
	return fmt.Sprintf(
		"invalid raw value %s for precision %d: remainder %s of scale %s",
		e.Raw, e.Precision, e.Remainder, e.Scale,
	)
}

// CheckFixedPrecision fails when precision exceeds the 64-bit maximum.
func CheckFixedPrecision(precision uint8) error {
	if precision > Precision {
		return InvalidPrecisionError{Precision: precision, Max: Precision}
	}
	return nil
}

// CheckFixedPrecision128 fails when precision exceeds the 128-bit maximum.
func CheckFixedPrecision128(precision uint8) error {
	if precision > Precision128 {
		return InvalidPrecisionError{Precision: precision, Max: Precision128}
	}
	return nil
}

// CheckWeiPrecision fails when precision exceeds the wei maximum.
// Precisions in (Precision128, WeiPrecision] are representable but not
// validatable, so the raw checkers skip them.
func CheckWeiPrecision(precision uint8) error {
	if precision > WeiPrecision {
		return InvalidPrecisionError{Precision: precision, Max: WeiPrecision}
	}
	return nil
}
