package market

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/river-walras/nexuscore/fixed"
)

// parseDecimal parses a plain decimal string ("-123.45") into a raw value at
// the internal scale plus the precision implied by the fractional digits.
// Parsing is exact: no float round-trip is involved, so feed payloads carrying
// decimal strings preserve every digit the venue sent.
func parseDecimal(value string) (raw int64, precision uint8, err error) {
	s := value
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return 0, 0, fmt.Errorf("invalid decimal string %q", value)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	// Trailing zeros still count towards the declared precision, "101.0"
	// renders one fractional digit.
	if len(fracPart) > int(fixed.Precision) {
		return 0, 0, fixed.InvalidPrecisionError{Precision: uint8(min(len(fracPart), 255)), Max: fixed.Precision}
	}
	precision = uint8(len(fracPart))
	fracPart = strings.TrimRight(fracPart, "0")

	integer, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid decimal string %q: %w", value, err)
	}

	var frac uint64
	if fracPart != "" {
		frac, err = strconv.ParseUint(fracPart, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid decimal string %q: %w", value, err)
		}
		frac *= fixed.PowersOfTen[int(fixed.Precision)-len(fracPart)]
	}

	raw = int64(integer)*fixed.Scalar + int64(frac)
	if neg {
		raw = -raw
	}
	return raw, precision, nil
}

// formatDecimal renders a raw value at the internal scale with exactly
// precision decimal places.
func formatDecimal(raw int64, precision uint8) string {
	neg := raw < 0
	if neg {
		raw = -raw
	}
	integer := raw / fixed.Scalar
	frac := raw % fixed.Scalar

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(integer, 10))
	if precision > 0 {
		digits := strconv.FormatInt(frac, 10)
		for len(digits) < int(fixed.Precision) {
			digits = "0" + digits
		}
		b.WriteByte('.')
		b.WriteString(digits[:precision])
	}
	return b.String()
}
