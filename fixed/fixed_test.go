package fixed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestCheckFixedPrecision(t *testing.T) {
	for p := uint8(0); p <= Precision; p++ {
		require.NoError(t, CheckFixedPrecision(p))
	}
	err := CheckFixedPrecision(Precision + 1)
	require.Error(t, err)
	require.ErrorAs(t, err, &InvalidPrecisionError{})
}

func TestCheckFixedPrecision128(t *testing.T) {
	for p := uint8(0); p <= Precision128; p++ {
		require.NoError(t, CheckFixedPrecision128(p))
	}
	require.Error(t, CheckFixedPrecision128(Precision128+1))
	require.NoError(t, CheckWeiPrecision(WeiPrecision))
	require.Error(t, CheckWeiPrecision(WeiPrecision+1))
}

func TestF64ToFixedI64(t *testing.T) {
	tc := []struct {
		value     float64
		precision uint8
		expected  int64
	}{
		{value: 0, precision: 0, expected: 0},
		{value: 1, precision: 0, expected: 1_000_000_000},
		{value: 1.5, precision: 1, expected: 1_500_000_000},
		{value: -1.5, precision: 1, expected: -1_500_000_000},
		{value: 100.12, precision: 2, expected: 100_120_000_000},
		{value: 0.000000001, precision: 9, expected: 1},
		{value: -0.000000001, precision: 9, expected: -1},
		// rounded at the declared precision, not the internal one;
		// 1.15*10 is exactly 11.5 in float64, so half-to-even lands on 12
		{value: 1.15, precision: 1, expected: 1_200_000_000},
		{value: 1.25, precision: 1, expected: 1_200_000_000},
	}

	for _, v := range tc {
		require.Equal(t, v.expected, F64ToFixedI64(v.value, v.precision), "value=%v precision=%d", v.value, v.precision)
	}
}

func TestF64ToFixedU64(t *testing.T) {
	tc := []struct {
		value     float64
		precision uint8
		expected  uint64
	}{
		{value: 0, precision: 0, expected: 0},
		{value: 10, precision: 0, expected: 10_000_000_000},
		{value: 2.25, precision: 2, expected: 2_250_000_000},
		{value: 0.5, precision: 9, expected: 500_000_000},
	}

	for _, v := range tc {
		require.Equal(t, v.expected, F64ToFixedU64(v.value, v.precision))
	}
}

func TestFixedRoundTrip(t *testing.T) {
	// round-tripping rounds the input to its declared precision
	for p := uint8(0); p <= Precision; p++ {
		values := []float64{0, 1, 123.456789, 999999.999999999, 0.1}
		for _, v := range values {
			back := FixedI64ToF64(F64ToFixedI64(v, p))
			scale := math.Pow10(int(p))
			expected := math.RoundToEven(v*scale) / scale
			require.InDelta(t, expected, back, 1e-10, "value=%v precision=%d", v, p)
		}
	}
}

func TestCheckFixedRawI64(t *testing.T) {
	tc := []struct {
		raw       int64
		precision uint8
		valid     bool
	}{
		{raw: 1_000_000_000, precision: 0, valid: true},
		{raw: 1_000_000_001, precision: 0, valid: false},
		{raw: 1_000_000_001, precision: 9, valid: true},
		{raw: 1_100_000_000, precision: 1, valid: true},
		{raw: 1_110_000_000, precision: 1, valid: false},
		{raw: -1_100_000_000, precision: 1, valid: true},
		{raw: -1_110_000_000, precision: 1, valid: false},
	}

	for _, v := range tc {
		err := CheckFixedRawI64(v.raw, v.precision)
		if v.valid {
			require.NoError(t, err, "raw=%d precision=%d", v.raw, v.precision)
		} else {
			require.Error(t, err, "raw=%d precision=%d", v.raw, v.precision)
		}
	}
}

func TestCorrectRawI64(t *testing.T) {
	tc := []struct {
		raw       int64
		precision uint8
		expected  int64
	}{
		{raw: 1_000_000_000, precision: 0, expected: 1_000_000_000},
		{raw: 1_499_999_999, precision: 0, expected: 1_000_000_000},
		{raw: 1_500_000_000, precision: 0, expected: 2_000_000_000},
		{raw: -1_499_999_999, precision: 0, expected: -1_000_000_000},
		{raw: -1_500_000_000, precision: 0, expected: -2_000_000_000},
		{raw: 1_000_000_001, precision: 9, expected: 1_000_000_001},
		// the classic int(v*scalar) error leak: one ulp below a clean value
		{raw: 100_119_999_999, precision: 2, expected: 100_120_000_000},
	}

	for _, v := range tc {
		require.Equal(t, v.expected, CorrectRawI64(v.raw, v.precision), "raw=%d precision=%d", v.raw, v.precision)
	}
}

func TestCorrectRawProperties(t *testing.T) {
	raws := []int64{0, 1, -1, 499, 500, 999, 123_456_789, -123_456_789, 1_000_000_000_000}
	for _, raw := range raws {
		for p := uint8(0); p <= Precision; p++ {
			corrected := CorrectRawI64(raw, p)
			scale := int64(PowersOfTen[Precision-p])
			require.Zero(t, corrected%scale, "raw=%d precision=%d", raw, p)
			diff := corrected - raw
			if diff < 0 {
				diff = -diff
			}
			require.LessOrEqual(t, diff, scale/2+scale%2, "raw=%d precision=%d", raw, p)
		}
	}
}

func TestFixedU128Conversions(t *testing.T) {
	tc := []struct {
		value     float64
		precision uint8
	}{
		{value: 0, precision: 0},
		{value: 1, precision: 0},
		{value: 123.456, precision: 3},
		{value: 999999.9999, precision: 4},
	}

	for _, v := range tc {
		raw := F64ToFixedU128(v.value, v.precision)
		require.NoError(t, CheckFixedRawU128(raw, v.precision))
		require.InDelta(t, v.value, FixedU128ToF64(raw), 1e-9)
	}
}

func TestCheckFixedRawU128(t *testing.T) {
	valid := uint128.From64(PowersOfTen[Precision128-2])
	require.NoError(t, CheckFixedRawU128(valid, 2))
	require.Error(t, CheckFixedRawU128(valid.Add64(1), 2))
	// at and beyond the internal precision every bit is significant
	require.NoError(t, CheckFixedRawU128(valid.Add64(1), Precision128))
	require.NoError(t, CheckFixedRawU128(valid.Add64(1), WeiPrecision))
}

func TestCorrectRawU128(t *testing.T) {
	scale := PowersOfTen[Precision128-2]
	tc := []struct {
		raw      uint128.Uint128
		expected uint128.Uint128
	}{
		{raw: uint128.From64(scale), expected: uint128.From64(scale)},
		{raw: uint128.From64(scale + scale/2 - 1), expected: uint128.From64(scale)},
		{raw: uint128.From64(scale + scale/2), expected: uint128.From64(2 * scale)},
	}

	for _, v := range tc {
		require.True(t, CorrectRawU128(v.raw, 2).Equals(v.expected), "raw=%s", v.raw)
	}
}

func BenchmarkCheckFixedRawI64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CheckFixedRawI64(100_120_000_000, 2)
	}
}

func BenchmarkCorrectRawI64(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CorrectRawI64(100_119_999_999, 2)
	}
}
