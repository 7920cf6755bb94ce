package market

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantityFromStr(t *testing.T) {
	tc := []struct {
		value     string
		raw       uint64
		precision uint8
	}{
		{value: "0", raw: 0, precision: 0},
		{value: "10", raw: 10_000_000_000, precision: 0},
		{value: "2.5", raw: 2_500_000_000, precision: 1},
		{value: "2.50", raw: 2_500_000_000, precision: 2},
		{value: "0.00000001", raw: 10, precision: 8},
	}

	for _, v := range tc {
		qty, err := QuantityFromStr(v.value)
		require.NoError(t, err, v.value)
		require.Equal(t, v.raw, qty.Raw, v.value)
		require.Equal(t, v.precision, qty.Precision, v.value)
	}

	_, err := QuantityFromStr("-1")
	require.Error(t, err)
}

func TestQuantityZero(t *testing.T) {
	zero := QuantityZero(3)
	require.True(t, zero.IsZero())
	require.False(t, zero.IsPositive())
	require.Equal(t, uint8(3), zero.Precision)
	require.Equal(t, "0.000", zero.String())
}

func TestQuantityArithmetic(t *testing.T) {
	a, _ := QuantityFromStr("10.5")
	b, _ := QuantityFromStr("3.5")
	require.Equal(t, "14.0", a.Add(b).String())
	require.Equal(t, "7.0", a.Sub(b).String())
	// saturating at zero
	require.True(t, b.Sub(a).IsZero())
	require.Equal(t, b, a.Min(b))
	require.Equal(t, -1, b.Cmp(a))
}

func TestNewQuantityRejectsNegative(t *testing.T) {
	_, err := NewQuantity(-1.0, 0)
	require.Error(t, err)
}

func TestBookOrderExposure(t *testing.T) {
	price, _ := PriceFromStr("100")
	size, _ := QuantityFromStr("2.5")
	order := NewBookOrder(OrderSideBuy, price, size, 1)
	require.InDelta(t, 250.0, order.Exposure(), 1e-9)

	// large enough that the raw product overflows 64 bits
	bigPrice, _ := PriceFromStr("50000.0")
	bigSize, _ := QuantityFromStr("100000.0")
	big := NewBookOrder(OrderSideSell, bigPrice, bigSize, 2)
	require.InDelta(t, 5_000_000_000.0, big.Exposure(), 1.0)
}
