package book

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/river-walras/nexuscore/market"
)

var testInstrument = market.InstrumentID{Symbol: "BTCUSDT", Venue: "BINANCE"}

func testPrice(t *testing.T, value string) market.Price {
	t.Helper()
	price, err := market.PriceFromStr(value)
	require.NoError(t, err)
	return price
}

func testQty(t *testing.T, value string) market.Quantity {
	t.Helper()
	size, err := market.QuantityFromStr(value)
	require.NoError(t, err)
	return size
}

func testOrder(t *testing.T, side market.OrderSide, price, size string, id market.OrderID) market.BookOrder {
	t.Helper()
	return market.NewBookOrder(side, testPrice(t, price), testQty(t, size), id)
}

func testDelta(t *testing.T, action market.BookAction, side market.OrderSide, price, size string, id market.OrderID, flags market.RecordFlags, sequence uint64) market.OrderBookDelta {
	t.Helper()
	return market.OrderBookDelta{
		InstrumentID: testInstrument,
		Action:       action,
		Order:        testOrder(t, side, price, size, id),
		Flags:        flags,
		Sequence:     sequence,
		TsEvent:      market.UnixNanos(sequence),
	}
}

// ladderPrices returns every level price of the ladder best first.
func ladderPrices(ladder *Ladder) []float64 {
	var prices []float64
	ladder.levels.IterateInOrder(func(bp BookPrice, _ *Level) bool {
		prices = append(prices, bp.Value.AsF64())
		return true
	})
	return prices
}

// requireLadderConsistent checks that the order id cache and the levels hold
// exactly the same orders and that no level is empty.
func requireLadderConsistent(t *testing.T, ladder *Ladder) {
	t.Helper()
	inLevels := 0
	ladder.levels.IterateInOrder(func(bp BookPrice, level *Level) bool {
		require.False(t, level.IsEmpty(), "empty level left in ladder at %s", bp)
		for _, id := range level.OrderIDs() {
			cached, ok := ladder.cache.Get(id)
			require.True(t, ok, "order %d missing from cache", id)
			require.True(t, cached.Equals(bp), "order %d cached at wrong price", id)
			inLevels++
		}
		return true
	})
	require.Equal(t, ladder.cache.Len(), inLevels)
}
