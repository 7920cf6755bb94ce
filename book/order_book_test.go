package book

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/river-walras/nexuscore/market"
)

func TestOrderBookApplyDelta(t *testing.T) {
	t.Run("instrument mismatch rejected", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)
		delta := testDelta(t, market.BookActionAdd, market.OrderSideBuy, "100", "1", 1, 0, 1)
		delta.InstrumentID = market.InstrumentID{Symbol: "ETHUSDT", Venue: "BINANCE"}

		err := ob.ApplyDelta(delta)

		var mismatch *InstrumentMismatchError
		require.ErrorAs(t, err, &mismatch)
		require.Equal(t, uint64(0), ob.UpdateCount())
	})

	t.Run("add routes by side", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)

		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "100", "1", 1, 0, 1)))
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideSell, "101", "2", 2, 0, 2)))

		bid, ok := ob.BestBidPrice()
		require.True(t, ok)
		require.InDelta(t, 100.0, bid.AsF64(), 1e-9)
		ask, ok := ob.BestAskPrice()
		require.True(t, ok)
		require.InDelta(t, 101.0, ask.AsF64(), 1e-9)
		require.Equal(t, uint64(2), ob.Sequence())
		require.Equal(t, uint64(2), ob.UpdateCount())
	})

	t.Run("add without side fails for unknown order", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL3MBO, nil)
		delta := testDelta(t, market.BookActionAdd, market.NoOrderSide, "100", "1", 1, 0, 1)

		require.ErrorIs(t, ob.ApplyDelta(delta), ErrNoOrderSide)
	})

	t.Run("update without side resolves via cache", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL3MBO, nil)
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideSell, "101", "2", 7, 0, 1)))

		update := testDelta(t, market.BookActionUpdate, market.NoOrderSide, "101", "5", 7, 0, 2)
		require.NoError(t, ob.ApplyDelta(update))

		size, ok := ob.BestAskSize()
		require.True(t, ok)
		require.InDelta(t, 5.0, size.AsF64(), 1e-9)
	})

	t.Run("update without side skips unknown order", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL3MBO, nil)
		update := testDelta(t, market.BookActionUpdate, market.NoOrderSide, "101", "5", 7, 0, 1)

		require.NoError(t, ob.ApplyDelta(update))
		require.Equal(t, uint64(0), ob.UpdateCount())
	})

	t.Run("delete without side resolves via cache", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL3MBO, nil)
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "100", "2", 7, 0, 1)))

		del := testDelta(t, market.BookActionDelete, market.NoOrderSide, "100", "0", 7, 0, 2)
		require.NoError(t, ob.ApplyDelta(del))

		_, ok := ob.BestBidPrice()
		require.False(t, ok)
	})

	t.Run("clear empties both sides", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "100", "1", 1, 0, 1)))
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideSell, "101", "1", 2, 0, 2)))

		require.NoError(t, ob.ApplyDelta(market.ClearDelta(testInstrument, 3, 3)))

		_, okBid := ob.BestBidPrice()
		_, okAsk := ob.BestAskPrice()
		require.False(t, okBid)
		require.False(t, okAsk)
		require.Equal(t, uint64(3), ob.Sequence())
	})
}

func TestOrderBookApplyDeltas(t *testing.T) {
	ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)
	bad := testDelta(t, market.BookActionAdd, market.NoOrderSide, "101", "1", 2, 0, 2)
	deltas := market.NewOrderBookDeltas(testInstrument, []market.OrderBookDelta{
		testDelta(t, market.BookActionAdd, market.OrderSideBuy, "100", "1", 1, 0, 1),
		bad,
		testDelta(t, market.BookActionAdd, market.OrderSideSell, "102", "1", 3, 0, 3),
	})

	err := ob.ApplyDeltas(deltas)

	// Stops at the failing record, the trailing add is never applied.
	require.ErrorIs(t, err, ErrNoOrderSide)
	require.Equal(t, uint64(1), ob.UpdateCount())
	_, ok := ob.BestAskPrice()
	require.False(t, ok)
}

func TestOrderBookApplyDepth(t *testing.T) {
	ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)
	require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "50", "9", 1, 0, 1)))

	var bids, asks [market.DepthLevels]market.BookOrder
	bids[0] = testOrder(t, market.OrderSideBuy, "1000", "1", 11)
	bids[1] = testOrder(t, market.OrderSideBuy, "999", "2", 12)
	asks[0] = testOrder(t, market.OrderSideSell, "1001", "1", 21)
	asks[1] = testOrder(t, market.OrderSideSell, "1002", "3", 22)
	depth := market.NewOrderBookDepth10(testInstrument, bids, asks, 0, 5, 5)

	require.NoError(t, ob.ApplyDepth(depth))

	// Prior state is gone, padding entries are ignored.
	bid, ok := ob.BestBidPrice()
	require.True(t, ok)
	require.InDelta(t, 1000.0, bid.AsF64(), 1e-9)
	ask, ok := ob.BestAskPrice()
	require.True(t, ok)
	require.InDelta(t, 1001.0, ask.AsF64(), 1e-9)
	spread, ok := ob.Spread()
	require.True(t, ok)
	require.InDelta(t, 1.0, spread, 1e-9)
	require.Len(t, ob.Bids(0), 2)
	require.Len(t, ob.Asks(0), 2)
	require.Equal(t, uint64(5), ob.Sequence())
}

func TestOrderBookApplyDepthSkipsWrongSideSlots(t *testing.T) {
	ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)

	var bids, asks [market.DepthLevels]market.BookOrder
	bids[0] = testOrder(t, market.OrderSideBuy, "1000", "1", 11)
	// A sell order in a bid slot must not land in the bid ladder.
	bids[1] = testOrder(t, market.OrderSideSell, "999", "2", 12)
	asks[0] = testOrder(t, market.OrderSideSell, "1001", "1", 21)
	asks[1] = testOrder(t, market.OrderSideBuy, "1002", "3", 22)
	depth := market.NewOrderBookDepth10(testInstrument, bids, asks, 0, 5, 5)

	require.NoError(t, ob.ApplyDepth(depth))

	require.Len(t, ob.Bids(0), 1)
	require.Len(t, ob.Asks(0), 1)
	bid, ok := ob.BestBidPrice()
	require.True(t, ok)
	require.InDelta(t, 1000.0, bid.AsF64(), 1e-9)
	ask, ok := ob.BestAskPrice()
	require.True(t, ok)
	require.InDelta(t, 1001.0, ask.AsF64(), 1e-9)
}

func TestOrderBookClearStaleLevels(t *testing.T) {
	crossedBook := func(t *testing.T) *OrderBook {
		t.Helper()
		ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "102", "5", 1, 0, 1)))
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "101", "3", 2, 0, 2)))
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideSell, "100", "4", 3, 0, 3)))
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideSell, "99", "2", 4, 0, 4)))
		return ob
	}

	t.Run("both sides removes the full overlap", func(t *testing.T) {
		ob := crossedBook(t)

		removed := ob.ClearStaleLevels(market.NoOrderSide)

		require.Len(t, removed, 4)
		_, okBid := ob.BestBidPrice()
		_, okAsk := ob.BestAskPrice()
		require.False(t, okBid)
		require.False(t, okAsk)
	})

	t.Run("buy side only removes crossed bids", func(t *testing.T) {
		ob := crossedBook(t)

		removed := ob.ClearStaleLevels(market.OrderSideBuy)

		require.Len(t, removed, 2)
		_, okBid := ob.BestBidPrice()
		require.False(t, okBid)
		ask, okAsk := ob.BestAskPrice()
		require.True(t, okAsk)
		require.InDelta(t, 99.0, ask.AsF64(), 1e-9)
	})

	t.Run("uncrossed book untouched", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "100", "1", 1, 0, 1)))
		require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideSell, "101", "1", 2, 0, 2)))

		require.Empty(t, ob.ClearStaleLevels(market.NoOrderSide))
		require.Len(t, ob.Bids(0), 1)
		require.Len(t, ob.Asks(0), 1)
	})

	t.Run("L1 book is a no-op", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL1MBP, nil)
		require.NoError(t, ob.UpdateQuoteTick(market.QuoteTick{
			InstrumentID: testInstrument,
			BidPrice:     testPrice(t, "102"),
			AskPrice:     testPrice(t, "100"),
			BidSize:      testQty(t, "1"),
			AskSize:      testQty(t, "1"),
		}))

		require.Empty(t, ob.ClearStaleLevels(market.NoOrderSide))
	})
}

func TestOrderBookTickUpdates(t *testing.T) {
	t.Run("quote tick replaces both tops", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL1MBP, nil)

		require.NoError(t, ob.UpdateQuoteTick(market.QuoteTick{
			InstrumentID: testInstrument,
			BidPrice:     testPrice(t, "100.5"),
			AskPrice:     testPrice(t, "101.0"),
			BidSize:      testQty(t, "15"),
			AskSize:      testQty(t, "20"),
			TsEvent:      10,
		}))

		bid, _ := ob.BestBidPrice()
		ask, _ := ob.BestAskPrice()
		require.InDelta(t, 100.5, bid.AsF64(), 1e-9)
		require.InDelta(t, 101.0, ask.AsF64(), 1e-9)
		bidSize, _ := ob.BestBidSize()
		require.InDelta(t, 15.0, bidSize.AsF64(), 1e-9)
		require.Equal(t, market.UnixNanos(10), ob.TsLast())
	})

	t.Run("trade tick marks both sides", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL1MBP, nil)

		require.NoError(t, ob.UpdateTradeTick(market.TradeTick{
			InstrumentID: testInstrument,
			Price:        testPrice(t, "100.25"),
			Size:         testQty(t, "3"),
			TradeID:      "t-1",
			TsEvent:      11,
		}))

		bid, _ := ob.BestBidPrice()
		ask, _ := ob.BestAskPrice()
		require.InDelta(t, 100.25, bid.AsF64(), 1e-9)
		require.InDelta(t, 100.25, ask.AsF64(), 1e-9)
	})

	t.Run("tick updates rejected outside L1", func(t *testing.T) {
		ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)

		err := ob.UpdateQuoteTick(market.QuoteTick{InstrumentID: testInstrument})
		var invalid *InvalidBookOperationError
		require.ErrorAs(t, err, &invalid)

		err = ob.UpdateTradeTick(market.TradeTick{InstrumentID: testInstrument})
		require.ErrorAs(t, err, &invalid)
	})
}

func TestOrderBookSequenceRegressionAccepted(t *testing.T) {
	ob := NewOrderBook(testInstrument, market.BookTypeL2MBP, nil)
	require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "100", "1", 1, 0, 10)))

	// A replayed stream may restart its sequence. The record still applies.
	require.NoError(t, ob.ApplyDelta(testDelta(t, market.BookActionAdd, market.OrderSideBuy, "99", "1", 2, 0, 3)))

	require.Equal(t, uint64(3), ob.Sequence())
	require.Len(t, ob.Bids(0), 2)
}
