package book

import (
	"math"

	"github.com/yanun0323/logs"

	"github.com/river-walras/nexuscore/market"
)

// Synthetic order ids used for top-of-book updates sourced from quote and
// trade ticks, where the feed carries no real order ids.
const (
	bidTickOrderID market.OrderID = 1
	askTickOrderID market.OrderID = 2
)

////////////////////////////////////////////////////////////////
// Order book
////////////////////////////////////////////////////////////////

// OrderBook maintains both sides of a market for a single instrument from a
// stream of book records. The same type serves all granularities: L3 keeps
// every order, L2 keeps one synthetic order per price level, and L1 keeps a
// single top-of-book level per side.
// NOTE: Not thread-safe.
type OrderBook struct {
	instrumentID market.InstrumentID
	bookType     market.BookType
	sequence     uint64
	tsLast       market.UnixNanos
	count        uint64
	bids         *Ladder
	asks         *Ladder
	alloc        *Allocator
	handler      Handler
}

// NewOrderBook creates a new order book of the given granularity. A nil
// handler disables event callbacks.
func NewOrderBook(instrumentID market.InstrumentID, bookType market.BookType, handler Handler) *OrderBook {
	if handler == nil {
		handler = NoopHandler{}
	}
	alloc := NewAllocator()
	return &OrderBook{
		instrumentID: instrumentID,
		bookType:     bookType,
		bids:         NewLadder(market.OrderSideBuy, bookType, alloc),
		asks:         NewLadder(market.OrderSideSell, bookType, alloc),
		alloc:        alloc,
		handler:      handler,
	}
}

// InstrumentID returns the instrument this book tracks.
func (ob *OrderBook) InstrumentID() market.InstrumentID {
	return ob.instrumentID
}

// BookType returns the granularity of the book.
func (ob *OrderBook) BookType() market.BookType {
	return ob.bookType
}

// Sequence returns the sequence number of the last applied record.
func (ob *OrderBook) Sequence() uint64 {
	return ob.sequence
}

// TsLast returns the event timestamp of the last applied record.
func (ob *OrderBook) TsLast() market.UnixNanos {
	return ob.tsLast
}

// UpdateCount returns how many records have been applied to the book.
func (ob *OrderBook) UpdateCount() uint64 {
	return ob.count
}

////////////////////////////////////////////////////////////////
// Record application
////////////////////////////////////////////////////////////////

// ApplyDelta applies a single book record after checking it belongs to this
// book's instrument.
func (ob *OrderBook) ApplyDelta(delta market.OrderBookDelta) error {
	if delta.InstrumentID != ob.instrumentID {
		return &InstrumentMismatchError{Book: ob.instrumentID, Record: delta.InstrumentID}
	}
	return ob.ApplyDeltaUnchecked(delta)
}

// ApplyDeltaUnchecked applies a single book record without validating its
// instrument. Callers that already routed the record may skip the check.
func (ob *OrderBook) ApplyDeltaUnchecked(delta market.OrderBookDelta) error {
	switch delta.Action {
	case market.BookActionClear:
		ob.clearLadders()
		ob.increment(delta.Sequence, delta.TsEvent)
		ob.handler.OnBookCleared(ob)
		return nil
	case market.BookActionAdd:
		ladder, err := ob.ladderForAdd(delta.Order)
		if err != nil {
			return err
		}
		ladder.Add(delta.Order, delta.Flags)
	case market.BookActionUpdate:
		ladder, ok := ob.resolveLadder(delta.Order)
		if !ok {
			// Order never seen on either side, nothing to update.
			return nil
		}
		ladder.Update(delta.Order, delta.Flags)
	case market.BookActionDelete:
		ladder, ok := ob.resolveLadder(delta.Order)
		if !ok {
			return nil
		}
		ladder.Delete(delta.Order.OrderID)
	default:
		return &InvalidBookOperationError{Operation: delta.Action.String(), BookType: ob.bookType}
	}
	ob.increment(delta.Sequence, delta.TsEvent)
	ob.handler.OnBookUpdate(ob, delta)
	return nil
}

// ApplyDeltas applies a batch of records in order, stopping at the first
// record that fails.
func (ob *OrderBook) ApplyDeltas(deltas market.OrderBookDeltas) error {
	for _, delta := range deltas.Deltas {
		if err := ob.ApplyDelta(delta); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDepth replaces the whole book with a 10-level snapshot. Padding
// entries with zero size are skipped.
func (ob *OrderBook) ApplyDepth(depth market.OrderBookDepth10) error {
	if depth.InstrumentID != ob.instrumentID {
		return &InstrumentMismatchError{Book: ob.instrumentID, Record: depth.InstrumentID}
	}
	ob.clearLadders()
	for _, order := range depth.Bids {
		if order.Side == market.NoOrderSide || !order.Size.IsPositive() {
			continue
		}
		if order.Side != market.OrderSideBuy {
			logs.Warnf("depth bid slot carries side %s, skipping: instrument=%s order=%d",
				order.Side, ob.instrumentID, order.OrderID)
			continue
		}
		ob.bids.insert(order)
	}
	for _, order := range depth.Asks {
		if order.Side == market.NoOrderSide || !order.Size.IsPositive() {
			continue
		}
		if order.Side != market.OrderSideSell {
			logs.Warnf("depth ask slot carries side %s, skipping: instrument=%s order=%d",
				order.Side, ob.instrumentID, order.OrderID)
			continue
		}
		ob.asks.insert(order)
	}
	ob.increment(depth.Sequence, depth.TsEvent)
	return nil
}

// UpdateQuoteTick updates a top-of-book view from a quote tick. Only L1
// books accept tick updates.
func (ob *OrderBook) UpdateQuoteTick(quote market.QuoteTick) error {
	if ob.bookType != market.BookTypeL1MBP {
		return &InvalidBookOperationError{Operation: "update_quote_tick", BookType: ob.bookType}
	}
	ob.bids.addL1(market.NewBookOrder(market.OrderSideBuy, quote.BidPrice, quote.BidSize, bidTickOrderID), 0)
	ob.asks.addL1(market.NewBookOrder(market.OrderSideSell, quote.AskPrice, quote.AskSize, askTickOrderID), 0)
	ob.increment(ob.sequence, quote.TsEvent)
	return nil
}

// UpdateTradeTick updates a top-of-book view from a trade tick, marking both
// sides at the trade price. Only L1 books accept tick updates.
func (ob *OrderBook) UpdateTradeTick(trade market.TradeTick) error {
	if ob.bookType != market.BookTypeL1MBP {
		return &InvalidBookOperationError{Operation: "update_trade_tick", BookType: ob.bookType}
	}
	ob.bids.addL1(market.NewBookOrder(market.OrderSideBuy, trade.Price, trade.Size, bidTickOrderID), 0)
	ob.asks.addL1(market.NewBookOrder(market.OrderSideSell, trade.Price, trade.Size, askTickOrderID), 0)
	ob.increment(ob.sequence, trade.TsEvent)
	return nil
}

////////////////////////////////////////////////////////////////
// Clearing
////////////////////////////////////////////////////////////////

// Clear empties both sides of the book.
func (ob *OrderBook) Clear(sequence uint64, tsEvent market.UnixNanos) {
	ob.clearLadders()
	ob.increment(sequence, tsEvent)
	ob.handler.OnBookCleared(ob)
}

// ClearBids empties the buy side of the book.
func (ob *OrderBook) ClearBids(sequence uint64, tsEvent market.UnixNanos) {
	ob.bids.Clear()
	ob.increment(sequence, tsEvent)
}

// ClearAsks empties the sell side of the book.
func (ob *OrderBook) ClearAsks(sequence uint64, tsEvent market.UnixNanos) {
	ob.asks.Clear()
	ob.increment(sequence, tsEvent)
}

// ClearStaleLevels remediates a crossed book where best bid exceeds best
// ask. With side Buy the crossed bid levels go, with side Sell the crossed
// ask levels, and with NoOrderSide both, which may widen the spread but
// never leaves the book crossed. L1 books replace their single level on
// every record and are left untouched. Returns the prices of the removed
// levels.
func (ob *OrderBook) ClearStaleLevels(side market.OrderSide) []market.Price {
	if ob.bookType == market.BookTypeL1MBP {
		return nil
	}
	bid := ob.bids.Top()
	ask := ob.asks.Top()
	if bid == nil || ask == nil {
		return nil
	}
	bestBid := bid.Price().Value
	bestAsk := ask.Price().Value
	if bestBid.Cmp(bestAsk) <= 0 {
		return nil
	}

	var removed []market.Price
	removedBids, removedAsks := 0, 0
	if side == market.OrderSideBuy || side == market.NoOrderSide {
		// Bids priced at or above the best ask are stale.
		for top := ob.bids.Top(); top != nil && top.Price().Value.Cmp(bestAsk) >= 0; top = ob.bids.Top() {
			removed = append(removed, top.Price().Value)
			ob.bids.RemoveLevel(top.Price())
			removedBids++
		}
	}
	if side == market.OrderSideSell || side == market.NoOrderSide {
		for top := ob.asks.Top(); top != nil && top.Price().Value.Cmp(bestBid) <= 0; top = ob.asks.Top() {
			removed = append(removed, top.Price().Value)
			ob.asks.RemoveLevel(top.Price())
			removedAsks++
		}
	}
	if len(removed) > 0 {
		logs.Warnf("removed stale crossed levels: instrument=%s bids=%d asks=%d",
			ob.instrumentID, removedBids, removedAsks)
		if removedBids > 0 {
			ob.handler.OnStaleLevels(ob, market.OrderSideBuy, removedBids)
		}
		if removedAsks > 0 {
			ob.handler.OnStaleLevels(ob, market.OrderSideSell, removedAsks)
		}
	}
	return removed
}

func (ob *OrderBook) clearLadders() {
	ob.bids.Clear()
	ob.asks.Clear()
}

////////////////////////////////////////////////////////////////
// Internals
////////////////////////////////////////////////////////////////

// ladderForAdd picks the ladder for an add. Records without a side fall back
// to the order id caches; an unknown id cannot be placed on either side.
func (ob *OrderBook) ladderForAdd(order market.BookOrder) (*Ladder, error) {
	switch order.Side {
	case market.OrderSideBuy:
		return ob.bids, nil
	case market.OrderSideSell:
		return ob.asks, nil
	}
	if ob.bids.ContainsOrder(order.OrderID) {
		return ob.bids, nil
	}
	if ob.asks.ContainsOrder(order.OrderID) {
		return ob.asks, nil
	}
	return nil, ErrNoOrderSide
}

// resolveLadder picks the ladder for an update or delete. Records without a
// side fall back to the order id caches of both ladders.
func (ob *OrderBook) resolveLadder(order market.BookOrder) (*Ladder, bool) {
	switch order.Side {
	case market.OrderSideBuy:
		return ob.bids, true
	case market.OrderSideSell:
		return ob.asks, true
	}
	if ob.bids.ContainsOrder(order.OrderID) {
		return ob.bids, true
	}
	if ob.asks.ContainsOrder(order.OrderID) {
		return ob.asks, true
	}
	return nil, false
}

// increment advances the book bookkeeping. Regressions in sequence or event
// time are logged and accepted, since replays and venue restarts produce
// them legitimately.
func (ob *OrderBook) increment(sequence uint64, tsEvent market.UnixNanos) {
	if sequence < ob.sequence {
		logs.Warnf("sequence regression: instrument=%s last=%d new=%d", ob.instrumentID, ob.sequence, sequence)
	}
	if tsEvent < ob.tsLast {
		logs.Warnf("event time regression: instrument=%s last=%d new=%d", ob.instrumentID, ob.tsLast, tsEvent)
	}
	ob.sequence = sequence
	ob.tsLast = tsEvent
	if ob.count < math.MaxUint64 {
		ob.count++
		if ob.count == math.MaxUint64 {
			logs.Warnf("update count saturated: instrument=%s", ob.instrumentID)
		}
	}
}
