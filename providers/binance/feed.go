package binance

import (
	"fmt"

	"github.com/yanun0323/logs"

	"github.com/river-walras/nexuscore/book"
	"github.com/river-walras/nexuscore/bus"
	"github.com/river-walras/nexuscore/market"
)

// Venue identifies Binance in instrument ids and bus topics.
const Venue = "BINANCE"

const msPerNano = 1_000_000

// Feed maintains one L2 order book per streamed symbol and republishes the
// venue's events as typed records on the message bus: delta batches under
// data.deltas.BINANCE.<symbol>, best-bid-ask quotes under data.quotes..., and
// trades under data.trades....
//
// Feed implements Handler, so it plugs straight into a Processor.
//
// NOTE: Not thread-safe; run it on the goroutine that owns the bus.
type Feed struct {
	bus   *bus.MessageBus
	books map[string]*book.OrderBook
}

// NewFeed creates a new Feed instance publishing on the given bus.
func NewFeed(b *bus.MessageBus) *Feed {
	return &Feed{
		bus:   b,
		books: make(map[string]*book.OrderBook),
	}
}

// Book returns the order book for a symbol, or nil before its first update.
func (f *Feed) Book(symbol string) *book.OrderBook {
	return f.books[symbol]
}

// OnDepthUpdateMessage converts a diff-depth event into a delta batch,
// applies it to the symbol's book and publishes the batch plus the resulting
// top-of-book quote.
func (f *Feed) OnDepthUpdateMessage(msg DepthUpdateMessage) error {
	instrumentID := market.InstrumentID{Symbol: msg.Symbol, Venue: Venue}
	ob := f.books[msg.Symbol]
	if ob == nil {
		ob = book.NewOrderBook(instrumentID, market.BookTypeL2MBP, nil)
		f.books[msg.Symbol] = ob
	}

	tsEvent := market.UnixNanos(msg.EventTime * msPerNano)
	deltas := make([]market.OrderBookDelta, 0, len(msg.Bids)+len(msg.Asks))
	deltas, err := appendDepthDeltas(deltas, instrumentID, market.OrderSideBuy, msg.Bids, msg.FinalUpdateID, tsEvent)
	if err != nil {
		return err
	}
	deltas, err = appendDepthDeltas(deltas, instrumentID, market.OrderSideSell, msg.Asks, msg.FinalUpdateID, tsEvent)
	if err != nil {
		return err
	}
	if len(deltas) == 0 {
		return nil
	}
	deltas[len(deltas)-1].Flags |= market.FlagLast

	batch := market.NewOrderBookDeltas(instrumentID, deltas)
	if err := ob.ApplyDeltas(batch); err != nil {
		return fmt.Errorf("failed to apply depth update for %s: %w", msg.Symbol, err)
	}
	f.bus.PublishDeltas(deltasTopic(msg.Symbol), batch)
	f.publishQuote(instrumentID, ob, tsEvent)
	return nil
}

// OnTradeMessage converts a trade event into a TradeTick and publishes it.
func (f *Feed) OnTradeMessage(msg TradeMessage) error {
	price, err := market.PriceFromStr(msg.Price)
	if err != nil {
		return fmt.Errorf("invalid trade price %q: %w", msg.Price, err)
	}
	size, err := market.QuantityFromStr(msg.Quantity)
	if err != nil {
		return fmt.Errorf("invalid trade quantity %q: %w", msg.Quantity, err)
	}

	// The aggressor is the taker: when the buyer is the maker, a seller
	// crossed the spread.
	aggressor := market.OrderSideBuy
	if msg.BuyerIsMaker {
		aggressor = market.OrderSideSell
	}

	tick := market.TradeTick{
		InstrumentID:  market.InstrumentID{Symbol: msg.Symbol, Venue: Venue},
		Price:         price,
		Size:          size,
		AggressorSide: aggressor,
		TradeID:       market.TradeID(fmt.Sprintf("%d", msg.TradeID)),
		TsEvent:       market.UnixNanos(msg.TradeTime * msPerNano),
	}
	f.bus.PublishTrade(tradesTopic(msg.Symbol), tick)
	return nil
}

// OnUnknownMessage logs and drops event types the feed does not consume.
func (f *Feed) OnUnknownMessage(msg UnknownMessage) error {
	logs.Warnf("dropping unknown stream event: type=%q", msg.EventType)
	return nil
}

// appendDepthDeltas converts one side of a diff-depth event. Absolute sizes
// map to upserts; zero sizes delete the level. The level's synthetic order
// id is its raw price, which is unique within a side.
func appendDepthDeltas(
	deltas []market.OrderBookDelta,
	instrumentID market.InstrumentID,
	side market.OrderSide,
	levels [][2]string,
	sequence uint64,
	tsEvent market.UnixNanos,
) ([]market.OrderBookDelta, error) {
	for _, level := range levels {
		price, err := market.PriceFromStr(level[0])
		if err != nil {
			return nil, fmt.Errorf("invalid depth price %q: %w", level[0], err)
		}
		size, err := market.QuantityFromStr(level[1])
		if err != nil {
			return nil, fmt.Errorf("invalid depth quantity %q: %w", level[1], err)
		}

		action := market.BookActionUpdate
		if size.IsZero() {
			action = market.BookActionDelete
		}
		order := market.NewBookOrder(side, price, size, market.OrderID(price.Raw))
		deltas = append(deltas, market.NewOrderBookDelta(instrumentID, action, order, 0, sequence, tsEvent))
	}
	return deltas, nil
}

// publishQuote emits the post-update top of book when both sides exist.
func (f *Feed) publishQuote(instrumentID market.InstrumentID, ob *book.OrderBook, tsEvent market.UnixNanos) {
	bidPrice, okBid := ob.BestBidPrice()
	askPrice, okAsk := ob.BestAskPrice()
	if !okBid || !okAsk {
		return
	}
	bidSize, _ := ob.BestBidSize()
	askSize, _ := ob.BestAskSize()
	f.bus.PublishQuote(quotesTopic(instrumentID.Symbol), market.QuoteTick{
		InstrumentID: instrumentID,
		BidPrice:     bidPrice,
		AskPrice:     askPrice,
		BidSize:      bidSize,
		AskSize:      askSize,
		TsEvent:      tsEvent,
	})
}

func deltasTopic(symbol string) bus.Topic {
	return bus.Topic("data.deltas." + Venue + "." + symbol)
}

func quotesTopic(symbol string) bus.Topic {
	return bus.Topic("data.quotes." + Venue + "." + symbol)
}

func tradesTopic(symbol string) bus.Topic {
	return bus.Topic("data.trades." + Venue + "." + symbol)
}
