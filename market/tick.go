package market

import "fmt"

// QuoteTick is a single top-of-book update.
type QuoteTick struct {
	InstrumentID InstrumentID
	BidPrice     Price
	AskPrice     Price
	BidSize      Quantity
	AskSize      Quantity
	TsEvent      UnixNanos
	TsInit       UnixNanos
}

func (q QuoteTick) String() string {
	return fmt.Sprintf(
		"QuoteTick{instrument_id=%s bid=%s ask=%s bid_size=%s ask_size=%s ts_event=%d}",
		q.InstrumentID, q.BidPrice, q.AskPrice, q.BidSize, q.AskSize, q.TsEvent,
	)
}

// TradeTick is a single executed trade.
type TradeTick struct {
	InstrumentID  InstrumentID
	Price         Price
	Size          Quantity
	AggressorSide OrderSide
	TradeID       TradeID
	TsEvent       UnixNanos
	TsInit        UnixNanos
}

func (t TradeTick) String() string {
	return fmt.Sprintf(
		"TradeTick{instrument_id=%s price=%s size=%s aggressor=%s trade_id=%s ts_event=%d}",
		t.InstrumentID, t.Price, t.Size, t.AggressorSide, t.TradeID, t.TsEvent,
	)
}
