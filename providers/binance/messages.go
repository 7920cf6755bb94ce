package binance

// DepthUpdateMessage is a diff-depth stream event. Bids and asks carry
// absolute sizes per price as decimal strings; a zero size removes the
// price level.
type DepthUpdateMessage struct {
	EventTime     uint64 // milliseconds since epoch
	Symbol        string
	FirstUpdateID uint64
	FinalUpdateID uint64
	Bids          [][2]string
	Asks          [][2]string
}

// TradeMessage is a trade stream event.
type TradeMessage struct {
	EventTime    uint64 // milliseconds since epoch
	Symbol       string
	TradeID      uint64
	Price        string
	Quantity     string
	TradeTime    uint64 // milliseconds since epoch
	BuyerIsMaker bool
}

// UnknownMessage carries the raw payload of an event type the processor does
// not dispatch.
type UnknownMessage struct {
	EventType string
	Data      []byte
}
