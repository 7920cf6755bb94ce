package market

import "fmt"

// InstrumentID identifies a tradable instrument on a venue.
type InstrumentID struct {
	Symbol string
	Venue  string
}

// NewInstrumentID creates a new InstrumentID from symbol and venue.
func NewInstrumentID(symbol, venue string) InstrumentID {
	return InstrumentID{Symbol: symbol, Venue: venue}
}

func (id InstrumentID) String() string {
	return fmt.Sprintf("%s.%s", id.Symbol, id.Venue)
}

// OrderID identifies an order, unique per book side within a ladder.
type OrderID uint64

// TradeID identifies a trade as assigned by the venue.
type TradeID string

// UnixNanos is a UTC timestamp in nanoseconds since the Unix epoch.
type UnixNanos uint64
