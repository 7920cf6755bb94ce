package market

import "fmt"

// OrderBookDelta is a single mutation of an order book.
type OrderBookDelta struct {
	InstrumentID InstrumentID
	Action       BookAction
	Order        BookOrder
	Flags        RecordFlags
	Sequence     uint64
	TsEvent      UnixNanos
}

// NewOrderBookDelta creates a new OrderBookDelta.
func NewOrderBookDelta(
	instrumentID InstrumentID,
	action BookAction,
	order BookOrder,
	flags RecordFlags,
	sequence uint64,
	tsEvent UnixNanos,
) OrderBookDelta {
	return OrderBookDelta{
		InstrumentID: instrumentID,
		Action:       action,
		Order:        order,
		Flags:        flags,
		Sequence:     sequence,
		TsEvent:      tsEvent,
	}
}

// ClearDelta creates a delta clearing the whole book.
func ClearDelta(instrumentID InstrumentID, sequence uint64, tsEvent UnixNanos) OrderBookDelta {
	return OrderBookDelta{
		InstrumentID: instrumentID,
		Action:       BookActionClear,
		Sequence:     sequence,
		TsEvent:      tsEvent,
	}
}

func (d OrderBookDelta) String() string {
	return fmt.Sprintf(
		"OrderBookDelta{instrument_id=%s action=%s order=%s flags=%#x sequence=%d ts_event=%d}",
		d.InstrumentID, d.Action, d.Order, uint8(d.Flags), d.Sequence, d.TsEvent,
	)
}

// OrderBookDeltas is a batch of deltas for one instrument, as published on
// the bus after ingesting a single market event.
type OrderBookDeltas struct {
	InstrumentID InstrumentID
	Deltas       []OrderBookDelta
}

// NewOrderBookDeltas creates a new OrderBookDeltas batch.
func NewOrderBookDeltas(instrumentID InstrumentID, deltas []OrderBookDelta) OrderBookDeltas {
	return OrderBookDeltas{InstrumentID: instrumentID, Deltas: deltas}
}
