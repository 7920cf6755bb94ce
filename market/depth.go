package market

// DepthLevels is the fixed number of bid and ask slots in a depth record.
const DepthLevels = 10

// OrderBookDepth10 is a fixed-size snapshot of the top ten levels per side.
// Unused slots carry NoOrderSide and zero size, and are skipped on apply.
type OrderBookDepth10 struct {
	InstrumentID InstrumentID
	Bids         [DepthLevels]BookOrder
	Asks         [DepthLevels]BookOrder
	Flags        RecordFlags
	Sequence     uint64
	TsEvent      UnixNanos
}

// NewOrderBookDepth10 creates a new OrderBookDepth10 snapshot.
func NewOrderBookDepth10(
	instrumentID InstrumentID,
	bids, asks [DepthLevels]BookOrder,
	flags RecordFlags,
	sequence uint64,
	tsEvent UnixNanos,
) OrderBookDepth10 {
	return OrderBookDepth10{
		InstrumentID: instrumentID,
		Bids:         bids,
		Asks:         asks,
		Flags:        flags,
		Sequence:     sequence,
		TsEvent:      tsEvent,
	}
}
