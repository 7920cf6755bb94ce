package market

// PartialQuote is a top-of-book update where any field may be absent.
// Some venues send one-sided quote updates; absent fields inherit the value
// of the previously cached quote.
type PartialQuote struct {
	InstrumentID InstrumentID
	BidPrice     *Price
	AskPrice     *Price
	BidSize      *Quantity
	AskSize      *Quantity
	TsEvent      UnixNanos
	TsInit       UnixNanos
}

// MergeQuote completes a partial quote against the previously cached quote.
// A field that is absent in both the partial and the cache is an error
// naming the field.
func MergeQuote(prev *QuoteTick, partial PartialQuote) (QuoteTick, error) {
	quote := QuoteTick{
		InstrumentID: partial.InstrumentID,
		TsEvent:      partial.TsEvent,
		TsInit:       partial.TsInit,
	}

	switch {
	case partial.BidPrice != nil:
		quote.BidPrice = *partial.BidPrice
	case prev != nil:
		quote.BidPrice = prev.BidPrice
	default:
		return QuoteTick{}, MissingFieldError{Field: "bid_price"}
	}

	switch {
	case partial.AskPrice != nil:
		quote.AskPrice = *partial.AskPrice
	case prev != nil:
		quote.AskPrice = prev.AskPrice
	default:
		return QuoteTick{}, MissingFieldError{Field: "ask_price"}
	}

	switch {
	case partial.BidSize != nil:
		quote.BidSize = *partial.BidSize
	case prev != nil:
		quote.BidSize = prev.BidSize
	default:
		return QuoteTick{}, MissingFieldError{Field: "bid_size"}
	}

	switch {
	case partial.AskSize != nil:
		quote.AskSize = *partial.AskSize
	case prev != nil:
		quote.AskSize = prev.AskSize
	default:
		return QuoteTick{}, MissingFieldError{Field: "ask_size"}
	}

	return quote, nil
}
