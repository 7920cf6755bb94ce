package market

// OrderSide is an enumeration of possible trading sides (buy/sell).
// The numeric values are part of the wire contract and double as the
// synthetic order ids of L1 top-of-book entries.
type OrderSide uint8

const (
	// NoOrderSide represents an absent or not yet resolved side.
	NoOrderSide OrderSide = 0
	// OrderSideBuy represents market side which includes only buy orders (bids).
	OrderSideBuy OrderSide = 1
	// OrderSideSell represents market side which includes only sell orders (asks).
	OrderSideSell OrderSide = 2
)

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "buy"
	case OrderSideSell:
		return "sell"
	case NoOrderSide:
		return "no_order_side"
	default:
		return "unknown"
	}
}

// Opposite returns the opposing side, or NoOrderSide unchanged.
func (s OrderSide) Opposite() OrderSide {
	switch s {
	case OrderSideBuy:
		return OrderSideSell
	case OrderSideSell:
		return OrderSideBuy
	default:
		return NoOrderSide
	}
}

////////////////////////////////////////////////////////////////

// BookType is an enumeration of order book granularities.
type BookType uint8

const (
	// BookTypeL1MBP keeps only the best bid and best ask.
	BookTypeL1MBP BookType = 1
	// BookTypeL2MBP keeps every visible price with quantities aggregated per price.
	BookTypeL2MBP BookType = 2
	// BookTypeL3MBO keeps every individual resting order.
	BookTypeL3MBO BookType = 3
)

func (t BookType) String() string {
	switch t {
	case BookTypeL1MBP:
		return "L1_MBP"
	case BookTypeL2MBP:
		return "L2_MBP"
	case BookTypeL3MBO:
		return "L3_MBO"
	default:
		return "unknown"
	}
}

////////////////////////////////////////////////////////////////

// BookAction is an enumeration of possible order book mutations.
type BookAction uint8

const (
	// BookActionAdd represents adding a new order to the book.
	BookActionAdd BookAction = 1
	// BookActionUpdate represents updating an existing order in the book.
	BookActionUpdate BookAction = 2
	// BookActionDelete represents deleting an existing order from the book.
	BookActionDelete BookAction = 3
	// BookActionClear represents clearing the entire book side or book.
	BookActionClear BookAction = 4
)

func (a BookAction) String() string {
	switch a {
	case BookActionAdd:
		return "add"
	case BookActionUpdate:
		return "update"
	case BookActionDelete:
		return "delete"
	case BookActionClear:
		return "clear"
	default:
		return "unknown"
	}
}
