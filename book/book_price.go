package book

import (
	"fmt"

	"github.com/river-walras/nexuscore/market"
)

// BookPrice is a side-aware price key. Ordering is side-specific so that the
// best level of either ladder always sorts first: for bids the larger price
// is better, for asks the smaller. Comparing prices of different sides is a
// programmer bug and panics.
type BookPrice struct {
	Value market.Price
	Side  market.OrderSide
}

// NewBookPrice creates a new BookPrice.
func NewBookPrice(value market.Price, side market.OrderSide) BookPrice {
	return BookPrice{Value: value, Side: side}
}

// Cmp orders two prices of the same side best-first.
func (p BookPrice) Cmp(other BookPrice) int {
	if p.Side != other.Side {
		panic(fmt.Sprintf("cannot compare book prices of different sides: %s vs %s", p.Side, other.Side))
	}
	switch p.Side {
	case market.OrderSideBuy:
		return -p.Value.Cmp(other.Value)
	case market.OrderSideSell:
		return p.Value.Cmp(other.Value)
	default:
		panic("cannot compare book prices without a side")
	}
}

// Equals reports whether both price and side match.
func (p BookPrice) Equals(other BookPrice) bool {
	return p.Side == other.Side && p.Value.Raw == other.Value.Raw
}

func (p BookPrice) String() string {
	return fmt.Sprintf("%s[%s]", p.Value, p.Side)
}
