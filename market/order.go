package market

import (
	"fmt"

	"lukechampine.com/uint128"

	"github.com/river-walras/nexuscore/fixed"
)

// BookOrder is a single resting order as represented in the book: for L3
// books an actual order, for L1/L2 books the synthetic order carrying a
// price level's aggregate size.
type BookOrder struct {
	Side    OrderSide
	Price   Price
	Size    Quantity
	OrderID OrderID
}

// NewBookOrder creates a new BookOrder.
func NewBookOrder(side OrderSide, price Price, size Quantity, orderID OrderID) BookOrder {
	return BookOrder{
		Side:    side,
		Price:   price,
		Size:    size,
		OrderID: orderID,
	}
}

// Exposure returns price * size. The raw product needs 128 bits before it is
// scaled back down, so the multiply goes through uint128.
func (o BookOrder) Exposure() float64 {
	praw := o.Price.Raw
	neg := praw < 0
	if neg {
		praw = -praw
	}
	product := uint128.From64(uint64(praw)).Mul64(o.Size.Raw).Div64(uint64(fixed.Scalar))
	exposure := fixed.U128ToF64(product) / float64(fixed.Scalar)
	if neg {
		return -exposure
	}
	return exposure
}

func (o BookOrder) String() string {
	return fmt.Sprintf("BookOrder{side=%s price=%s size=%s order_id=%d}", o.Side, o.Price, o.Size, o.OrderID)
}
