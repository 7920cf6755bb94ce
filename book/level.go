package book

import (
	"lukechampine.com/uint128"

	"github.com/river-walras/nexuscore/fixed"
	"github.com/river-walras/nexuscore/market"
	"github.com/river-walras/nexuscore/types/list"
)

// Level is a FIFO queue of orders resting at a single price. Queue position
// is insertion order, which is the time half of price-time priority. An
// order id index keeps update and delete O(1) within the level.
// NOTE: Not thread-safe.
type Level struct {
	price BookPrice
	queue *list.List[market.BookOrder]
	index map[market.OrderID]*list.Element[market.BookOrder]
}

// NewLevel creates and returns new Level instance.
func NewLevel(price BookPrice) *Level {
	return &Level{
		price: price,
		queue: list.NewList[market.BookOrder](),
		index: make(map[market.OrderID]*list.Element[market.BookOrder]),
	}
}

// Price returns the price of the level.
func (l *Level) Price() BookPrice {
	return l.price
}

// Len returns the amount of orders queued in the level.
func (l *Level) Len() int {
	return l.queue.Len()
}

// IsEmpty returns true when the level holds no orders.
func (l *Level) IsEmpty() bool {
	return l.queue.Len() == 0
}

// Append enqueues the order at the back of the level. An order id already
// present is replaced in place, keeping its queue position.
func (l *Level) Append(order market.BookOrder) {
	if e, ok := l.index[order.OrderID]; ok {
		e.Value = order
		return
	}
	l.index[order.OrderID] = l.queue.PushBack(order)
}

// Update replaces the matching order in place. A zero-sized update deletes
// the order. Returns false when the order id is not in the level.
func (l *Level) Update(order market.BookOrder) bool {
	e, ok := l.index[order.OrderID]
	if !ok {
		return false
	}
	if !order.Size.IsPositive() {
		l.Delete(order.OrderID)
		return true
	}
	e.Value = order
	return true
}

// Delete removes the order with given id from the level.
func (l *Level) Delete(orderID market.OrderID) (market.BookOrder, bool) {
	e, ok := l.index[orderID]
	if !ok {
		return market.BookOrder{}, false
	}
	delete(l.index, orderID)
	order, _ := l.queue.Remove(e)
	return order, true
}

// ContainsOrder reports whether the order id rests in this level.
func (l *Level) ContainsOrder(orderID market.OrderID) bool {
	_, ok := l.index[orderID]
	return ok
}

// SizeRaw returns total size of the level at the internal fixed-point scale.
func (l *Level) SizeRaw() uint64 {
	var total uint64
	for e := l.queue.Front(); e != nil; e = e.Next() {
		total += e.Value.Size.Raw
	}
	return total
}

// Size returns total size of the level as a float.
func (l *Level) Size() float64 {
	return fixed.FixedU64ToF64(l.SizeRaw())
}

// SizeAsQuantity returns total size of the level at the given precision.
func (l *Level) SizeAsQuantity(precision uint8) market.Quantity {
	return market.Quantity{Raw: l.SizeRaw(), Precision: precision}
}

// Exposure returns the total notional value of the level (sum of
// price * size over the queue). Raw products need 128 bits before they are
// scaled back down.
func (l *Level) Exposure() float64 {
	praw := l.price.Value.Raw
	neg := praw < 0
	if neg {
		praw = -praw
	}
	product := uint128.From64(uint64(praw)).Mul64(l.SizeRaw()).Div64(uint64(fixed.Scalar))
	exposure := fixed.U128ToF64(product) / float64(fixed.Scalar)
	if neg {
		return -exposure
	}
	return exposure
}

// Orders returns the queued orders in FIFO order.
func (l *Level) Orders() []market.BookOrder {
	orders := make([]market.BookOrder, 0, l.queue.Len())
	for e := l.queue.Front(); e != nil; e = e.Next() {
		orders = append(orders, e.Value)
	}
	return orders
}

// OrderIDs returns the ids of the queued orders in FIFO order.
func (l *Level) OrderIDs() []market.OrderID {
	ids := make([]market.OrderID, 0, l.queue.Len())
	for e := l.queue.Front(); e != nil; e = e.Next() {
		ids = append(ids, e.Value.OrderID)
	}
	return ids
}

// Clean resets the level for reuse.
func (l *Level) Clean() {
	l.price = BookPrice{}
	l.queue.Clean()
	clear(l.index)
}
