package book

import (
	"github.com/tidwall/hashmap"
	"github.com/yanun0323/logs"

	"github.com/river-walras/nexuscore/market"
	"github.com/river-walras/nexuscore/types/avl"
)

const defaultReservedOrderSlots = 64

////////////////////////////////////////////////////////////////
// Ladder
////////////////////////////////////////////////////////////////

// Ladder holds one side of an order book as price levels sorted best first.
// Buy ladders sort descending by price, sell ladders ascending, so the most
// left tree node is always the best level on either side.
//
// NOTE: Not thread-safe.
type Ladder struct {
	side     market.OrderSide
	bookType market.BookType
	levels   avl.Tree[BookPrice, *Level]
	cache    *hashmap.Map[market.OrderID, BookPrice]
	batch    l1BatchState
	alloc    *Allocator
}

// NewLadder creates a new ladder for the given side.
func NewLadder(side market.OrderSide, bookType market.BookType, alloc *Allocator) *Ladder {
	return &Ladder{
		side:     side,
		bookType: bookType,
		levels: avl.NewTreePooled[BookPrice, *Level](
			func(a, b BookPrice) int { return a.Cmp(b) },
			alloc.LevelNodes(),
		),
		cache: hashmap.New[market.OrderID, BookPrice](defaultReservedOrderSlots),
		alloc: alloc,
	}
}

// Side returns the ladder side.
func (l *Ladder) Side() market.OrderSide {
	return l.side
}

// Len returns the number of price levels in the ladder.
func (l *Ladder) Len() int {
	return l.levels.Size()
}

// OrderCount returns the total number of resting orders across all levels.
func (l *Ladder) OrderCount() int {
	return l.cache.Len()
}

// ContainsOrder reports whether an order with the given id rests in the ladder.
func (l *Ladder) ContainsOrder(id market.OrderID) bool {
	_, ok := l.cache.Get(id)
	return ok
}

// Top returns the best level of the ladder, or nil when the ladder is empty.
func (l *Ladder) Top() *Level {
	node := l.levels.MostLeft()
	if node == nil {
		return nil
	}
	return node.Value()
}

////////////////////////////////////////////////////////////////
// Mutations
////////////////////////////////////////////////////////////////

// Add inserts an order into the ladder. L1 ladders route through the
// top-of-book state machine instead of accumulating levels.
func (l *Ladder) Add(order market.BookOrder, flags market.RecordFlags) {
	if l.bookType == market.BookTypeL1MBP {
		l.addL1(order, flags)
		return
	}
	if !order.Size.IsPositive() {
		logs.Warnf("rejecting add with non-positive size: order_id=%d size=%s", order.OrderID, order.Size)
		return
	}
	l.insert(order)
}

// Update modifies the order with the matching id, moving it across levels
// when the price changed. An unknown order id is treated as an add.
func (l *Ladder) Update(order market.BookOrder, flags market.RecordFlags) {
	price, ok := l.cache.Get(order.OrderID)
	if !ok {
		l.Add(order, flags)
		return
	}
	bp := NewBookPrice(order.Price, l.side)
	if bp.Equals(price) {
		node := l.levels.Find(price)
		if node == nil {
			logs.Warnf("cached price missing from ladder: order_id=%d price=%s", order.OrderID, price)
			l.cache.Delete(order.OrderID)
			return
		}
		level := node.Value()
		if !order.Size.IsPositive() {
			level.Delete(order.OrderID)
			l.cache.Delete(order.OrderID)
			if level.IsEmpty() {
				l.removeLevel(price, level)
			}
			return
		}
		if !level.Update(order) {
			level.Append(order)
		}
		return
	}
	// Price moved, relocate.
	l.Delete(order.OrderID)
	if order.Size.IsPositive() {
		l.insert(order)
	}
}

// Delete removes the order with the given id. Unknown ids are ignored.
func (l *Ladder) Delete(id market.OrderID) {
	price, ok := l.cache.Get(id)
	if !ok {
		return
	}
	l.cache.Delete(id)
	node := l.levels.Find(price)
	if node == nil {
		logs.Warnf("cached price missing from ladder: order_id=%d price=%s", id, price)
		return
	}
	level := node.Value()
	level.Delete(id)
	if level.IsEmpty() {
		l.removeLevel(price, level)
	}
}

// RemoveLevel removes an entire price level and evicts its orders from the
// cache. It reports whether a level existed at the price.
func (l *Ladder) RemoveLevel(price BookPrice) bool {
	node := l.levels.Find(price)
	if node == nil {
		return false
	}
	l.removeLevelEvict(price, node.Value())
	return true
}

// Clear removes every level and order from the ladder and resets any
// in-flight batch state.
func (l *Ladder) Clear() {
	l.levels.IteratePostOrder(func(level *Level) bool {
		l.alloc.PutLevel(level)
		return true
	})
	l.levels.Clear()
	l.cache = hashmap.New[market.OrderID, BookPrice](defaultReservedOrderSlots)
	l.batch = l1BatchNone
}

func (l *Ladder) insert(order market.BookOrder) {
	bp := NewBookPrice(order.Price, l.side)
	var level *Level
	if node := l.levels.Find(bp); node != nil {
		level = node.Value()
	} else {
		level = l.alloc.GetLevel(bp)
		if _, err := l.levels.Add(bp, level); err != nil {
			logs.Errorf("failed to add price level: price=%s err=%s", bp, err)
			l.alloc.PutLevel(level)
			return
		}
	}
	level.Append(order)
	l.cache.Set(order.OrderID, bp)
}

func (l *Ladder) addL1(order market.BookOrder, flags market.RecordFlags) {
	action := l1Transition(l.batch, flags, !order.Size.IsPositive())
	if action.ClearFirst {
		l.Clear()
	}
	l.batch = action.Next
	if action.SkipAdd {
		return
	}
	l.insert(order)
	l.retainOnly(action.Retain, NewBookPrice(order.Price, l.side))
}

// retainOnly collapses the ladder down to a single surviving level after an
// L1 add. With l1RetainStanding the level that was resting before the add
// survives; otherwise the best level does.
func (l *Ladder) retainOnly(retain l1Retain, added BookPrice) {
	if l.levels.Size() <= 1 {
		return
	}
	var keep BookPrice
	switch retain {
	case l1RetainStanding:
		found := false
		l.levels.IterateInOrder(func(price BookPrice, _ *Level) bool {
			if !price.Equals(added) {
				keep = price
				found = true
				return false
			}
			return true
		})
		if !found {
			keep = l.levels.MostLeft().Key()
		}
	default:
		keep = l.levels.MostLeft().Key()
	}
	var drop []BookPrice
	l.levels.IterateInOrder(func(price BookPrice, _ *Level) bool {
		if !price.Equals(keep) {
			drop = append(drop, price)
		}
		return true
	})
	for _, price := range drop {
		node := l.levels.Find(price)
		if node == nil {
			continue
		}
		l.removeLevelEvict(price, node.Value())
	}
}

func (l *Ladder) removeLevel(price BookPrice, level *Level) {
	if _, err := l.levels.Remove(price); err != nil {
		logs.Errorf("failed to remove price level: price=%s err=%s", price, err)
		return
	}
	l.alloc.PutLevel(level)
}

func (l *Ladder) removeLevelEvict(price BookPrice, level *Level) {
	for _, id := range level.OrderIDs() {
		l.cache.Delete(id)
	}
	l.removeLevel(price, level)
}

////////////////////////////////////////////////////////////////
// Simulation
////////////////////////////////////////////////////////////////

// Fill is one (price, quantity) pair produced by a fill simulation.
type Fill struct {
	Price market.Price
	Size  market.Quantity
}

// SimulateFills walks the ladder best first and reports the fills an
// aggressive order of the given size and limit price would receive. A buy
// ladder fills sell aggressors whose limit is at or below a level's price,
// and vice versa. The ladder is not modified.
func (l *Ladder) SimulateFills(price market.Price, size market.Quantity) []Fill {
	var fills []Fill
	remaining := size
	l.levels.IterateInOrder(func(bp BookPrice, level *Level) bool {
		if remaining.IsZero() {
			return false
		}
		if !l.crossable(price, bp.Value) {
			return false
		}
		avail := level.SizeAsQuantity(size.Precision)
		fill := remaining.Min(avail)
		if fill.IsZero() {
			return true
		}
		fills = append(fills, Fill{Price: bp.Value, Size: fill})
		remaining = remaining.Sub(fill)
		return true
	})
	return fills
}

// crossable reports whether an aggressor limit crosses a resting level on
// this ladder. An undefined aggressor price is treated as a market order.
func (l *Ladder) crossable(limit market.Price, level market.Price) bool {
	if limit.IsUndefined() {
		return true
	}
	if l.side == market.OrderSideBuy {
		// Resting buys fill sell aggressors priced at or below them.
		return limit.Cmp(level) <= 0
	}
	return limit.Cmp(level) >= 0
}
