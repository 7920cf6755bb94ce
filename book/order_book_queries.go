package book

import (
	"github.com/yanun0323/logs"

	"github.com/river-walras/nexuscore/fixed"
	"github.com/river-walras/nexuscore/market"
)

////////////////////////////////////////////////////////////////
// Top of book
////////////////////////////////////////////////////////////////

// BestBidPrice returns the highest bid price. The second result is false
// when the buy side is empty.
func (ob *OrderBook) BestBidPrice() (market.Price, bool) {
	top := ob.bids.Top()
	if top == nil {
		return market.Price{}, false
	}
	return top.Price().Value, true
}

// BestAskPrice returns the lowest ask price. The second result is false when
// the sell side is empty.
func (ob *OrderBook) BestAskPrice() (market.Price, bool) {
	top := ob.asks.Top()
	if top == nil {
		return market.Price{}, false
	}
	return top.Price().Value, true
}

// BestBidSize returns the total size resting at the best bid.
func (ob *OrderBook) BestBidSize() (market.Quantity, bool) {
	return topSize(ob.bids)
}

// BestAskSize returns the total size resting at the best ask.
func (ob *OrderBook) BestAskSize() (market.Quantity, bool) {
	return topSize(ob.asks)
}

func topSize(ladder *Ladder) (market.Quantity, bool) {
	top := ladder.Top()
	if top == nil || top.IsEmpty() {
		return market.Quantity{}, false
	}
	orders := top.Orders()
	return top.SizeAsQuantity(orders[0].Size.Precision), true
}

// Spread returns best ask minus best bid. The second result is false unless
// both sides are present.
func (ob *OrderBook) Spread() (float64, bool) {
	bid, okBid := ob.BestBidPrice()
	ask, okAsk := ob.BestAskPrice()
	if !okBid || !okAsk {
		return 0, false
	}
	return ask.AsF64() - bid.AsF64(), true
}

// Midpoint returns the midpoint of the best bid and ask. The second result
// is false unless both sides are present.
func (ob *OrderBook) Midpoint() (float64, bool) {
	bid, okBid := ob.BestBidPrice()
	ask, okAsk := ob.BestAskPrice()
	if !okBid || !okAsk {
		return 0, false
	}
	return (ask.AsF64() + bid.AsF64()) / 2, true
}

////////////////////////////////////////////////////////////////
// Level views
////////////////////////////////////////////////////////////////

// Bids returns up to depth buy levels best first. A non-positive depth
// returns every level.
func (ob *OrderBook) Bids(depth int) []*Level {
	return topLevels(ob.bids, depth)
}

// Asks returns up to depth sell levels best first. A non-positive depth
// returns every level.
func (ob *OrderBook) Asks(depth int) []*Level {
	return topLevels(ob.asks, depth)
}

func topLevels(ladder *Ladder, depth int) []*Level {
	if depth <= 0 {
		depth = ladder.Len()
	}
	levels := make([]*Level, 0, depth)
	ladder.levels.IterateInOrder(func(_ BookPrice, level *Level) bool {
		levels = append(levels, level)
		return len(levels) < depth
	})
	return levels
}

// BidsAsMap returns the buy side as a price to total size map.
func (ob *OrderBook) BidsAsMap() map[market.Price]market.Quantity {
	return ladderAsMap(ob.bids, nil)
}

// AsksAsMap returns the sell side as a price to total size map.
func (ob *OrderBook) AsksAsMap() map[market.Price]market.Quantity {
	return ladderAsMap(ob.asks, nil)
}

// BidsFilteredAsMap returns the buy side with the caller's own resting
// quantities subtracted per price, dropping levels that net to zero.
func (ob *OrderBook) BidsFilteredAsMap(own map[market.Price]market.Quantity) map[market.Price]market.Quantity {
	return ladderAsMap(ob.bids, own)
}

// AsksFilteredAsMap returns the sell side with the caller's own resting
// quantities subtracted per price, dropping levels that net to zero.
func (ob *OrderBook) AsksFilteredAsMap(own map[market.Price]market.Quantity) map[market.Price]market.Quantity {
	return ladderAsMap(ob.asks, own)
}

func ladderAsMap(ladder *Ladder, own map[market.Price]market.Quantity) map[market.Price]market.Quantity {
	out := make(map[market.Price]market.Quantity, ladder.Len())
	ladder.levels.IterateInOrder(func(bp BookPrice, level *Level) bool {
		size := levelQuantity(level)
		if ownSize, ok := own[bp.Value]; ok {
			size = size.Sub(ownSize)
		}
		if size.IsPositive() {
			out[bp.Value] = size
		}
		return true
	})
	return out
}

func levelQuantity(level *Level) market.Quantity {
	precision := fixed.Precision
	if orders := level.Orders(); len(orders) > 0 {
		precision = orders[0].Size.Precision
	}
	return level.SizeAsQuantity(precision)
}

////////////////////////////////////////////////////////////////
// Grouped views
////////////////////////////////////////////////////////////////

// GroupBids buckets the buy side into price bands of the given size, each
// bid floored to a multiple of groupSize. A non-positive depth includes
// every level. A non-positive groupSize is invalid and yields an empty map.
func (ob *OrderBook) GroupBids(groupSize market.Price, depth int) map[market.Price]market.Quantity {
	return groupLadder(ob.bids, groupSize, depth, nil, false)
}

// GroupAsks buckets the sell side into price bands of the given size, each
// ask raised to a multiple of groupSize.
func (ob *OrderBook) GroupAsks(groupSize market.Price, depth int) map[market.Price]market.Quantity {
	return groupLadder(ob.asks, groupSize, depth, nil, true)
}

// GroupBidsFiltered is GroupBids with the caller's own resting quantities
// subtracted per price before bucketing.
func (ob *OrderBook) GroupBidsFiltered(groupSize market.Price, depth int, own map[market.Price]market.Quantity) map[market.Price]market.Quantity {
	return groupLadder(ob.bids, groupSize, depth, own, false)
}

// GroupAsksFiltered is GroupAsks with the caller's own resting quantities
// subtracted per price before bucketing.
func (ob *OrderBook) GroupAsksFiltered(groupSize market.Price, depth int, own map[market.Price]market.Quantity) map[market.Price]market.Quantity {
	return groupLadder(ob.asks, groupSize, depth, own, true)
}

func groupLadder(ladder *Ladder, groupSize market.Price, depth int, own map[market.Price]market.Quantity, roundUp bool) map[market.Price]market.Quantity {
	if groupSize.Raw <= 0 {
		logs.Errorf("invalid grouping size: group_size=%s", groupSize)
		return map[market.Price]market.Quantity{}
	}
	if depth <= 0 {
		depth = ladder.Len()
	}
	out := make(map[market.Price]market.Quantity)
	taken := 0
	ladder.levels.IterateInOrder(func(bp BookPrice, level *Level) bool {
		size := levelQuantity(level)
		if ownSize, ok := own[bp.Value]; ok {
			size = size.Sub(ownSize)
		}
		if !size.IsPositive() {
			return true
		}
		bucket := groupPrice(bp.Value, groupSize, roundUp)
		if prev, ok := out[bucket]; ok {
			out[bucket] = prev.Add(size)
		} else {
			out[bucket] = size
		}
		taken++
		return taken < depth
	})
	return out
}

// groupPrice snaps a price to a multiple of groupSize, downward for bids and
// upward for asks. Raw values share the internal scale, so the bucket math
// works on raws directly.
func groupPrice(price, groupSize market.Price, roundUp bool) market.Price {
	precision := price.Precision
	if groupSize.Precision > precision {
		precision = groupSize.Precision
	}
	q := price.Raw / groupSize.Raw
	r := price.Raw % groupSize.Raw
	if r != 0 {
		if roundUp && price.Raw > 0 {
			q++
		} else if !roundUp && price.Raw < 0 {
			q--
		}
	}
	return market.Price{Raw: q * groupSize.Raw, Precision: precision}
}

////////////////////////////////////////////////////////////////
// Liquidity queries
////////////////////////////////////////////////////////////////

// GetAvgPxForQuantity returns the size-weighted average price to fill the
// given quantity against the side opposing the order. Returns 0 when the
// opposite side holds no liquidity.
func (ob *OrderBook) GetAvgPxForQuantity(qty market.Quantity, side market.OrderSide) float64 {
	ladder, ok := ob.oppositeLadder(side)
	if !ok {
		return 0
	}
	fills := ladder.SimulateFills(market.Price{Raw: market.PriceRawUndef, Precision: 0}, qty)
	var notional, filled float64
	for _, fill := range fills {
		notional += fill.Price.AsF64() * fill.Size.AsF64()
		filled += fill.Size.AsF64()
	}
	if filled == 0 {
		return 0
	}
	return notional / filled
}

// GetAvgPxQtyForExposure walks the side opposing the order until the target
// exposure (price * quantity) is reached and returns the average price, the
// quantity consumed and the exposure actually executed.
func (ob *OrderBook) GetAvgPxQtyForExposure(targetExposure float64, side market.OrderSide) (avgPx, qty, exposure float64) {
	ladder, ok := ob.oppositeLadder(side)
	if !ok {
		return 0, 0, 0
	}
	var notional, filled float64
	ladder.levels.IterateInOrder(func(bp BookPrice, level *Level) bool {
		px := bp.Value.AsF64()
		available := level.Size()
		remaining := targetExposure - notional
		if remaining <= 0 {
			return false
		}
		take := available
		if px*available > remaining {
			take = remaining / px
		}
		notional += px * take
		filled += take
		return notional < targetExposure
	})
	if filled == 0 {
		return 0, 0, 0
	}
	return notional / filled, filled, notional
}

// GetQuantityForPrice returns the cumulative quantity available on the side
// opposing the order at the given limit price or better.
func (ob *OrderBook) GetQuantityForPrice(price market.Price, side market.OrderSide) float64 {
	ladder, ok := ob.oppositeLadder(side)
	if !ok {
		return 0
	}
	var total float64
	ladder.levels.IterateInOrder(func(bp BookPrice, level *Level) bool {
		if !ladder.crossable(price, bp.Value) {
			return false
		}
		total += level.Size()
		return true
	})
	return total
}

// GetQuantityAtLevel returns the quantity resting exactly at the price on
// the given side of the book, or zero when no such level exists.
func (ob *OrderBook) GetQuantityAtLevel(price market.Price, side market.OrderSide, sizePrecision uint8) market.Quantity {
	ladder, ok := ob.sameLadder(side)
	if !ok {
		return market.Quantity{Precision: sizePrecision}
	}
	node := ladder.levels.Find(NewBookPrice(price, side))
	if node == nil {
		return market.Quantity{Precision: sizePrecision}
	}
	return node.Value().SizeAsQuantity(sizePrecision)
}

// SimulateFills reports the fills a hypothetical aggressive order would
// receive against the opposing side without modifying the book.
func (ob *OrderBook) SimulateFills(order market.BookOrder) []Fill {
	ladder, ok := ob.oppositeLadder(order.Side)
	if !ok {
		return nil
	}
	return ladder.SimulateFills(order.Price, order.Size)
}

// GetAllCrossedLevels returns every opposing level a hypothetical order at
// the given price would cross, regardless of the order's size. Each entry
// carries the level's full resting quantity.
func (ob *OrderBook) GetAllCrossedLevels(side market.OrderSide, price market.Price, sizePrecision uint8) []Fill {
	ladder, ok := ob.oppositeLadder(side)
	if !ok {
		return nil
	}
	var crossed []Fill
	ladder.levels.IterateInOrder(func(bp BookPrice, level *Level) bool {
		if !ladder.crossable(price, bp.Value) {
			return false
		}
		crossed = append(crossed, Fill{Price: bp.Value, Size: level.SizeAsQuantity(sizePrecision)})
		return true
	})
	return crossed
}

func (ob *OrderBook) oppositeLadder(side market.OrderSide) (*Ladder, bool) {
	switch side {
	case market.OrderSideBuy:
		return ob.asks, true
	case market.OrderSideSell:
		return ob.bids, true
	default:
		return nil, false
	}
}

func (ob *OrderBook) sameLadder(side market.OrderSide) (*Ladder, bool) {
	switch side {
	case market.OrderSideBuy:
		return ob.bids, true
	case market.OrderSideSell:
		return ob.asks, true
	default:
		return nil, false
	}
}
