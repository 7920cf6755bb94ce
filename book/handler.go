package book

import "github.com/river-walras/nexuscore/market"

//go:generate mockgen -destination=mocks/interfaces.go -package=mockbook . Handler
type Handler interface {

	// OnBookUpdate is called after every record successfully applied to the book.
	OnBookUpdate(orderBook *OrderBook, delta market.OrderBookDelta)

	// OnBookCleared is called after the book is emptied by a clear action.
	OnBookCleared(orderBook *OrderBook)

	// OnStaleLevels is called after crossed-book remediation removed levels
	// from the given side.
	OnStaleLevels(orderBook *OrderBook, side market.OrderSide, removed int)
}

// NoopHandler is a Handler that ignores every event.
type NoopHandler struct{}

func (NoopHandler) OnBookUpdate(*OrderBook, market.OrderBookDelta)  {}
func (NoopHandler) OnBookCleared(*OrderBook)                        {}
func (NoopHandler) OnStaleLevels(*OrderBook, market.OrderSide, int) {}
