package book

import (
	"sync"

	"github.com/river-walras/nexuscore/market"
	"github.com/river-walras/nexuscore/types/avl"
	"github.com/river-walras/nexuscore/types/list"
)

// Allocator encapsulates allocation of all pooled book objects so that a
// steady stream of deltas touches the heap as little as possible.
type Allocator struct {

	// Price levels
	levels sync.Pool

	// Pools used by containers
	levelNodes    sync.Pool // used by avl.Tree[BookPrice, *Level]
	queueElements sync.Pool // used by list.List[market.BookOrder]
}

// NewAllocator creates and returns new Allocator instance.
func NewAllocator() *Allocator {
	a := new(Allocator)
	a.levels = sync.Pool{New: func() any {
		return &Level{
			queue: list.NewListPooled[market.BookOrder](&a.queueElements),
			index: make(map[market.OrderID]*list.Element[market.BookOrder]),
		}
	}}
	a.levelNodes = sync.Pool{New: func() any {
		return new(avl.Node[BookPrice, *Level])
	}}
	a.queueElements = sync.Pool{New: func() any {
		return new(list.Element[market.BookOrder])
	}}
	return a
}

// GetLevel allocates a Level instance with the given price.
func (a *Allocator) GetLevel(price BookPrice) *Level {
	level := a.levels.Get().(*Level)
	level.price = price
	return level
}

// PutLevel releases a Level instance.
func (a *Allocator) PutLevel(level *Level) {
	level.Clean()
	a.levels.Put(level)
}

// LevelNodes returns the pool backing ladder tree nodes.
func (a *Allocator) LevelNodes() *sync.Pool {
	return &a.levelNodes
}
