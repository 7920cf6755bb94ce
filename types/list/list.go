package list

import (
	"sync"
)

// Element is a node of a List.
type Element[T any] struct {
	Value T

	next, prev *Element[T]
	list       *List[T]
}

// Next returns the next list element or nil.
func (e *Element[T]) Next() *Element[T] {
	if p := e.next; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// Prev returns the previous list element or nil.
func (e *Element[T]) Prev() *Element[T] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// List is a doubly linked list used as a FIFO queue. Insertion order is
// preserved, which is the time half of price-time priority when the list
// queues orders of a single price level.
// NOTE: Not thread-safe.
type List[T any] struct {
	pool *sync.Pool // optional pool used to create/release list elements
	root Element[T] // sentinel element, only &root, root.prev and root.next are used
	len  int
}

// NewList creates new List instance.
func NewList[T any]() *List[T] {
	return NewListPooled[T](nil)
}

// NewListPooled creates new List instance using given pool for element
// creating/releasing.
func NewListPooled[T any](pool *sync.Pool) *List[T] {
	l := new(List[T])
	l.pool = pool
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Front returns the first element of list l or nil if the list is empty.
func (l *List[T]) Front() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// Back returns the last element of list l or nil if the list is empty.
func (l *List[T]) Back() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// Len returns the number of elements of list l.
func (l *List[T]) Len() int {
	return l.len
}

// PushBack appends a new element e with value v to the back of list l and returns e.
func (l *List[T]) PushBack(v T) *Element[T] {
	return l.insertValue(v, l.root.prev)
}

// PushFront inserts a new element e with value v at the front of list l and returns e.
func (l *List[T]) PushFront(v T) *Element[T] {
	return l.insertValue(v, &l.root)
}

// Remove removes e from l if e is an element of list l.
func (l *List[T]) Remove(e *Element[T]) (v T, err error) {
	if e == nil {
		err = ErrElementIsNil
		return
	}
	if e.list != l {
		err = ErrElementNotInList
		return
	}
	v = e.Value
	l.remove(e)
	return
}

// Clean removes all elements, releasing them to the pool when one is used.
func (l *List[T]) Clean() {
	if l.pool != nil {
		for e := l.Front(); e != nil; {
			next := e.next
			// Value is always overwritten on reuse, only the links must go
			e.next, e.prev, e.list = nil, nil, nil
			l.pool.Put(e)
			if next == &l.root {
				break
			}
			e = next
		}
	}
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

func (l *List[T]) insertValue(v T, at *Element[T]) (e *Element[T]) {
	if l.pool != nil {
		e = l.pool.Get().(*Element[T])
		e.Value = v
	} else {
		e = &Element[T]{Value: v}
	}
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.len++
	return e
}

func (l *List[T]) remove(e *Element[T]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	l.len--

	e.next, e.prev, e.list = nil, nil, nil

	if l.pool != nil {
		l.pool.Put(e)
	}
}
