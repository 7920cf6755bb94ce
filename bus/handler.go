package bus

// TypedHandler consumes published messages of a single type. Identity is by
// id only: two handlers with the same id are the same subscriber to the bus
// regardless of the function behind them.
type TypedHandler[T any] interface {
	ID() string
	Handle(message T)
}

// Handler is the dynamic-dispatch form used by the Any path and by
// endpoints; subscribers downcast the message themselves.
type Handler = TypedHandler[any]

type handlerFunc[T any] struct {
	id string
	fn func(message T)
}

// NewHandler wraps a function as a TypedHandler with the given id.
func NewHandler[T any](id string, fn func(message T)) TypedHandler[T] {
	return &handlerFunc[T]{id: id, fn: fn}
}

func (h *handlerFunc[T]) ID() string {
	return h.id
}

func (h *handlerFunc[T]) Handle(message T) {
	h.fn(message)
}
