package bus

import "strings"

// Subscription binds a handler to a topic pattern. Priority breaks dispatch
// ties: higher priorities fire first. The default priority 0 is right for
// almost every subscriber; priorities exist for the rare consumer that must
// observe a message before the rest (throttlers, risk checks).
type Subscription[T any] struct {
	Pattern  Pattern
	Handler  TypedHandler[T]
	Priority uint8
}

// compare orders subscriptions for dispatch: priority descending, then
// pattern ascending, then handler id ascending. Ties are impossible since a
// (pattern, handler id) pair subscribes at most once.
func (s Subscription[T]) compare(other Subscription[T]) int {
	if s.Priority != other.Priority {
		if s.Priority > other.Priority {
			return -1
		}
		return 1
	}
	if c := strings.Compare(string(s.Pattern), string(other.Pattern)); c != 0 {
		return c
	}
	return strings.Compare(s.Handler.ID(), other.Handler.ID())
}

// is reports whether the subscription binds the given pattern and handler id.
func (s Subscription[T]) is(pattern Pattern, handlerID string) bool {
	return s.Pattern == pattern && s.Handler.ID() == handlerID
}
