package bus

import (
	"sort"

	"github.com/tidwall/hashmap"
	"github.com/yanun0323/logs"
)

const defaultReservedTopicSlots = 16

////////////////////////////////////////////////////////////////
// Topic router
////////////////////////////////////////////////////////////////

// TopicRouter dispatches messages of one type to pattern subscribers. The
// subscription list stays sorted in dispatch order and a per-topic cache
// avoids re-matching patterns on every publish.
//
// NOTE: Not thread-safe.
type TopicRouter[T any] struct {
	subs   []Subscription[T]
	topics *hashmap.Map[Topic, []Subscription[T]]
	buffer []TypedHandler[T]
}

// NewTopicRouter creates a new TopicRouter instance.
func NewTopicRouter[T any]() *TopicRouter[T] {
	return &TopicRouter[T]{
		topics: hashmap.New[Topic, []Subscription[T]](defaultReservedTopicSlots),
	}
}

// Subscribe registers the handler for every topic matching the pattern. A
// duplicate (pattern, handler id) pair is a no-op with a warning.
func (r *TopicRouter[T]) Subscribe(pattern Pattern, handler TypedHandler[T], priority uint8) {
	for _, sub := range r.subs {
		if sub.is(pattern, handler.ID()) {
			logs.Warnf("duplicate subscription ignored: pattern=%s handler=%s", pattern, handler.ID())
			return
		}
	}
	sub := Subscription[T]{Pattern: pattern, Handler: handler, Priority: priority}
	r.subs = insertSorted(r.subs, sub)

	// Already-cached topics that the pattern covers pick up the new
	// subscription immediately.
	var covered []Topic
	r.topics.Scan(func(topic Topic, _ []Subscription[T]) bool {
		if pattern.Matches(topic) {
			covered = append(covered, topic)
		}
		return true
	})
	for _, topic := range covered {
		cached, _ := r.topics.Get(topic)
		r.topics.Set(topic, insertSorted(cached, sub))
	}
}

// Unsubscribe removes the (pattern, handler id) subscription. Unknown
// subscriptions are a no-op with a warning.
func (r *TopicRouter[T]) Unsubscribe(pattern Pattern, handlerID string) {
	idx := -1
	for i, sub := range r.subs {
		if sub.is(pattern, handlerID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		logs.Warnf("unsubscribe of unknown subscription ignored: pattern=%s handler=%s", pattern, handlerID)
		return
	}
	r.subs = append(r.subs[:idx], r.subs[idx+1:]...)

	// Drop cache entries the pattern covers; the next publish refills them.
	var stale []Topic
	r.topics.Scan(func(topic Topic, _ []Subscription[T]) bool {
		if pattern.Matches(topic) {
			stale = append(stale, topic)
		}
		return true
	})
	for _, topic := range stale {
		r.topics.Delete(topic)
	}
}

// IsSubscribed reports whether the (pattern, handler id) pair is registered.
func (r *TopicRouter[T]) IsSubscribed(pattern Pattern, handlerID string) bool {
	for _, sub := range r.subs {
		if sub.is(pattern, handlerID) {
			return true
		}
	}
	return false
}

// Len returns the number of subscriptions.
func (r *TopicRouter[T]) Len() int {
	return len(r.subs)
}

// Publish delivers the message to every subscriber whose pattern matches the
// topic, in priority order. The matching handlers are snapshotted into a
// reusable buffer before any of them runs, so a handler may itself publish,
// subscribe or unsubscribe; mutations become visible on the next publish.
func (r *TopicRouter[T]) Publish(topic Topic, message T) {
	buffer := r.buffer
	r.buffer = nil
	if buffer == nil {
		buffer = make([]TypedHandler[T], 0, 8)
	}

	for _, sub := range r.matching(topic) {
		buffer = append(buffer, sub.Handler)
	}
	for _, handler := range buffer {
		handler.Handle(message)
	}

	clear(buffer)
	r.buffer = buffer[:0]
}

// matching returns the cached dispatch list for the topic, filling the cache
// on first use.
func (r *TopicRouter[T]) matching(topic Topic) []Subscription[T] {
	if cached, ok := r.topics.Get(topic); ok {
		return cached
	}
	var matched []Subscription[T]
	for _, sub := range r.subs {
		if sub.Pattern.Matches(topic) {
			matched = append(matched, sub)
		}
	}
	r.topics.Set(topic, matched)
	return matched
}

// insertSorted places the subscription at its dispatch position.
func insertSorted[T any](subs []Subscription[T], sub Subscription[T]) []Subscription[T] {
	idx := sort.Search(len(subs), func(i int) bool {
		return subs[i].compare(sub) > 0
	})
	subs = append(subs, Subscription[T]{})
	copy(subs[idx+1:], subs[idx:])
	subs[idx] = sub
	return subs
}

////////////////////////////////////////////////////////////////
// Endpoint map
////////////////////////////////////////////////////////////////

// EndpointMap holds point-to-point handlers of one message type.
//
// NOTE: Not thread-safe.
type EndpointMap[T any] struct {
	endpoints *hashmap.Map[Endpoint, TypedHandler[T]]
}

// NewEndpointMap creates a new EndpointMap instance.
func NewEndpointMap[T any]() *EndpointMap[T] {
	return &EndpointMap[T]{
		endpoints: hashmap.New[Endpoint, TypedHandler[T]](defaultReservedTopicSlots),
	}
}

// Register binds the handler to the endpoint, replacing any previous handler
// with a warning.
func (m *EndpointMap[T]) Register(endpoint Endpoint, handler TypedHandler[T]) {
	if prev, ok := m.endpoints.Get(endpoint); ok {
		logs.Warnf("endpoint %s re-registered: %s replaces %s", endpoint, handler.ID(), prev.ID())
	}
	m.endpoints.Set(endpoint, handler)
}

// Deregister removes the endpoint binding.
func (m *EndpointMap[T]) Deregister(endpoint Endpoint) {
	m.endpoints.Delete(endpoint)
}

// IsRegistered reports whether the endpoint has a handler.
func (m *EndpointMap[T]) IsRegistered(endpoint Endpoint) bool {
	_, ok := m.endpoints.Get(endpoint)
	return ok
}

// Send delivers the message to the endpoint's handler. A message to an
// unregistered endpoint is dropped with an error log.
func (m *EndpointMap[T]) Send(endpoint Endpoint, message T) {
	handler, ok := m.endpoints.Get(endpoint)
	if !ok {
		logs.Errorf("message to unregistered endpoint %s dropped", endpoint)
		return
	}
	handler.Handle(message)
}
