package bus

import (
	"reflect"

	"github.com/tidwall/hashmap"
	"github.com/yanun0323/logs"

	"github.com/river-walras/nexuscore/market"
)

////////////////////////////////////////////////////////////////
// Message bus
////////////////////////////////////////////////////////////////

// MessageBus connects publishers to subscribers within one goroutine. Topic
// routing supports glob patterns with priorities, endpoints are
// point-to-point, and correlation ids tie requests to one-shot response
// handlers.
//
// Typed traffic for the well-known market events flows through dedicated
// routers without boxing; everything else takes the Any path and downcasts
// in the handler. One bus serves one goroutine; share across goroutines only
// behind your own synchronization.
//
// NOTE: Not thread-safe.
type MessageBus struct {
	name string

	interner  *internPool
	anyRouter *TopicRouter[any]
	endpoints *EndpointMap[any]

	correlation *hashmap.Map[CorrelationID, Handler]

	quotes *TopicRouter[market.QuoteTick]
	trades *TopicRouter[market.TradeTick]
	deltas *TopicRouter[market.OrderBookDeltas]
	depths *TopicRouter[market.OrderBookDepth10]

	routers        map[reflect.Type]any
	typedEndpoints map[reflect.Type]any
}

// NewMessageBus creates a new MessageBus instance.
func NewMessageBus(name string) *MessageBus {
	b := &MessageBus{
		name:           name,
		interner:       newInternPool(),
		anyRouter:      NewTopicRouter[any](),
		endpoints:      NewEndpointMap[any](),
		correlation:    hashmap.New[CorrelationID, Handler](defaultReservedTopicSlots),
		quotes:         NewTopicRouter[market.QuoteTick](),
		trades:         NewTopicRouter[market.TradeTick](),
		deltas:         NewTopicRouter[market.OrderBookDeltas](),
		depths:         NewTopicRouter[market.OrderBookDepth10](),
		routers:        make(map[reflect.Type]any),
		typedEndpoints: make(map[reflect.Type]any),
	}
	b.routers[reflect.TypeOf(market.QuoteTick{})] = b.quotes
	b.routers[reflect.TypeOf(market.TradeTick{})] = b.trades
	b.routers[reflect.TypeOf(market.OrderBookDeltas{})] = b.deltas
	b.routers[reflect.TypeOf(market.OrderBookDepth10{})] = b.depths
	return b
}

// Name returns the bus name used in logs.
func (b *MessageBus) Name() string {
	return b.name
}

////////////////////////////////////////////////////////////////
// Any path
////////////////////////////////////////////////////////////////

// Subscribe registers an Any handler for topics matching the pattern.
func (b *MessageBus) Subscribe(pattern Pattern, handler Handler, priority uint8) {
	b.anyRouter.Subscribe(b.interner.InternPattern(pattern), handler, priority)
}

// Unsubscribe removes an Any subscription.
func (b *MessageBus) Unsubscribe(pattern Pattern, handlerID string) {
	b.anyRouter.Unsubscribe(b.interner.InternPattern(pattern), handlerID)
}

// IsSubscribed reports whether the Any subscription exists.
func (b *MessageBus) IsSubscribed(pattern Pattern, handlerID string) bool {
	return b.anyRouter.IsSubscribed(pattern, handlerID)
}

// Publish delivers the message to every matching Any subscriber. No
// subscribers is not an error.
func (b *MessageBus) Publish(topic Topic, message any) {
	b.anyRouter.Publish(b.interner.InternTopic(topic), message)
}

// RegisterEndpoint binds an Any handler to a point-to-point endpoint.
func (b *MessageBus) RegisterEndpoint(endpoint Endpoint, handler Handler) {
	b.endpoints.Register(endpoint, handler)
}

// DeregisterEndpoint removes a point-to-point endpoint.
func (b *MessageBus) DeregisterEndpoint(endpoint Endpoint) {
	b.endpoints.Deregister(endpoint)
}

// Send delivers the message to the endpoint's handler, dropping it with an
// error log when the endpoint is unknown.
func (b *MessageBus) Send(endpoint Endpoint, message any) {
	b.endpoints.Send(endpoint, message)
}

////////////////////////////////////////////////////////////////
// Request / response
////////////////////////////////////////////////////////////////

// RegisterResponseHandler arms a one-shot handler for the correlation id.
func (b *MessageBus) RegisterResponseHandler(id CorrelationID, handler Handler) error {
	if _, ok := b.correlation.Get(id); ok {
		return &DuplicateCorrelationError{ID: id}
	}
	b.correlation.Set(id, handler)
	return nil
}

// SendResponse dispatches the response to the handler registered for the
// correlation id and disarms it. An unknown id drops the response with an
// error log.
func (b *MessageBus) SendResponse(id CorrelationID, response any) {
	handler, ok := b.correlation.Get(id)
	if !ok {
		logs.Errorf("response for unknown correlation id %s dropped", id)
		return
	}
	b.correlation.Delete(id)
	handler.Handle(response)
}

// PendingResponses returns the number of armed correlation handlers.
func (b *MessageBus) PendingResponses() int {
	return b.correlation.Len()
}

////////////////////////////////////////////////////////////////
// Typed paths
////////////////////////////////////////////////////////////////

// SubscribeQuotes registers a typed QuoteTick subscriber.
func (b *MessageBus) SubscribeQuotes(pattern Pattern, handler TypedHandler[market.QuoteTick], priority uint8) {
	b.quotes.Subscribe(b.interner.InternPattern(pattern), handler, priority)
}

// PublishQuote delivers a quote to typed QuoteTick subscribers.
func (b *MessageBus) PublishQuote(topic Topic, quote market.QuoteTick) {
	b.quotes.Publish(b.interner.InternTopic(topic), quote)
}

// SubscribeTrades registers a typed TradeTick subscriber.
func (b *MessageBus) SubscribeTrades(pattern Pattern, handler TypedHandler[market.TradeTick], priority uint8) {
	b.trades.Subscribe(b.interner.InternPattern(pattern), handler, priority)
}

// PublishTrade delivers a trade to typed TradeTick subscribers.
func (b *MessageBus) PublishTrade(topic Topic, trade market.TradeTick) {
	b.trades.Publish(b.interner.InternTopic(topic), trade)
}

// SubscribeDeltas registers a typed OrderBookDeltas subscriber.
func (b *MessageBus) SubscribeDeltas(pattern Pattern, handler TypedHandler[market.OrderBookDeltas], priority uint8) {
	b.deltas.Subscribe(b.interner.InternPattern(pattern), handler, priority)
}

// PublishDeltas delivers a delta batch to typed subscribers.
func (b *MessageBus) PublishDeltas(topic Topic, deltas market.OrderBookDeltas) {
	b.deltas.Publish(b.interner.InternTopic(topic), deltas)
}

// SubscribeDepths registers a typed OrderBookDepth10 subscriber.
func (b *MessageBus) SubscribeDepths(pattern Pattern, handler TypedHandler[market.OrderBookDepth10], priority uint8) {
	b.depths.Subscribe(b.interner.InternPattern(pattern), handler, priority)
}

// PublishDepth delivers a depth snapshot to typed subscribers.
func (b *MessageBus) PublishDepth(topic Topic, depth market.OrderBookDepth10) {
	b.depths.Publish(b.interner.InternTopic(topic), depth)
}

// RouterFor returns the bus's router for an arbitrary message type, creating
// it on first use. The well-known market event types resolve to the same
// routers the dedicated methods use.
func RouterFor[T any](b *MessageBus) *TopicRouter[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if router, ok := b.routers[key]; ok {
		return router.(*TopicRouter[T])
	}
	router := NewTopicRouter[T]()
	b.routers[key] = router
	return router
}

// EndpointsFor returns the bus's typed endpoint map for an arbitrary message
// type, creating it on first use.
func EndpointsFor[T any](b *MessageBus) *EndpointMap[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if endpoints, ok := b.typedEndpoints[key]; ok {
		return endpoints.(*EndpointMap[T])
	}
	endpoints := NewEndpointMap[T]()
	b.typedEndpoints[key] = endpoints
	return endpoints
}
