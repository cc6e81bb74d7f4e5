package events

import "sync"

// Handler consumes one published event. A non-nil error aborts dispatch to
// the remaining handlers for that publish and propagates to the publisher.
type Handler func(Event) error

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	kind Kind
	id   int
}

type subscriber struct {
	id      int
	handler Handler
}

// Bus dispatches events synchronously to subscribers, in subscription order,
// on the publishing goroutine. Handlers are not isolated from one another:
// the first handler error stops the dispatch.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Kind][]subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscriber)}
}

// Subscribe registers a handler for one event kind and returns its
// subscription token.
func (b *Bus) Subscribe(kind Kind, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[kind] = append(b.subs[kind], subscriber{id: b.nextID, handler: handler})
	return Subscription{kind: kind, id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Unknown tokens are
// ignored.
func (b *Bus) Unsubscribe(token Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[token.kind]
	for i, sub := range subs {
		if sub.id == token.id {
			b.subs[token.kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every handler subscribed to its kind, in
// subscription order. Publishing with no subscribers is a no-op. The first
// handler error is returned and the remaining handlers are not invoked.
func (b *Bus) Publish(evt Event) error {
	b.mu.Lock()
	subs := append([]subscriber(nil), b.subs[evt.EventKind()]...)
	b.mu.Unlock()

	for _, sub := range subs {
		if err := sub.handler(evt); err != nil {
			return err
		}
	}
	return nil
}
