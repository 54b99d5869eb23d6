// Package bus carries category change notifications between view models.
//
// Delivery is synchronous and best-effort: a publish walks the handlers
// registered at that moment, in registration order, and returns once each
// has run. There is no queue and no replay, so a handler registered while
// a publish is in progress does not see that event.
package bus

import (
	"sync"

	"github.com/findash/findash/internal/model"
)

// Handler receives change events.
type Handler func(model.ChangeEvent)

type subscription struct {
	handler Handler
	id      int
}

// Bus is a process-wide publish/subscribe channel. It is owned by the
// application root and injected into the view models that need it.
type Bus struct {
	subs   []subscription
	nextID int
	mu     sync.Mutex
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns its unsubscribe function.
// Handlers must be unsubscribed when their owning component is torn down,
// or they keep receiving events for a destroyed context. Unsubscribe is
// idempotent.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{handler: h, id: id})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every currently registered handler in
// registration order. Handlers run on the caller's goroutine; a handler
// that kicks off asynchronous work may not have finished it by the time
// Publish returns.
func (b *Bus) Publish(ev model.ChangeEvent) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(ev)
	}
}
