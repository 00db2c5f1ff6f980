// Package notify publishes operation outcomes to subscribers. Presentation
// concerns such as toasts live in subscribers, never in the store.
package notify

import (
	"sync"
	"time"

	"github.com/bobmcallan/blog-portal/internal/store"
)

// Outcome is the result of one settled operation. Err is nil on success.
type Outcome struct {
	Op  store.Op
	Err error
	At  time.Time
}

// Succeeded reports whether the operation was fulfilled.
func (o Outcome) Succeeded() bool { return o.Err == nil }

// Subscriber receives outcomes synchronously in publish order.
type Subscriber func(Outcome)

type subscription struct {
	id int
	fn Subscriber
}

// Bus fans outcomes out to subscribers in the order they subscribed.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus) Subscribe(fn Subscriber) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers o to every subscriber. A zero At is set to now.
func (b *Bus) Publish(o Outcome) {
	if o.At.IsZero() {
		o.At = time.Now()
	}

	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(o)
	}
}
