// Package bus carries task lifecycle and reminder events between the
// pipeline components. Delivery is best-effort and at-most-once: a
// failed publish is logged and reported to the caller as false, never
// as an error that could fail the originating task mutation. Durable
// state (the reminder_sent flag, regenerated rows) is the source of
// truth, not event delivery.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Publisher is the write side of the bus. Publish never panics; it
// returns false when the event could not be delivered. Callers must
// treat false as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) bool
}

// Handler consumes one event. A non-nil error is logged by the broker
// and the occurrence is lost for that consumer; it is never retried.
type Handler func(ctx context.Context, event any) error

// Broker is an in-process pub/sub hub. Dispatch is synchronous: Publish
// invokes every handler subscribed to the topic in registration order
// and returns once all have run. A topic with no subscribers accepts
// events successfully (they are simply dropped).
type Broker struct {
	log *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBroker(log *slog.Logger) *Broker {
	return &Broker{
		log:      log,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for a topic. Handlers registered after
// a Publish do not see earlier events; there is no replay.
func (b *Broker) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers the event to every subscriber of the topic. Handler
// errors and panics are logged and absorbed: a failing consumer loses
// that one occurrence, it does not make delivery retryable. False is
// reserved for transport failure, which the in-process broker does not
// have, so flag-gated callers (the sweeper) never re-fire an event a
// durable consumer already handled.
func (b *Broker) Publish(ctx context.Context, topic string, event any) bool {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := b.dispatch(ctx, topic, h, event); err != nil {
			b.log.Warn("event handler failed", "topic", topic, "error", err)
		}
	}
	return true
}

func (b *Broker) dispatch(ctx context.Context, topic string, h Handler, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic on topic %s: %v", topic, r)
		}
	}()
	return h(ctx, event)
}
