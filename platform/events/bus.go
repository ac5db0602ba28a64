package events

import (
	"context"
	"sync"

	"oratoria_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Handlers run on their
// own goroutine; a panicking or failing handler never affects the publisher.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the named event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to every registered handler asynchronously.
// The publisher's context is not propagated: a finished HTTP request must not
// cancel a handler that is still running.
func (b *InMemoryBus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	registered := b.handlers[event.EventName()]
	b.mu.RUnlock()

	for _, handler := range registered {
		h := handler
		go func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event handler panicked", "event", event.EventName(), "panic", r)
				}
			}()

			if err := h.Handle(context.Background(), event); err != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}()
	}
}

var _ Bus = (*InMemoryBus)(nil)
