package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in tick N are dispatched
// to subscribers in tick N+1, in emit order; handlers may emit further events
// while handling. SwapBuffers() is called at tick start by the dispatch stage.
//
// Alongside the buffers the bus keeps a journal of everything emitted since
// the last drain. The engine drains it at the end of each tick and hands the
// ordered list to the caller, so the embedding shell sees this tick's events
// immediately while subscribers stay on the decoupled one-tick-late feed.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	journal  []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 64),
		back:     make([]any, 0, 64),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer (dispatched next tick) and
// appends it to the journal.
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, event)
	b.journal = append(b.journal, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers all front-buffer events to their subscribed handlers,
// preserving emit order across event types.
func (b *Bus) DispatchAll() {
	for _, ev := range b.front {
		handlers := b.handlers[reflect.TypeOf(ev)]
		for _, h := range handlers {
			// Type-assert the handler and call it.
			// This is safe because Subscribe and Emit use the same type key.
			callHandler(h, ev)
		}
	}
}

// DrainJournal returns everything emitted since the last drain, in emit
// order, and resets the journal. The caller owns the returned slice.
func (b *Bus) DrainJournal() []any {
	j := b.journal
	b.journal = nil
	return j
}

// Reset discards buffered and journaled events but keeps subscriptions.
// Used when a session restarts so stale events never cross sessions.
func (b *Bus) Reset() {
	b.front = b.front[:0]
	b.back = b.back[:0]
	b.journal = nil
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
