// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package player

import "sync"

// Handler consumes one player event. Handlers run synchronously on the
// goroutine calling Emit, in registration order.
type Handler func(Event)

// Emitter is a dispatch table from event kind to handlers. Player
// implementations embed one and call Emit; the integration registers
// handlers through WithEventEmitter.
type Emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[Kind][]subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[Kind][]subscription)}
}

// On registers a handler for the given event kind and returns a function
// that detaches exactly that handler.
func (e *Emitter) On(k Kind, h Handler) (off func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	id := e.nextID
	e.handlers[k] = append(e.handlers[k], subscription{id: id, fn: h})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		subs := e.handlers[k]
		for i, s := range subs {
			if s.id == id {
				e.handlers[k] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit dispatches the event to all handlers registered for its kind,
// synchronously, in registration order.
func (e *Emitter) Emit(ev Event) {
	e.mu.Lock()
	subs := e.handlers[ev.EventKind()]
	fns := make([]Handler, len(subs))
	for i, s := range subs {
		fns[i] = s.fn
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// HandlerCount returns the number of handlers registered for a kind.
func (e *Emitter) HandlerCount(k Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[k])
}
