// Package eventbus is a minimal publish/subscribe registry mapping event names
// to ordered listener lists.
package eventbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

type Handler[T any] func(payload T)

// Registration is the handle returned by Subscribe. Its identity is the
// removal key.
type Registration[T any] struct {
	name    string
	handler Handler[T]
	active  atomic.Bool
}

func (r *Registration[T]) Name() string {
	return r.name
}

// Bus dispatches payloads to listeners synchronously, most recently subscribed
// first. A panicking listener is recovered and logged, the rest of the pass
// still runs.
type Bus[T any] struct {
	mu        sync.RWMutex
	listeners map[string][]*Registration[T]
	closed    bool
	logger    *slog.Logger
}

func New[T any](logger *slog.Logger) *Bus[T] {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bus[T]{
		listeners: make(map[string][]*Registration[T]),
		logger:    logger,
	}
}

func (b *Bus[T]) Subscribe(name string, handler Handler[T]) *Registration[T] {
	reg := &Registration[T]{name: name, handler: handler}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return reg
	}

	reg.active.Store(true)
	list := make([]*Registration[T], 0, len(b.listeners[name])+1)
	list = append(list, reg)
	b.listeners[name] = append(list, b.listeners[name]...)

	return reg
}

func (b *Bus[T]) Unsubscribe(reg *Registration[T]) {
	if reg == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !reg.active.Swap(false) {
		return
	}

	list := b.listeners[reg.name]
	for i, r := range list {
		if r == reg {
			b.listeners[reg.name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}

	if len(b.listeners[reg.name]) == 0 {
		delete(b.listeners, reg.name)
	}
}

func (b *Bus[T]) Dispatch(name string, payload T) {
	b.mu.RLock()
	snapshot := make([]*Registration[T], len(b.listeners[name]))
	copy(snapshot, b.listeners[name])
	b.mu.RUnlock()

	for _, reg := range snapshot {
		// removed by an earlier listener of this pass
		if !reg.active.Load() {
			continue
		}
		b.invoke(reg, payload)
	}
}

func (b *Bus[T]) invoke(reg *Registration[T], payload T) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("event listener panicked",
				"event", reg.name,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	reg.handler(payload)
}

// Len returns the number of listeners registered under name.
func (b *Bus[T]) Len(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

// Close drops every registration. Later subscriptions are inert and
// dispatches are no-ops.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, list := range b.listeners {
		for _, reg := range list {
			reg.active.Store(false)
		}
	}
	b.listeners = make(map[string][]*Registration[T])
	b.closed = true
}
