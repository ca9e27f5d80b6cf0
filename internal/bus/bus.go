// Package bus fans events out to subscribers.
package bus

import (
	"context"
	"sync"
)

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		mu:   sync.Mutex{},
		subs: make(map[*chan T]struct{}),
	}
}

// Hub delivers every broadcast event to each current subscriber.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
}

// Broadcast blocks until every subscriber received event or ctx is done.
func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case *sub <- event:
		}
	}

	return nil
}

func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T)

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		delete(h.subs, key)
		h.mu.Unlock()
	}
}
