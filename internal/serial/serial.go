// Package serial mints the correlation tokens attached to input events and configures.
package serial

import "sync/atomic"

// Serial is a client-visible correlation token. Zero is never minted.
type Serial uint32

// Counter is shared by reference between the dispatcher and the space so every serial
// handed to clients comes from one monotonic sequence.
type Counter struct {
	last atomic.Uint32
}

func NewCounter() *Counter {
	return &Counter{}
}

// Next returns a serial strictly greater than every serial returned before it.
func (c *Counter) Next() Serial {
	return Serial(c.last.Add(1))
}

// Last returns the most recently minted serial, or zero if none was minted.
func (c *Counter) Last() Serial {
	return Serial(c.last.Load())
}
