// Package backend is the source of input events and outputs. Backends send input.Event and
// OutputEvent values to the compositor loop.
package backend

import (
	"context"
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
)

// Backend runs until ctx is done or its devices go away.
type Backend interface {
	String() string
	Serve(ctx context.Context) error
}

// OutputEvent announces an output or a new size for it.
type OutputEvent struct {
	Name string
	Size geom.Size
}

// OutputRemovedEvent announces an output went away.
type OutputRemovedEvent struct {
	Name string
}

// Send delivers ev to eventC unless ctx is done first.
func Send(ctx context.Context, eventC chan<- any, ev any) bool {
	select {
	case <-ctx.Done():
		return false
	case eventC <- ev:
		return true
	}
}

// Headless has no devices. Its outputs are fixed and input only arrives through IPC injection.
type Headless struct {
	eventC  chan<- any
	outputs []OutputEvent
}

// NewHeadless announces outputs in order. Without outputs a single 1920x1080 output is used.
func NewHeadless(eventC chan<- any, outputs ...OutputEvent) Headless {
	if len(outputs) == 0 {
		outputs = []OutputEvent{{Name: "headless-0", Size: geom.Size{W: 1920, H: 1080}}}
	}
	return Headless{
		eventC:  eventC,
		outputs: outputs,
	}
}

func (Headless) String() string {
	return "backend.Headless"
}

func (h Headless) Serve(ctx context.Context) error {
	for _, output := range h.outputs {
		if !Send(ctx, h.eventC, output) {
			return ctx.Err()
		}
		slog.Info("Headless output", "name", output.Name, "size", output.Size)
	}

	<-ctx.Done()
	return ctx.Err()
}
