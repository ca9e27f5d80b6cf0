package compositor

import (
	"context"
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/backend"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/thejerf/suture/v4"
)

type request struct {
	fn   func(*State) error
	errC chan error
}

// Loop owns a State and runs everything that touches it on one goroutine. Backends send events,
// other goroutines call Do.
type Loop struct {
	state     *State
	eventC    chan any
	requestC  chan request
	settingsC chan Settings
}

func NewLoop(state *State) *Loop {
	return &Loop{
		state:     state,
		eventC:    make(chan any),
		requestC:  make(chan request),
		settingsC: make(chan Settings),
	}
}

func (l *Loop) String() string {
	return "compositor.Loop"
}

// Events is where backends send input.Event and backend.OutputEvent values.
func (l *Loop) Events() chan<- any {
	return l.eventC
}

// Do runs fn on the loop goroutine and returns its error.
func (l *Loop) Do(ctx context.Context, fn func(*State) error) error {
	req := request{fn: fn, errC: make(chan error, 1)}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.requestC <- req:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-req.errC:
		return err
	}
}

// UpdateSettings hands new settings to the loop.
func (l *Loop) UpdateSettings(ctx context.Context, settings Settings) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.settingsC <- settings:
		return nil
	}
}

func (l *Loop) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.eventC:
			l.handle(ev)
		case req := <-l.requestC:
			req.errC <- req.fn(l.state)
		case settings := <-l.settingsC:
			slog.Info("Applying settings", "leader", settings.Leader, "grab-modifier", settings.GrabModifier, "bindings", len(settings.Bindings))
			l.state.ApplySettings(settings)
		}

		if l.state.QuitRequested() {
			return suture.ErrTerminateSupervisorTree
		}
	}
}

func (l *Loop) handle(ev any) {
	switch ev := ev.(type) {
	case input.Event:
		if err := l.state.ProcessInputEvent(ev); err != nil {
			slog.Error("Failed to process input event", "event", ev, "error", err)
		}
	case backend.OutputEvent:
		slog.Debug("OutputEvent", "name", ev.Name, "size", ev.Size)
		l.state.MapOutput(ev.Name, ev.Size)
	case backend.OutputRemovedEvent:
		slog.Debug("OutputRemovedEvent", "name", ev.Name)
		l.state.Space.UnmapOutput(ev.Name)
	default:
		slog.Debug("Unknown event", "event", ev)
	}
}
