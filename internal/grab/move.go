// Package grab holds the interactive pointer grabs: moving and resizing a window.
package grab

import (
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/seat"
	"github.com/ItsNotGoodName/corrosion/internal/space"
)

// Move drags a window with the pointer until the button that started it is released.
type Move struct {
	start      seat.GrabStartData
	space      *space.Space
	window     *space.Window
	initialLoc geom.Loc
}

// NewMove creates a move of window, which was at initialLoc when start was recorded.
func NewMove(start seat.GrabStartData, sp *space.Space, window *space.Window, initialLoc geom.Loc) *Move {
	return &Move{
		start:      start,
		space:      sp,
		window:     window,
		initialLoc: initialLoc,
	}
}

func (g *Move) InitialLocation() geom.Loc {
	return g.initialLoc
}

func (g *Move) Motion(h *seat.GrabHandle, _ *seat.PointerFocus, ev seat.MotionEvent) {
	// No client gets pointer focus while moving.
	h.Motion(nil, ev)

	delta := ev.Location.Sub(g.start.Location)
	loc := g.initialLoc.ToPoint().Add(delta).Round()
	g.space.MapElement(g.window, loc, true)
}

func (g *Move) Button(h *seat.GrabHandle, ev seat.ButtonEvent) {
	h.Button(ev)
	if !h.IsPressed(g.start.Button) {
		h.UnsetGrab()
	}
}

func (g *Move) Axis(h *seat.GrabHandle, frame seat.AxisFrame) {
	h.Axis(frame)
}

func (g *Move) StartData() seat.GrabStartData {
	return g.start
}

func (g *Move) Target() seat.Target {
	return g.window
}

func (g *Move) Window() *space.Window {
	return g.window
}

func (g *Move) Unset() {
	slog.Debug("Move grab ended", "window", g.window.ID())
}
