package grab

import (
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/seat"
	"github.com/ItsNotGoodName/corrosion/internal/space"
)

// Resize resizes a window by dragging its edges. It only proposes sizes through configures;
// the window takes a size when the client commits it.
type Resize struct {
	start       seat.GrabStartData
	window      *space.Window
	edges       space.Edges
	initialRect geom.Rect
	minSize     geom.Size
	lastSize    geom.Size
}

// NewResize starts resizing window from initialRect, its location and size when start was
// recorded. minSize is a floor applied on top of the window's own minimum.
func NewResize(start seat.GrabStartData, window *space.Window, edges space.Edges, initialRect geom.Rect, minSize geom.Size) *Resize {
	window.SetResizeState(space.ResizeState{
		Phase:       space.ResizeActive,
		Edges:       edges,
		InitialRect: initialRect,
	})
	window.WithPendingState(func(state *space.ToplevelState) {
		state.Resizing = true
	})

	return &Resize{
		start:       start,
		window:      window,
		edges:       edges,
		initialRect: initialRect,
		minSize:     minSize,
		lastSize:    initialRect.Size,
	}
}

func (g *Resize) InitialRect() geom.Rect {
	return g.initialRect
}

func (g *Resize) Edges() space.Edges {
	return g.edges
}

// LastSize is the most recently proposed size.
func (g *Resize) LastSize() geom.Size {
	return g.lastSize
}

func (g *Resize) Motion(h *seat.GrabHandle, _ *seat.PointerFocus, ev seat.MotionEvent) {
	h.Motion(nil, ev)

	delta := ev.Location.Sub(g.start.Location)
	if g.edges.Has(space.EdgeLeft) {
		delta.X = -delta.X
	}
	if g.edges.Has(space.EdgeTop) {
		delta.Y = -delta.Y
	}

	size := g.initialRect.Size
	if g.edges.Has(space.EdgeLeft) || g.edges.Has(space.EdgeRight) {
		size.W += int(delta.X)
	}
	if g.edges.Has(space.EdgeTop) || g.edges.Has(space.EdgeBottom) {
		size.H += int(delta.Y)
	}

	g.lastSize = size.Clamp(g.bounds())
	g.window.WithPendingState(func(state *space.ToplevelState) {
		size := g.lastSize
		state.Size = &size
		state.Resizing = true
	})
	g.window.SendConfigure()
}

// bounds merges the configured floor with the window's size hints.
func (g *Resize) bounds() (geom.Size, geom.Size) {
	winMin, winMax := g.window.SizeHints()
	minSize := geom.Size{
		W: max(g.minSize.W, winMin.W, 1),
		H: max(g.minSize.H, winMin.H, 1),
	}
	maxSize := winMax
	if maxSize.W > 0 && maxSize.W < minSize.W {
		maxSize.W = minSize.W
	}
	if maxSize.H > 0 && maxSize.H < minSize.H {
		maxSize.H = minSize.H
	}
	return minSize, maxSize
}

func (g *Resize) Button(h *seat.GrabHandle, ev seat.ButtonEvent) {
	h.Button(ev)
	if !h.IsPressed(g.start.Button) {
		h.UnsetGrab()
	}
}

func (g *Resize) Axis(h *seat.GrabHandle, frame seat.AxisFrame) {
	h.Axis(frame)
}

func (g *Resize) StartData() seat.GrabStartData {
	return g.start
}

func (g *Resize) Target() seat.Target {
	return g.window
}

func (g *Resize) Window() *space.Window {
	return g.window
}

// Unset sends the final configure. The resize is over once the client commits it.
func (g *Resize) Unset() {
	g.window.WithPendingState(func(state *space.ToplevelState) {
		size := g.lastSize
		state.Size = &size
		state.Resizing = false
	})
	final := g.window.SendConfigure()

	if g.window.Committed() >= final {
		g.window.SetResizeState(space.ResizeState{})
	} else {
		g.window.SetResizeState(space.ResizeState{
			Phase:       space.ResizeWaitingForLastCommit,
			Edges:       g.edges,
			InitialRect: g.initialRect,
			FinalSerial: final,
		})
	}

	slog.Debug("Resize grab ended", "window", g.window.ID(), "size", g.lastSize, "serial", final)
}
