package compositor

import (
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/seat"
	"github.com/ItsNotGoodName/corrosion/internal/space"
)

// AbortGrab ends the pointer grab if it operates on w. It reports whether a grab was ended.
func (s *State) AbortGrab(w *space.Window) bool {
	pointer, ok := s.Seat.Pointer()
	if !ok {
		return false
	}
	g := pointer.Grab()
	if g == nil || g.Target() == nil || g.Target().TargetID() != w.TargetID() {
		return false
	}

	slog.Debug("Aborting grab", "window", w.ID())
	pointer.UnsetGrab()
	return true
}

// AddWindow maps a new window served by an EchoClient. A nil rect places the window in the next
// free pane of a grid over the first output.
func (s *State) AddWindow(title string, rect *geom.Rect) (*space.Window, error) {
	if rect == nil {
		outputs := s.Space.Outputs()
		if len(outputs) == 0 {
			return nil, ErrNoOutput
		}
		count := len(s.Space.Elements())
		pane := space.NewLayoutGrid(outputs[0].Geometry, count+1).Pane(count)
		rect = &pane
	}

	w := space.NewWindow(title, rect.Size, s.serials, space.EchoClient{
		Space:   s.Space,
		OnClose: s.DestroyWindow,
	})
	s.Space.MapElement(w, rect.Loc, true)
	w.WithPendingState(func(state *space.ToplevelState) {
		size := rect.Size
		state.Size = &size
	})
	w.SendConfigure()

	slog.Debug("Mapped window", "window", w.ID(), "title", title, "rect", rect)
	return w, nil
}

// DestroyWindow removes w from the space and from every focus and grab that refers to it.
func (s *State) DestroyWindow(w *space.Window) {
	s.AbortGrab(w)
	s.Space.UnmapElement(w)

	if keyboard, ok := s.Seat.Keyboard(); ok && keyboard.Focus() != nil && keyboard.Focus().TargetID() == w.TargetID() {
		keyboard.SetFocus(nil, s.serials.Next())
	}

	if pointer, ok := s.Seat.Pointer(); ok && pointer.Focus() != nil && pointer.Focus().Target.TargetID() == w.TargetID() {
		location := pointer.CurrentLocation()
		pointer.Motion(s.surfaceUnder(location), seat.MotionEvent{
			Location: location,
			Serial:   s.serials.Next(),
		})
	}

	slog.Debug("Destroyed window", "window", w.ID())
}

// MapOutput adds or resizes an output. New outputs are placed right of the existing ones.
func (s *State) MapOutput(name string, size geom.Size) {
	if geo, ok := s.Space.OutputGeometry(name); ok {
		geo.Size = size
		s.Space.MapOutput(space.Output{Name: name, Geometry: geo})
		return
	}

	bounds := s.Space.OutputsBounds()
	loc := geom.Loc{}
	if !bounds.Size.IsEmpty() {
		loc.X = bounds.Loc.X + bounds.Size.W
	}
	s.Space.MapOutput(space.Output{Name: name, Geometry: geom.Rect{Loc: loc, Size: size}})
}
