// Package space places windows and outputs in the global compositor coordinate space.
package space

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
)

var ErrWindowNotMapped = errors.New("window not mapped")

// Output is a display region of the global space.
type Output struct {
	Name     string
	Geometry geom.Rect
}

type element struct {
	window *Window
	loc    geom.Loc
}

// Space is the ordered window stack. Elements are kept bottom to top.
type Space struct {
	outputs  []Output
	elements []element
}

func New() *Space {
	return &Space{}
}

// MapOutput adds an output or updates the geometry of an output with the same name.
func (s *Space) MapOutput(o Output) {
	for i := range s.outputs {
		if s.outputs[i].Name == o.Name {
			s.outputs[i] = o
			return
		}
	}
	s.outputs = append(s.outputs, o)
}

func (s *Space) UnmapOutput(name string) {
	s.outputs = slices.DeleteFunc(s.outputs, func(o Output) bool { return o.Name == name })
}

// Outputs returns the outputs in the order they were mapped.
func (s *Space) Outputs() []Output {
	return slices.Clone(s.outputs)
}

func (s *Space) OutputGeometry(name string) (geom.Rect, bool) {
	for _, o := range s.outputs {
		if o.Name == name {
			return o.Geometry, true
		}
	}
	return geom.Rect{}, false
}

// OutputsBounds is the bounding box of every output.
func (s *Space) OutputsBounds() geom.Rect {
	var r geom.Rect
	for _, o := range s.outputs {
		r = r.Union(o.Geometry)
	}
	return r
}

// ElementUnder returns the topmost window whose geometry contains p and that window's location.
func (s *Space) ElementUnder(p geom.Point) (*Window, geom.Loc, bool) {
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		r := e.window.Geometry()
		r.Loc = r.Loc.Add(e.loc)
		if r.Contains(p) {
			return e.window, e.loc, true
		}
	}
	return nil, geom.Loc{}, false
}

func (s *Space) ElementLocation(w *Window) (geom.Loc, bool) {
	if i := s.index(w); i >= 0 {
		return s.elements[i].loc, true
	}
	return geom.Loc{}, false
}

// Elements returns the mapped windows from bottom to top.
func (s *Space) Elements() []*Window {
	windows := make([]*Window, 0, len(s.elements))
	for _, e := range s.elements {
		windows = append(windows, e.window)
	}
	return windows
}

// FindWindow looks up a mapped window by id.
func (s *Space) FindWindow(id string) (*Window, bool) {
	for _, e := range s.elements {
		if e.window.ID() == id {
			return e.window, true
		}
	}
	return nil, false
}

// MapElement places w at loc on top of the stack. A mapped w keeps its stacking position unless
// activate raises it.
func (s *Space) MapElement(w *Window, loc geom.Loc, activate bool) {
	if i := s.index(w); i >= 0 {
		s.elements[i].loc = loc
	} else {
		s.elements = append(s.elements, element{window: w, loc: loc})
	}
	if activate {
		s.RaiseElement(w, true)
	}
}

// UnmapElement removes w from the space.
func (s *Space) UnmapElement(w *Window) {
	if i := s.index(w); i >= 0 {
		s.elements = slices.Delete(s.elements, i, i+1)
	}
}

// RaiseElement moves w to the top of the stack. With activate, w becomes the only activated
// window.
func (s *Space) RaiseElement(w *Window, activate bool) {
	i := s.index(w)
	if i < 0 {
		return
	}
	e := s.elements[i]
	s.elements = append(slices.Delete(s.elements, i, i+1), e)

	if activate {
		for _, o := range s.elements {
			o.window.SetActivated(o.window == w)
		}
	}
}

// DeactivateAll clears the pending activation state of every window.
func (s *Space) DeactivateAll() {
	for _, e := range s.elements {
		e.window.SetActivated(false)
	}
}

// ConfigureAll sends a configure to every window.
func (s *Space) ConfigureAll() {
	for _, e := range s.elements {
		e.window.SendConfigure()
	}
}

// Commit applies a client commit of a buffer with size. During a resize that drags the left or
// top edge the window is re-anchored so the opposite edge stays in place.
func (s *Space) Commit(w *Window, size geom.Size) error {
	i := s.index(w)
	if i < 0 {
		return ErrWindowNotMapped
	}

	acked, hasAck := w.commit(size)

	rs := w.ResizeState()
	if rs.Phase == ResizeIdle {
		return nil
	}

	if rs.Edges.Has(EdgeLeft) || rs.Edges.Has(EdgeTop) {
		loc := s.elements[i].loc
		cur := w.Size()
		if rs.Edges.Has(EdgeLeft) {
			loc.X = rs.InitialRect.Loc.X + (rs.InitialRect.Size.W - cur.W)
		}
		if rs.Edges.Has(EdgeTop) {
			loc.Y = rs.InitialRect.Loc.Y + (rs.InitialRect.Size.H - cur.H)
		}
		s.elements[i].loc = loc
	}

	if rs.Phase == ResizeWaitingForLastCommit && hasAck && acked >= rs.FinalSerial {
		slog.Debug("Resize finished", "window", w.ID(), "size", w.Size())
		w.SetResizeState(ResizeState{})
	}
	return nil
}

func (s *Space) index(w *Window) int {
	return slices.IndexFunc(s.elements, func(e element) bool { return e.window == w })
}
