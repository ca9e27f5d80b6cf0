package compositor

import (
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/grab"
)

type Snapshot struct {
	Outputs   []OutputSnapshot `json:"outputs"`
	Windows   []WindowSnapshot `json:"windows"`
	Pointer   PointerSnapshot  `json:"pointer"`
	Modifiers string           `json:"modifiers"`
	Focus     string           `json:"focus,omitempty"`
	Serial    uint32           `json:"serial"`
}

type OutputSnapshot struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WindowSnapshot is a mapped window. Windows are listed bottom to top.
type WindowSnapshot struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Activated bool   `json:"activated"`
}

type PointerSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Grab is "move", "resize" or empty.
	Grab       string `json:"grab,omitempty"`
	GrabWindow string `json:"grab_window,omitempty"`
}

func outputSnapshot(name string, r geom.Rect) OutputSnapshot {
	return OutputSnapshot{Name: name, X: r.Loc.X, Y: r.Loc.Y, Width: r.Size.W, Height: r.Size.H}
}

// Snapshot copies the state for reading outside the loop.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Outputs: []OutputSnapshot{},
		Windows: []WindowSnapshot{},
		Serial:  uint32(s.serials.Last()),
	}

	for _, o := range s.Space.Outputs() {
		snap.Outputs = append(snap.Outputs, outputSnapshot(o.Name, o.Geometry))
	}

	for _, w := range s.Space.Elements() {
		loc, _ := s.Space.ElementLocation(w)
		size := w.Size()
		snap.Windows = append(snap.Windows, WindowSnapshot{
			ID:        w.ID(),
			Title:     w.Title,
			X:         loc.X,
			Y:         loc.Y,
			Width:     size.W,
			Height:    size.H,
			Activated: w.Activated(),
		})
	}

	if keyboard, ok := s.Seat.Keyboard(); ok {
		snap.Modifiers = keyboard.ModifierState().String()
		if f := keyboard.Focus(); f != nil {
			snap.Focus = f.TargetID()
		}
	}

	if pointer, ok := s.Seat.Pointer(); ok {
		loc := pointer.CurrentLocation()
		snap.Pointer.X, snap.Pointer.Y = loc.X, loc.Y
		switch g := pointer.Grab().(type) {
		case *grab.Move:
			snap.Pointer.Grab, snap.Pointer.GrabWindow = "move", g.Window().ID()
		case *grab.Resize:
			snap.Pointer.Grab, snap.Pointer.GrabWindow = "resize", g.Window().ID()
		}
	}

	return snap
}
