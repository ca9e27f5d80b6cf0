package seat

import (
	"slices"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
)

// PointerFocus is a target under the pointer together with the target's global location.
type PointerFocus struct {
	Target   Target
	Location geom.Point
}

type MotionEvent struct {
	Location geom.Point
	Serial   serial.Serial
	Time     uint32
}

type ButtonEvent struct {
	Button uint32
	State  input.ButtonState
	Serial serial.Serial
	Time   uint32
}

// GrabStartData is the pointer state a grab was started from.
type GrabStartData struct {
	Focus    *PointerFocus
	Button   uint32
	Location geom.Point
}

// Grab takes over pointer event routing while it is set on a pointer.
type Grab interface {
	Motion(h *GrabHandle, focus *PointerFocus, ev MotionEvent)
	Button(h *GrabHandle, ev ButtonEvent)
	Axis(h *GrabHandle, frame AxisFrame)
	StartData() GrabStartData
	// Target is the surface the grab operates on.
	Target() Target
	// Unset is called once when the grab leaves the pointer, by release or abort.
	Unset()
}

// FocusPolicy says what happens to pointer focus when a grab is set.
type FocusPolicy uint8

const (
	FocusKeep FocusPolicy = iota
	FocusClear
)

type Pointer struct {
	handler  Handler
	location geom.Point
	focus    *PointerFocus
	pressed  []uint32
	grab     Grab
}

func newPointer(handler Handler) *Pointer {
	return &Pointer{
		handler: handler,
	}
}

func (p *Pointer) CurrentLocation() geom.Point {
	return p.location
}

// Focus returns the current pointer focus, or nil.
func (p *Pointer) Focus() *PointerFocus {
	return p.focus
}

func (p *Pointer) IsGrabbed() bool {
	return p.grab != nil
}

// Grab returns the active grab, or nil.
func (p *Pointer) Grab() Grab {
	return p.grab
}

// IsPressed reports whether button is held down.
func (p *Pointer) IsPressed(button uint32) bool {
	return slices.Contains(p.pressed, button)
}

// SetGrab installs g as the pointer's grab. An existing grab is unset first.
func (p *Pointer) SetGrab(g Grab, s serial.Serial, policy FocusPolicy) {
	p.UnsetGrab()
	p.grab = g
	if policy == FocusClear && p.focus != nil {
		p.handler.PointerLeave(p.focus.Target, s)
		p.focus = nil
	}
}

// UnsetGrab removes the active grab, if any.
func (p *Pointer) UnsetGrab() {
	g := p.grab
	if g == nil {
		return
	}
	p.grab = nil
	g.Unset()
}

// Motion moves the pointer. While grabbed the grab decides what happens.
func (p *Pointer) Motion(focus *PointerFocus, ev MotionEvent) {
	if p.grab != nil {
		p.grab.Motion(&GrabHandle{p: p}, focus, ev)
		return
	}
	p.motion(focus, ev)
}

// Button updates the pressed set and routes the button to the grab or the focused target.
func (p *Pointer) Button(ev ButtonEvent) {
	switch ev.State {
	case input.ButtonPressed:
		if !p.IsPressed(ev.Button) {
			p.pressed = append(p.pressed, ev.Button)
		}
	case input.ButtonReleased:
		p.pressed = slices.DeleteFunc(p.pressed, func(b uint32) bool { return b == ev.Button })
	}

	if p.grab != nil {
		p.grab.Button(&GrabHandle{p: p}, ev)
		return
	}
	p.button(ev)
}

func (p *Pointer) Axis(frame AxisFrame) {
	if p.grab != nil {
		p.grab.Axis(&GrabHandle{p: p}, frame)
		return
	}
	p.axis(frame)
}

func (p *Pointer) motion(focus *PointerFocus, ev MotionEvent) {
	p.location = ev.Location

	var old Target
	if p.focus != nil {
		old = p.focus.Target
	}
	var next Target
	if focus != nil {
		next = focus.Target
	}

	if !sameTarget(old, next) {
		if old != nil {
			p.handler.PointerLeave(old, ev.Serial)
		}
		if next != nil {
			p.handler.PointerEnter(next, ev.Serial, ev.Location.Sub(focus.Location))
		}
	}
	if focus != nil {
		f := *focus
		p.focus = &f
		p.handler.PointerMotion(f.Target, ev.Time, ev.Location.Sub(f.Location))
	} else {
		p.focus = nil
	}
}

func (p *Pointer) button(ev ButtonEvent) {
	if p.focus != nil {
		p.handler.PointerButton(p.focus.Target, ev.Serial, ev.Time, ev.Button, ev.State)
	}
}

func (p *Pointer) axis(frame AxisFrame) {
	if p.focus != nil {
		p.handler.PointerAxis(p.focus.Target, frame)
	}
}

// GrabHandle gives a grab access to the pointer's default behaviour.
type GrabHandle struct {
	p *Pointer
}

// Motion runs the default motion handling with focus.
func (h *GrabHandle) Motion(focus *PointerFocus, ev MotionEvent) {
	h.p.motion(focus, ev)
}

// Button delivers the button to the current pointer focus.
func (h *GrabHandle) Button(ev ButtonEvent) {
	h.p.button(ev)
}

func (h *GrabHandle) Axis(frame AxisFrame) {
	h.p.axis(frame)
}

func (h *GrabHandle) IsPressed(button uint32) bool {
	return h.p.IsPressed(button)
}

func (h *GrabHandle) Location() geom.Point {
	return h.p.location
}

// UnsetGrab ends the grab that owns this handle.
func (h *GrabHandle) UnsetGrab() {
	h.p.UnsetGrab()
}
