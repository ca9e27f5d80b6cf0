// Package seat is the compositor's seat: one keyboard and one pointer that deliver input to
// focused targets, plus the pointer's exclusive grab slot.
package seat

import (
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
	"github.com/ItsNotGoodName/corrosion/internal/xkb"
)

// Target is a client surface that can hold keyboard or pointer focus.
type Target interface {
	TargetID() string
}

func sameTarget(a, b Target) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.TargetID() == b.TargetID()
}

// Handler receives everything the seat delivers to clients.
type Handler interface {
	KeyboardEnter(t Target, s serial.Serial, pressed []uint32)
	KeyboardLeave(t Target, s serial.Serial)
	KeyboardKey(t Target, s serial.Serial, time uint32, code uint32, state input.KeyState)
	KeyboardModifiers(t Target, s serial.Serial, mods xkb.ModifiersState)
	PointerEnter(t Target, s serial.Serial, local geom.Point)
	PointerLeave(t Target, s serial.Serial)
	PointerMotion(t Target, time uint32, local geom.Point)
	PointerButton(t Target, s serial.Serial, time uint32, button uint32, state input.ButtonState)
	PointerAxis(t Target, frame AxisFrame)
}

type Seat struct {
	Name     string
	handler  Handler
	keyboard *Keyboard
	pointer  *Pointer
}

func New(name string, handler Handler) *Seat {
	return &Seat{
		Name:    name,
		handler: handler,
	}
}

// AddKeyboard gives the seat its keyboard, replacing any previous one.
func (s *Seat) AddKeyboard() *Keyboard {
	s.keyboard = newKeyboard(s.handler)
	return s.keyboard
}

// AddPointer gives the seat its pointer, replacing any previous one.
func (s *Seat) AddPointer() *Pointer {
	s.pointer = newPointer(s.handler)
	return s.pointer
}

func (s *Seat) Keyboard() (*Keyboard, bool) {
	return s.keyboard, s.keyboard != nil
}

func (s *Seat) Pointer() (*Pointer, bool) {
	return s.pointer, s.pointer != nil
}

// LogHandler logs deliveries instead of sending them to a client.
type LogHandler struct{}

func (LogHandler) KeyboardEnter(t Target, s serial.Serial, pressed []uint32) {
	slog.Debug("keyboard enter", "target", t.TargetID(), "serial", s, "pressed", pressed)
}

func (LogHandler) KeyboardLeave(t Target, s serial.Serial) {
	slog.Debug("keyboard leave", "target", t.TargetID(), "serial", s)
}

func (LogHandler) KeyboardKey(t Target, s serial.Serial, time uint32, code uint32, state input.KeyState) {
	slog.Debug("keyboard key", "target", t.TargetID(), "serial", s, "time", time, "code", code, "state", state)
}

func (LogHandler) KeyboardModifiers(t Target, s serial.Serial, mods xkb.ModifiersState) {
	slog.Debug("keyboard modifiers", "target", t.TargetID(), "serial", s, "mods", mods.String())
}

func (LogHandler) PointerEnter(t Target, s serial.Serial, local geom.Point) {
	slog.Debug("pointer enter", "target", t.TargetID(), "serial", s, "local", local)
}

func (LogHandler) PointerLeave(t Target, s serial.Serial) {
	slog.Debug("pointer leave", "target", t.TargetID(), "serial", s)
}

func (LogHandler) PointerMotion(t Target, time uint32, local geom.Point) {
	slog.Debug("pointer motion", "target", t.TargetID(), "time", time, "local", local)
}

func (LogHandler) PointerButton(t Target, s serial.Serial, time uint32, button uint32, state input.ButtonState) {
	slog.Debug("pointer button", "target", t.TargetID(), "serial", s, "time", time, "button", button, "state", state)
}

func (LogHandler) PointerAxis(t Target, frame AxisFrame) {
	slog.Debug("pointer axis", "target", t.TargetID(), "frame", frame.String())
}
