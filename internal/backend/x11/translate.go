package x11

import (
	"github.com/ItsNotGoodName/corrosion/internal/backend"
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// keycodeOffset is the distance between X keycodes and evdev key codes.
const keycodeOffset = 8

// X core pointer buttons.
const (
	buttonLeft       = 1
	buttonMiddle     = 2
	buttonRight      = 3
	buttonWheelUp    = 4
	buttonWheelDown  = 5
	buttonWheelLeft  = 6
	buttonWheelRight = 7
	buttonBack       = 8
	buttonForward    = 9
)

var buttonCodes = map[xproto.Button]uint32{
	buttonLeft:    input.BtnLeft,
	buttonMiddle:  input.BtnMiddle,
	buttonRight:   input.BtnRight,
	buttonBack:    input.BtnSide,
	buttonForward: input.BtnExtra,
}

// Translator turns X events of the host window into compositor events. It tracks the window
// size to normalize pointer positions.
type Translator struct {
	Output string
	Size   geom.Size
}

// Translate returns the compositor events for ev. Events it does not know are dropped.
func (t *Translator) Translate(ev xgb.Event) []any {
	switch ev := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		size := geom.Size{W: int(ev.Width), H: int(ev.Height)}
		if size == t.Size {
			return nil
		}
		t.Size = size
		return []any{backend.OutputEvent{Name: t.Output, Size: size}}
	case xproto.KeyPressEvent:
		return []any{keyEvent(ev.Detail, ev.Time, input.KeyPressed)}
	case xproto.KeyReleaseEvent:
		return []any{keyEvent(ev.Detail, ev.Time, input.KeyReleased)}
	case xproto.ButtonPressEvent:
		if axis, ok := wheelEvent(ev.Detail, ev.Time); ok {
			return []any{axis}
		}
		return buttonEvent(ev.Detail, ev.Time, input.ButtonPressed)
	case xproto.ButtonReleaseEvent:
		return buttonEvent(ev.Detail, ev.Time, input.ButtonReleased)
	case xproto.MotionNotifyEvent:
		return []any{t.motionEvent(ev)}
	default:
		return nil
	}
}

func keyEvent(detail xproto.Keycode, time xproto.Timestamp, state input.KeyState) input.KeyboardKeyEvent {
	return input.KeyboardKeyEvent{
		Timestamp: uint32(time),
		KeyCode:   uint32(detail) - keycodeOffset,
		State:     state,
	}
}

func buttonEvent(detail xproto.Button, time xproto.Timestamp, state input.ButtonState) []any {
	code, ok := buttonCodes[detail]
	if !ok {
		return nil
	}
	return []any{input.PointerButtonEvent{
		Timestamp: uint32(time),
		Button:    code,
		State:     state,
	}}
}

// wheelEvent maps the scroll buttons to one discrete wheel step. X reports no release worth
// forwarding for them.
func wheelEvent(detail xproto.Button, time xproto.Timestamp) (input.PointerAxisEvent, bool) {
	ev := input.PointerAxisEvent{
		Timestamp: uint32(time),
		Source:    input.AxisSourceWheel,
	}
	switch detail {
	case buttonWheelUp:
		ev.Vertical.Discrete = input.Float(-1)
	case buttonWheelDown:
		ev.Vertical.Discrete = input.Float(1)
	case buttonWheelLeft:
		ev.Horizontal.Discrete = input.Float(-1)
	case buttonWheelRight:
		ev.Horizontal.Discrete = input.Float(1)
	default:
		return ev, false
	}
	return ev, true
}

func (t *Translator) motionEvent(ev xproto.MotionNotifyEvent) input.PointerMotionAbsoluteEvent {
	out := input.PointerMotionAbsoluteEvent{Timestamp: uint32(ev.Time)}
	if t.Size.W > 0 {
		out.X = float64(ev.EventX) / float64(t.Size.W)
	}
	if t.Size.H > 0 {
		out.Y = float64(ev.EventY) / float64(t.Size.H)
	}
	return out
}
