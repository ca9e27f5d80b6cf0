// Package input defines the raw events a backend hands to the compositor.
package input

import (
	"fmt"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
)

// Linux input event codes for the pointer buttons the compositor cares about.
const (
	BtnLeft   uint32 = 0x110
	BtnRight  uint32 = 0x111
	BtnMiddle uint32 = 0x112
	BtnSide   uint32 = 0x113
	BtnExtra  uint32 = 0x114
)

// DiscreteScrollStep is how many continuous units one wheel detent is worth when a device only
// reports discrete steps.
const DiscreteScrollStep = 3.0

// Event is one raw input event. Time is the device timestamp in milliseconds.
type Event interface {
	Time() uint32
	isEvent()
}

type KeyState uint8

const (
	KeyReleased KeyState = iota
	KeyPressed
)

func (s KeyState) String() string {
	if s == KeyPressed {
		return "pressed"
	}
	return "released"
}

type ButtonState uint8

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

func (s ButtonState) String() string {
	if s == ButtonPressed {
		return "pressed"
	}
	return "released"
}

type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

type AxisSource uint8

const (
	AxisSourceWheel AxisSource = iota
	AxisSourceFinger
	AxisSourceContinuous
	AxisSourceWheelTilt
)

func (s AxisSource) String() string {
	switch s {
	case AxisSourceWheel:
		return "wheel"
	case AxisSourceFinger:
		return "finger"
	case AxisSourceContinuous:
		return "continuous"
	case AxisSourceWheelTilt:
		return "wheel-tilt"
	default:
		return fmt.Sprintf("AxisSource(%d)", uint8(s))
	}
}

type KeyboardKeyEvent struct {
	Timestamp uint32
	// KeyCode is the Linux evdev key code.
	KeyCode uint32
	State   KeyState
}

// PointerMotionEvent is relative motion.
type PointerMotionEvent struct {
	Timestamp uint32
	Delta     geom.Point
}

// PointerMotionAbsoluteEvent carries a device position normalized to [0, 1] on each axis.
type PointerMotionAbsoluteEvent struct {
	Timestamp uint32
	X         float64
	Y         float64
}

// PositionTransformed maps the normalized position onto an area of the given size.
func (e PointerMotionAbsoluteEvent) PositionTransformed(size geom.Size) geom.Point {
	return geom.Point{
		X: e.X * float64(size.W),
		Y: e.Y * float64(size.H),
	}
}

type PointerButtonEvent struct {
	Timestamp uint32
	Button    uint32
	State     ButtonState
}

// AxisValue is what a device reported for one axis. Either field may be absent.
type AxisValue struct {
	Amount   *float64
	Discrete *float64
}

type PointerAxisEvent struct {
	Timestamp  uint32
	Source     AxisSource
	Horizontal AxisValue
	Vertical   AxisValue
}

func (e PointerAxisEvent) value(axis Axis) AxisValue {
	if axis == AxisVertical {
		return e.Vertical
	}
	return e.Horizontal
}

// Amount returns the continuous scroll amount for axis, if the device reported one.
func (e PointerAxisEvent) Amount(axis Axis) (float64, bool) {
	if v := e.value(axis).Amount; v != nil {
		return *v, true
	}
	return 0, false
}

// AmountDiscrete returns the number of wheel steps for axis, if the device reported any.
func (e PointerAxisEvent) AmountDiscrete(axis Axis) (float64, bool) {
	if v := e.value(axis).Discrete; v != nil {
		return *v, true
	}
	return 0, false
}

// DeviceAddedEvent and DeviceRemovedEvent are reported by backends but carry nothing the
// dispatcher acts on.
type DeviceAddedEvent struct {
	Timestamp uint32
	Name      string
}

type DeviceRemovedEvent struct {
	Timestamp uint32
	Name      string
}

func (e KeyboardKeyEvent) Time() uint32           { return e.Timestamp }
func (e PointerMotionEvent) Time() uint32         { return e.Timestamp }
func (e PointerMotionAbsoluteEvent) Time() uint32 { return e.Timestamp }
func (e PointerButtonEvent) Time() uint32         { return e.Timestamp }
func (e PointerAxisEvent) Time() uint32           { return e.Timestamp }
func (e DeviceAddedEvent) Time() uint32           { return e.Timestamp }
func (e DeviceRemovedEvent) Time() uint32         { return e.Timestamp }

func (KeyboardKeyEvent) isEvent()           {}
func (PointerMotionEvent) isEvent()         {}
func (PointerMotionAbsoluteEvent) isEvent() {}
func (PointerButtonEvent) isEvent()         {}
func (PointerAxisEvent) isEvent()           {}
func (DeviceAddedEvent) isEvent()           {}
func (DeviceRemovedEvent) isEvent()         {}

// Float is a helper for building AxisValue literals.
func Float(v float64) *float64 {
	return &v
}
