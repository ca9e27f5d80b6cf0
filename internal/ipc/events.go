package ipc

import (
	"fmt"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
)

// Event is an input event injected over IPC.
type Event struct {
	Type string `json:"type" enum:"key,motion,motion_absolute,button,axis" doc:"Kind of input event"`
	Time uint32 `json:"time,omitempty" doc:"Device timestamp in milliseconds"`
	// Code is the evdev key code for key events and the button code for button events.
	Code    uint32  `json:"code,omitempty" doc:"Key or button code"`
	Pressed bool    `json:"pressed,omitempty" doc:"Key or button is pressed"`
	X       float64 `json:"x,omitempty" doc:"Relative delta, or normalized position for motion_absolute"`
	Y       float64 `json:"y,omitempty" doc:"Relative delta, or normalized position for motion_absolute"`
	Source  string  `json:"source,omitempty" enum:"wheel,finger,continuous,wheel-tilt" doc:"Axis source"`
	// Horizontal and Vertical are the axis values of axis events.
	Horizontal *AxisValue `json:"horizontal,omitempty"`
	Vertical   *AxisValue `json:"vertical,omitempty"`
}

type AxisValue struct {
	Amount   *float64 `json:"amount,omitempty"`
	Discrete *float64 `json:"discrete,omitempty"`
}

func (v *AxisValue) input() input.AxisValue {
	if v == nil {
		return input.AxisValue{}
	}
	return input.AxisValue{Amount: v.Amount, Discrete: v.Discrete}
}

var axisSources = map[string]input.AxisSource{
	"":           input.AxisSourceWheel,
	"wheel":      input.AxisSourceWheel,
	"finger":     input.AxisSourceFinger,
	"continuous": input.AxisSourceContinuous,
	"wheel-tilt": input.AxisSourceWheelTilt,
}

// Input converts e to the event a backend would have produced.
func (e Event) Input() (input.Event, error) {
	switch e.Type {
	case "key":
		state := input.KeyReleased
		if e.Pressed {
			state = input.KeyPressed
		}
		return input.KeyboardKeyEvent{Timestamp: e.Time, KeyCode: e.Code, State: state}, nil
	case "motion":
		return input.PointerMotionEvent{Timestamp: e.Time, Delta: geom.Point{X: e.X, Y: e.Y}}, nil
	case "motion_absolute":
		if e.X < 0 || e.X > 1 || e.Y < 0 || e.Y > 1 {
			return nil, fmt.Errorf("absolute position (%v, %v) is outside [0, 1]", e.X, e.Y)
		}
		return input.PointerMotionAbsoluteEvent{Timestamp: e.Time, X: e.X, Y: e.Y}, nil
	case "button":
		state := input.ButtonReleased
		if e.Pressed {
			state = input.ButtonPressed
		}
		return input.PointerButtonEvent{Timestamp: e.Time, Button: e.Code, State: state}, nil
	case "axis":
		source, ok := axisSources[e.Source]
		if !ok {
			return nil, fmt.Errorf("unknown axis source %q", e.Source)
		}
		return input.PointerAxisEvent{
			Timestamp:  e.Time,
			Source:     source,
			Horizontal: e.Horizontal.input(),
			Vertical:   e.Vertical.input(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}
