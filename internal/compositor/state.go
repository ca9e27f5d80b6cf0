// Package compositor turns backend input events into seat deliveries, keybinding actions and
// interactive grabs.
package compositor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/grab"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/ItsNotGoodName/corrosion/internal/keybind"
	"github.com/ItsNotGoodName/corrosion/internal/seat"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
	"github.com/ItsNotGoodName/corrosion/internal/space"
	"github.com/ItsNotGoodName/corrosion/internal/xkb"
)

var (
	ErrNoKeyboard = errors.New("seat has no keyboard")
	ErrNoPointer  = errors.New("seat has no pointer")
	ErrNoOutput   = errors.New("no output")
	ErrReentrant  = errors.New("input event dispatched while another is being processed")
)

// Settings are the user configurable parts of the dispatcher.
type Settings struct {
	Leader xkb.Modifier
	// GrabModifier must be held for a button press to start a move or resize. ModNone disables
	// grabs.
	GrabModifier xkb.Modifier
	Bindings     []keybind.Binding
	// ResizeMin is the smallest size a resize grab proposes.
	ResizeMin geom.Size
}

func DefaultSettings() Settings {
	return Settings{
		Leader:       xkb.ModLogo,
		GrabModifier: xkb.ModLogo,
		Bindings:     keybind.DefaultBindings("wofi --show drun", "alacritty"),
		ResizeMin:    geom.Size{W: 1, H: 1},
	}
}

// State is everything the dispatcher owns. It is not safe for concurrent use; the Loop runs it
// on one goroutine.
type State struct {
	Seat    *seat.Seat
	Space   *space.Space
	serials *serial.Counter
	spawner Spawner

	resolver  keybind.Resolver
	grabMod   xkb.Modifier
	resizeMin geom.Size

	dispatching bool
	quit        bool
}

// NewState creates a dispatcher over s and sp. serials must be the counter the space's windows
// mint configures from.
func NewState(serials *serial.Counter, s *seat.Seat, sp *space.Space, spawner Spawner, settings Settings) *State {
	st := &State{
		Seat:    s,
		Space:   sp,
		serials: serials,
		spawner: spawner,
	}
	st.ApplySettings(settings)
	return st
}

// ApplySettings replaces the keybindings and grab settings.
func (s *State) ApplySettings(settings Settings) {
	s.resolver = keybind.NewResolver(settings.Leader, settings.Bindings)
	s.grabMod = settings.GrabModifier
	s.resizeMin = settings.ResizeMin
}

func (s *State) Serials() *serial.Counter {
	return s.serials
}

// QuitRequested reports whether a quit action ran.
func (s *State) QuitRequested() bool {
	return s.quit
}

// ProcessInputEvent dispatches one backend event. Events must be passed in arrival order from a
// single goroutine.
func (s *State) ProcessInputEvent(ev input.Event) error {
	if s.dispatching {
		return ErrReentrant
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	switch ev := ev.(type) {
	case input.KeyboardKeyEvent:
		return s.onKeyboardKey(ev)
	case input.PointerMotionEvent:
		return s.onPointerMotion(ev)
	case input.PointerMotionAbsoluteEvent:
		return s.onPointerMotionAbsolute(ev)
	case input.PointerButtonEvent:
		return s.onPointerButton(ev)
	case input.PointerAxisEvent:
		return s.onPointerAxis(ev)
	default:
		return nil
	}
}

func (s *State) onKeyboardKey(ev input.KeyboardKeyEvent) error {
	keyboard, ok := s.Seat.Keyboard()
	if !ok {
		return fmt.Errorf("keyboard key %d: %w", ev.KeyCode, ErrNoKeyboard)
	}

	sr := s.serials.Next()
	var action keybind.Action
	keyboard.Input(ev.KeyCode, ev.State, sr, ev.Timestamp, func(mods xkb.ModifiersState, handle seat.KeysymHandle) seat.FilterResult {
		if a, ok := s.resolver.Resolve(mods, handle.ModifiedSym, ev.State); ok {
			action = a
			return seat.FilterIntercept
		}
		return seat.FilterForward
	})

	if action == nil {
		return nil
	}
	return s.handleAction(action)
}

func (s *State) onPointerMotion(ev input.PointerMotionEvent) error {
	pointer, ok := s.Seat.Pointer()
	if !ok {
		return fmt.Errorf("pointer motion: %w", ErrNoPointer)
	}

	location := pointer.CurrentLocation().Add(ev.Delta)
	location = s.Space.OutputsBounds().ClampPoint(location)

	sr := s.serials.Next()
	pointer.Motion(s.surfaceUnder(location), seat.MotionEvent{
		Location: location,
		Serial:   sr,
		Time:     ev.Timestamp,
	})
	return nil
}

func (s *State) onPointerMotionAbsolute(ev input.PointerMotionAbsoluteEvent) error {
	pointer, ok := s.Seat.Pointer()
	if !ok {
		return fmt.Errorf("pointer motion absolute: %w", ErrNoPointer)
	}

	outputs := s.Space.Outputs()
	if len(outputs) == 0 {
		return fmt.Errorf("pointer motion absolute: %w", ErrNoOutput)
	}
	geo, ok := s.Space.OutputGeometry(outputs[0].Name)
	if !ok {
		return fmt.Errorf("pointer motion absolute: output %q: %w", outputs[0].Name, ErrNoOutput)
	}

	location := ev.PositionTransformed(geo.Size).Add(geo.Loc.ToPoint())

	sr := s.serials.Next()
	pointer.Motion(s.surfaceUnder(location), seat.MotionEvent{
		Location: location,
		Serial:   sr,
		Time:     ev.Timestamp,
	})
	return nil
}

func (s *State) onPointerButton(ev input.PointerButtonEvent) error {
	pointer, ok := s.Seat.Pointer()
	if !ok {
		return fmt.Errorf("pointer button %#x: %w", ev.Button, ErrNoPointer)
	}

	sr := s.serials.Next()

	if ev.State == input.ButtonPressed && !pointer.IsGrabbed() {
		keyboard, ok := s.Seat.Keyboard()
		if !ok {
			return fmt.Errorf("pointer button %#x: %w", ev.Button, ErrNoKeyboard)
		}

		location := pointer.CurrentLocation()
		if window, loc, ok := s.Space.ElementUnder(location); ok {
			s.Space.RaiseElement(window, true)
			keyboard.SetFocus(window, sr)
			s.Space.ConfigureAll()

			if s.grabMod != xkb.ModNone && keyboard.ModifierState().Has(s.grabMod) {
				s.startGrab(pointer, window, loc, ev.Button, sr)
			}
		} else {
			s.Space.DeactivateAll()
			s.Space.ConfigureAll()
			keyboard.SetFocus(nil, sr)
		}
	}

	pointer.Button(seat.ButtonEvent{
		Button: ev.Button,
		State:  ev.State,
		Serial: sr,
		Time:   ev.Timestamp,
	})
	return nil
}

func (s *State) startGrab(pointer *seat.Pointer, window *space.Window, loc geom.Loc, button uint32, sr serial.Serial) {
	start := seat.GrabStartData{
		Focus:    pointer.Focus(),
		Button:   button,
		Location: pointer.CurrentLocation(),
	}

	switch button {
	case input.BtnLeft:
		slog.Debug("Starting move grab", "window", window.ID(), "location", loc)
		pointer.SetGrab(grab.NewMove(start, s.Space, window, loc), sr, seat.FocusClear)
	case input.BtnRight:
		rect := window.Geometry()
		rect.Loc = rect.Loc.Add(loc)
		slog.Debug("Starting resize grab", "window", window.ID(), "rect", rect)
		pointer.SetGrab(grab.NewResize(start, window, space.EdgeAll, rect, s.resizeMin), sr, seat.FocusClear)
	}
}

func (s *State) onPointerAxis(ev input.PointerAxisEvent) error {
	pointer, ok := s.Seat.Pointer()
	if !ok {
		return fmt.Errorf("pointer axis: %w", ErrNoPointer)
	}

	pointer.Axis(BuildAxisFrame(ev))
	return nil
}

// BuildAxisFrame combines both axes of ev into one frame. Wheel steps without a continuous
// amount scroll DiscreteScrollStep each. A finger source reports a stop for an axis that did not
// move.
func BuildAxisFrame(ev input.PointerAxisEvent) seat.AxisFrame {
	frame := seat.NewAxisFrame(ev.Timestamp).WithSource(ev.Source)

	for _, axis := range []input.Axis{input.AxisHorizontal, input.AxisVertical} {
		discrete, hasDiscrete := ev.AmountDiscrete(axis)
		amount, ok := ev.Amount(axis)
		if !ok && hasDiscrete {
			amount = discrete * input.DiscreteScrollStep
		}

		if amount != 0 {
			frame = frame.Value(axis, amount)
			if hasDiscrete {
				frame = frame.Discrete(axis, int32(discrete))
			}
		} else if ev.Source == input.AxisSourceFinger {
			frame = frame.Stop(axis)
		}
	}

	return frame
}

// surfaceUnder returns the pointer focus for the topmost window at p, or nil.
func (s *State) surfaceUnder(p geom.Point) *seat.PointerFocus {
	window, loc, ok := s.Space.ElementUnder(p)
	if !ok {
		return nil
	}
	return &seat.PointerFocus{
		Target:   window,
		Location: loc.ToPoint(),
	}
}
