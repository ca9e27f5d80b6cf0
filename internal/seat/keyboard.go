package seat

import (
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
	"github.com/ItsNotGoodName/corrosion/internal/xkb"
)

// KeysymHandle describes the key being filtered.
type KeysymHandle struct {
	Code uint32
	// ModifiedSym is the keysym after shift and caps lock.
	ModifiedSym xkb.Keysym
	RawSym      xkb.Keysym
}

type FilterResult uint8

const (
	// FilterForward delivers the key to the focused client.
	FilterForward FilterResult = iota
	// FilterIntercept keeps the key from the client.
	FilterIntercept
)

// KeyFilter decides whether a key event is intercepted. It runs inside Input and must not call
// back into the seat.
type KeyFilter func(mods xkb.ModifiersState, handle KeysymHandle) FilterResult

type Keyboard struct {
	handler     Handler
	keymap      *xkb.Keymap
	focus       Target
	forwarded   map[uint32]struct{}
	inputActive bool
}

func newKeyboard(handler Handler) *Keyboard {
	return &Keyboard{
		handler:   handler,
		keymap:    xkb.NewKeymap(),
		forwarded: make(map[uint32]struct{}),
	}
}

func (k *Keyboard) ModifierState() xkb.ModifiersState {
	return k.keymap.Modifiers()
}

// Focus returns the target holding keyboard focus, or nil.
func (k *Keyboard) Focus() Target {
	return k.focus
}

// SetFocus moves keyboard focus to t. A nil t clears focus.
func (k *Keyboard) SetFocus(t Target, s serial.Serial) {
	if sameTarget(k.focus, t) {
		return
	}

	if k.focus != nil {
		k.handler.KeyboardLeave(k.focus, s)
	}
	k.focus = t
	if t != nil {
		k.handler.KeyboardEnter(t, s, k.keymap.Pressed())
		k.handler.KeyboardModifiers(t, s, k.keymap.Modifiers())
	}
}

// Input updates the key state with one key event, runs filter and forwards the key to the
// focused client unless the filter intercepts it. A release is only forwarded when its press
// was. Input returns true when the event was intercepted.
func (k *Keyboard) Input(code uint32, state input.KeyState, s serial.Serial, time uint32, filter KeyFilter) bool {
	if k.inputActive {
		panic("seat: Keyboard.Input re-entered from a key filter")
	}
	k.inputActive = true
	defer func() { k.inputActive = false }()

	pressed := state == input.KeyPressed
	if k.keymap.UpdateKey(code, pressed) && k.focus != nil {
		k.handler.KeyboardModifiers(k.focus, s, k.keymap.Modifiers())
	}

	result := FilterForward
	if filter != nil {
		result = filter(k.keymap.Modifiers(), KeysymHandle{
			Code:        code,
			ModifiedSym: k.keymap.ModifiedSym(code),
			RawSym:      k.keymap.RawSym(code),
		})
	}

	if pressed {
		if result == FilterIntercept {
			return true
		}
		k.forwarded[code] = struct{}{}
	} else {
		// The client saw the press, so it gets the release whatever the filter said.
		if _, ok := k.forwarded[code]; !ok {
			return result == FilterIntercept
		}
		delete(k.forwarded, code)
	}

	if k.focus != nil {
		k.handler.KeyboardKey(k.focus, s, time, code, state)
	}
	return result == FilterIntercept
}
