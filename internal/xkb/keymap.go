// Package xkb translates evdev key codes into keysyms and tracks modifier state for a
// single keyboard using a fixed US layout.
package xkb

// level holds the unshifted and shifted keysym of a key.
type level [2]Keysym

func same(k Keysym) level { return level{k, k} }

// usLayout maps evdev key codes to keysyms.
var usLayout = map[uint32]level{
	1:  same(KeyEscape),
	2:  {'1', KeyExclam},
	3:  {'2', KeyAt},
	4:  {'3', KeyNumbersign},
	5:  {'4', KeyDollar},
	6:  {'5', KeyPercent},
	7:  {'6', KeyCircum},
	8:  {'7', KeyAmpersand},
	9:  {'8', KeyAsterisk},
	10: {'9', KeyParenleft},
	11: {'0', KeyParenright},
	12: {KeyMinus, KeyUnderscore},
	13: {KeyEqual, KeyPlus},
	14: same(KeyBackSpace),
	15: same(KeyTab),
	16: {'q', 'Q'}, 17: {'w', 'W'}, 18: {'e', 'E'}, 19: {'r', 'R'}, 20: {'t', 'T'},
	21: {'y', 'Y'}, 22: {'u', 'U'}, 23: {'i', 'I'}, 24: {'o', 'O'}, 25: {'p', 'P'},
	26: {KeyBracketL, KeyBraceL},
	27: {KeyBracketR, KeyBraceR},
	28: same(KeyReturn),
	29: same(KeyControlL),
	30: {'a', 'A'}, 31: {'s', 'S'}, 32: {'d', 'D'}, 33: {'f', 'F'}, 34: {'g', 'G'},
	35: {'h', 'H'}, 36: {'j', 'J'}, 37: {'k', 'K'}, 38: {'l', 'L'},
	39: {KeySemicolon, KeyColon},
	40: {KeyApostrophe, KeyQuotedbl},
	41: {KeyGrave, KeyTilde},
	42: same(KeyShiftL),
	43: {KeyBackslash, KeyBar},
	44: {'z', 'Z'}, 45: {'x', 'X'}, 46: {'c', 'C'}, 47: {'v', 'V'}, 48: {'b', 'B'},
	49: {'n', 'N'}, 50: {'m', 'M'},
	51:  {KeyComma, KeyLess},
	52:  {KeyPeriod, KeyGreater},
	53:  {KeySlash, KeyQuestion},
	54:  same(KeyShiftR),
	56:  same(KeyAltL),
	57:  same(KeySpace),
	58:  same(KeyCapsLock),
	69:  same(KeyNumLock),
	97:  same(KeyControlR),
	100: same(KeyAltR),
	102: same(KeyHome),
	103: same(KeyUp),
	104: same(KeyPageUp),
	105: same(KeyLeft),
	106: same(KeyRight),
	107: same(KeyEnd),
	108: same(KeyDown),
	109: same(KeyPageDown),
	110: same(KeyInsert),
	111: same(KeyDelete),
	125: same(KeySuperL),
	126: same(KeySuperR),
}

func init() {
	// F1..F10 are contiguous at 59..68, F11 and F12 sit at 87 and 88.
	for i := uint32(0); i < 10; i++ {
		usLayout[59+i] = same(KeyF1 + Keysym(i))
	}
	usLayout[87] = same(KeyF1 + 10)
	usLayout[88] = same(KeyF1 + 11)
}

// Keymap holds the key and modifier state of one keyboard.
type Keymap struct {
	pressed map[uint32]struct{}
	mods    ModifiersState
}

func NewKeymap() *Keymap {
	return &Keymap{
		pressed: make(map[uint32]struct{}),
	}
}

// UpdateKey applies a key press or release and reports whether the modifier state changed.
func (k *Keymap) UpdateKey(code uint32, pressed bool) bool {
	if pressed {
		k.pressed[code] = struct{}{}
	} else {
		delete(k.pressed, code)
	}

	old := k.mods
	switch usLayout[code][0] {
	case KeyCapsLock:
		if pressed {
			k.mods.CapsLock = !k.mods.CapsLock
		}
	case KeyNumLock:
		if pressed {
			k.mods.NumLock = !k.mods.NumLock
		}
	}
	k.mods.Shift = k.held(KeyShiftL, KeyShiftR)
	k.mods.Ctrl = k.held(KeyControlL, KeyControlR)
	k.mods.Alt = k.held(KeyAltL, KeyAltR)
	k.mods.Logo = k.held(KeySuperL, KeySuperR)

	return old != k.mods
}

func (k *Keymap) held(syms ...Keysym) bool {
	for code := range k.pressed {
		for _, sym := range syms {
			if usLayout[code][0] == sym {
				return true
			}
		}
	}
	return false
}

// Modifiers returns the current modifier state.
func (k *Keymap) Modifiers() ModifiersState {
	return k.mods
}

// Pressed returns the key codes currently held down.
func (k *Keymap) Pressed() []uint32 {
	codes := make([]uint32, 0, len(k.pressed))
	for code := range k.pressed {
		codes = append(codes, code)
	}
	return codes
}

// RawSym returns the unmodified keysym of code.
func (k *Keymap) RawSym(code uint32) Keysym {
	return usLayout[code][0]
}

// ModifiedSym returns the keysym of code after shift and caps lock are applied. Caps lock only
// affects letters.
func (k *Keymap) ModifiedSym(code uint32) Keysym {
	l, ok := usLayout[code]
	if !ok {
		return KeyNoSymbol
	}

	shift := k.mods.Shift
	if k.mods.CapsLock && l[0] >= Keya && l[0] <= Keyz {
		shift = !shift
	}
	if shift {
		return l[1]
	}
	return l[0]
}
