package xkb

import (
	"fmt"
	"strings"
)

// Keysym is an X keysym value.
type Keysym uint32

const (
	KeyNoSymbol Keysym = 0x0000

	KeySpace      Keysym = 0x0020
	KeyExclam     Keysym = 0x0021
	KeyQuotedbl   Keysym = 0x0022
	KeyNumbersign Keysym = 0x0023
	KeyDollar     Keysym = 0x0024
	KeyPercent    Keysym = 0x0025
	KeyAmpersand  Keysym = 0x0026
	KeyApostrophe Keysym = 0x0027
	KeyParenleft  Keysym = 0x0028
	KeyParenright Keysym = 0x0029
	KeyAsterisk   Keysym = 0x002a
	KeyPlus       Keysym = 0x002b
	KeyComma      Keysym = 0x002c
	KeyMinus      Keysym = 0x002d
	KeyPeriod     Keysym = 0x002e
	KeySlash      Keysym = 0x002f
	Key0          Keysym = 0x0030
	Key9          Keysym = 0x0039
	KeyColon      Keysym = 0x003a
	KeySemicolon  Keysym = 0x003b
	KeyLess       Keysym = 0x003c
	KeyEqual      Keysym = 0x003d
	KeyGreater    Keysym = 0x003e
	KeyQuestion   Keysym = 0x003f
	KeyAt         Keysym = 0x0040
	KeyA          Keysym = 0x0041
	KeyH          Keysym = 0x0048
	KeyQ          Keysym = 0x0051
	KeyX          Keysym = 0x0058
	KeyZ          Keysym = 0x005a
	KeyBracketL   Keysym = 0x005b
	KeyBackslash  Keysym = 0x005c
	KeyBracketR   Keysym = 0x005d
	KeyCircum     Keysym = 0x005e
	KeyUnderscore Keysym = 0x005f
	KeyGrave      Keysym = 0x0060
	Keya          Keysym = 0x0061
	Keyh          Keysym = 0x0068
	Keyq          Keysym = 0x0071
	Keyx          Keysym = 0x0078
	Keyz          Keysym = 0x007a
	KeyBraceL     Keysym = 0x007b
	KeyBar        Keysym = 0x007c
	KeyBraceR     Keysym = 0x007d
	KeyTilde      Keysym = 0x007e

	KeyBackSpace Keysym = 0xff08
	KeyTab       Keysym = 0xff09
	KeyReturn    Keysym = 0xff0d
	KeyEscape    Keysym = 0xff1b
	KeyHome      Keysym = 0xff50
	KeyLeft      Keysym = 0xff51
	KeyUp        Keysym = 0xff52
	KeyRight     Keysym = 0xff53
	KeyDown      Keysym = 0xff54
	KeyPageUp    Keysym = 0xff55
	KeyPageDown  Keysym = 0xff56
	KeyEnd       Keysym = 0xff57
	KeyInsert    Keysym = 0xff63
	KeyNumLock   Keysym = 0xff7f
	KeyF1        Keysym = 0xffbe
	KeyF12       Keysym = 0xffc9
	KeyShiftL    Keysym = 0xffe1
	KeyShiftR    Keysym = 0xffe2
	KeyControlL  Keysym = 0xffe3
	KeyControlR  Keysym = 0xffe4
	KeyCapsLock  Keysym = 0xffe5
	KeyAltL      Keysym = 0xffe9
	KeyAltR      Keysym = 0xffea
	KeySuperL    Keysym = 0xffeb
	KeySuperR    Keysym = 0xffec
	KeyDelete    Keysym = 0xffff
)

// ToLower folds Latin letters to lower case and leaves every other keysym untouched.
func (k Keysym) ToLower() Keysym {
	if k >= KeyA && k <= KeyZ {
		return k + (Keya - KeyA)
	}
	return k
}

func (k Keysym) String() string {
	if name, ok := keysymNames[k]; ok {
		return name
	}
	if k >= 0x20 && k < 0x7f {
		return string(rune(k))
	}
	return fmt.Sprintf("0x%04x", uint32(k))
}

var keysymNames = map[Keysym]string{
	KeySpace:     "space",
	KeyBackSpace: "BackSpace",
	KeyTab:       "Tab",
	KeyReturn:    "Return",
	KeyEscape:    "Escape",
	KeyHome:      "Home",
	KeyLeft:      "Left",
	KeyUp:        "Up",
	KeyRight:     "Right",
	KeyDown:      "Down",
	KeyPageUp:    "Page_Up",
	KeyPageDown:  "Page_Down",
	KeyEnd:       "End",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyNumLock:   "Num_Lock",
	KeyShiftL:    "Shift_L",
	KeyShiftR:    "Shift_R",
	KeyControlL:  "Control_L",
	KeyControlR:  "Control_R",
	KeyCapsLock:  "Caps_Lock",
	KeyAltL:      "Alt_L",
	KeyAltR:      "Alt_R",
	KeySuperL:    "Super_L",
	KeySuperR:    "Super_R",
}

// KeysymFromName resolves names such as "q", "Return" or "F5". Matching of named keys is
// case-insensitive; single characters map to their own keysym.
func KeysymFromName(name string) (Keysym, error) {
	if len(name) == 1 && name[0] >= 0x20 && name[0] < 0x7f {
		return Keysym(name[0]), nil
	}

	for sym, n := range keysymNames {
		if strings.EqualFold(n, name) {
			return sym, nil
		}
	}

	switch strings.ToLower(name) {
	case "enter":
		return KeyReturn, nil
	case "esc":
		return KeyEscape, nil
	case "super", "logo":
		return KeySuperL, nil
	}

	var f int
	if _, err := fmt.Sscanf(strings.ToUpper(name), "F%d", &f); err == nil && f >= 1 && f <= 12 {
		return KeyF1 + Keysym(f-1), nil
	}

	return KeyNoSymbol, fmt.Errorf("unknown keysym %q", name)
}
