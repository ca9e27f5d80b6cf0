package xkb

import (
	"fmt"
	"strings"
)

// ModifiersState is the modifier snapshot a keyboard holds after each key event.
type ModifiersState struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	Logo     bool
	CapsLock bool
	NumLock  bool
}

// Modifier selects one of the held modifiers of a ModifiersState.
type Modifier uint8

const (
	ModNone Modifier = iota
	ModShift
	ModCtrl
	ModAlt
	ModLogo
)

// Has reports whether mod is held. ModNone is always held.
func (s ModifiersState) Has(mod Modifier) bool {
	switch mod {
	case ModNone:
		return true
	case ModShift:
		return s.Shift
	case ModCtrl:
		return s.Ctrl
	case ModAlt:
		return s.Alt
	case ModLogo:
		return s.Logo
	default:
		return false
	}
}

func (s ModifiersState) String() string {
	var parts []string
	if s.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Logo {
		parts = append(parts, "Logo")
	}
	if s.CapsLock {
		parts = append(parts, "CapsLock")
	}
	if s.NumLock {
		parts = append(parts, "NumLock")
	}
	return strings.Join(parts, "+")
}

func (m Modifier) String() string {
	switch m {
	case ModNone:
		return "none"
	case ModShift:
		return "shift"
	case ModCtrl:
		return "ctrl"
	case ModAlt:
		return "alt"
	case ModLogo:
		return "logo"
	default:
		return fmt.Sprintf("Modifier(%d)", uint8(m))
	}
}

var modifierNameMap = map[string]Modifier{
	"none":    ModNone,
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"mod1":    ModAlt,
	"logo":    ModLogo,
	"super":   ModLogo,
	"meta":    ModLogo,
	"win":     ModLogo,
	"mod4":    ModLogo,
}

// ParseModifier parses a modifier name (case-insensitive).
func ParseModifier(name string) (Modifier, error) {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return ModNone, fmt.Errorf("unknown modifier %q", name)
}
