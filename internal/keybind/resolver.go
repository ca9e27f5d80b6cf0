// Package keybind resolves compositor keybindings. Resolution is pure: it never runs the
// action it returns.
package keybind

import (
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/ItsNotGoodName/corrosion/internal/xkb"
)

// Binding binds a keysym to an action. Letters match regardless of case.
type Binding struct {
	Sym    xkb.Keysym
	Action Action
}

// DefaultBindings is the built-in table: launcher on h, quit on q, terminal on Return and
// close-window on x.
func DefaultBindings(launcher, terminal string) []Binding {
	return []Binding{
		{Sym: xkb.Keyh, Action: Launch{Command: launcher}},
		{Sym: xkb.Keyq, Action: Quit{}},
		{Sym: xkb.KeyReturn, Action: Spawn{Command: terminal}},
		{Sym: xkb.Keyx, Action: CloseWindow{}},
	}
}

// Resolver maps key events to actions. The zero value forwards everything.
type Resolver struct {
	leader   xkb.Modifier
	bindings map[xkb.Keysym]Action
}

// NewResolver builds a resolver for leader. Later bindings replace earlier ones for the same
// key.
func NewResolver(leader xkb.Modifier, bindings []Binding) Resolver {
	m := make(map[xkb.Keysym]Action, len(bindings))
	for _, b := range bindings {
		m[b.Sym.ToLower()] = b.Action
	}
	return Resolver{
		leader:   leader,
		bindings: m,
	}
}

func (r Resolver) Leader() xkb.Modifier {
	return r.leader
}

// Resolve returns the action bound to sym when the leader is held and the key was pressed.
// ok is false when the event must be forwarded to the focused client.
func (r Resolver) Resolve(mods xkb.ModifiersState, sym xkb.Keysym, state input.KeyState) (action Action, ok bool) {
	if state != input.KeyPressed || r.leader == xkb.ModNone || !mods.Has(r.leader) {
		return nil, false
	}

	action, ok = r.bindings[sym.ToLower()]
	return action, ok
}
