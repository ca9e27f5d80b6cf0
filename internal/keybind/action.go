package keybind

import "fmt"

// Action is a compositor-level effect bound to a key.
type Action interface {
	String() string
	isAction()
}

// Launch runs the application launcher.
type Launch struct {
	Command string
}

// Spawn runs a program, usually the terminal.
type Spawn struct {
	Command string
}

type Quit struct{}

// CloseWindow closes the window holding keyboard focus.
type CloseWindow struct{}

func (a Launch) String() string    { return fmt.Sprintf("launch(%s)", a.Command) }
func (a Spawn) String() string     { return fmt.Sprintf("spawn(%s)", a.Command) }
func (Quit) String() string        { return "quit" }
func (CloseWindow) String() string { return "close-window" }

func (Launch) isAction()      {}
func (Spawn) isAction()       {}
func (Quit) isAction()        {}
func (CloseWindow) isAction() {}

// ParseAction builds an Action from its config name. Launch and spawn require a command.
func ParseAction(name, command string) (Action, error) {
	switch name {
	case "launch", "launcher":
		if command == "" {
			return nil, fmt.Errorf("action %q: missing command", name)
		}
		return Launch{Command: command}, nil
	case "spawn", "exec":
		if command == "" {
			return nil, fmt.Errorf("action %q: missing command", name)
		}
		return Spawn{Command: command}, nil
	case "quit":
		return Quit{}, nil
	case "close", "close-window":
		return CloseWindow{}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", name)
	}
}
