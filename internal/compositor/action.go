package compositor

import (
	"log/slog"
	"os"
	"os/exec"

	"github.com/ItsNotGoodName/corrosion/internal/keybind"
	"github.com/ItsNotGoodName/corrosion/internal/space"
)

// Spawner starts programs for the launch and spawn actions.
type Spawner interface {
	Spawn(command string) error
}

// ShellSpawner runs commands with sh -c and reaps them in the background.
type ShellSpawner struct {
	// Env is added to the environment of every spawned process, e.g. WAYLAND_DISPLAY.
	Env []string
}

func (s ShellSpawner) Spawn(command string) error {
	cmd := exec.Command("sh", "-c", command)
	cmd.Env = append(os.Environ(), s.Env...)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Spawned process exited", "command", command, "error", err)
		}
	}()
	return nil
}

// handleAction runs an action resolved by the keyboard filter, after the seat is done with the
// key event.
func (s *State) handleAction(action keybind.Action) error {
	slog.Debug("Handling action", "action", action.String())

	switch a := action.(type) {
	case keybind.Launch:
		s.spawn(a.Command)
	case keybind.Spawn:
		s.spawn(a.Command)
	case keybind.Quit:
		slog.Info("Quitting")
		s.quit = true
	case keybind.CloseWindow:
		if w, ok := s.FocusedWindow(); ok {
			s.AbortGrab(w)
			w.Close()
		}
	}
	return nil
}

func (s *State) spawn(command string) {
	if s.spawner == nil {
		return
	}
	if err := s.spawner.Spawn(command); err != nil {
		slog.Error("Failed to spawn", "command", command, "error", err)
	}
}

// FocusedWindow returns the mapped window holding keyboard focus.
func (s *State) FocusedWindow() (*space.Window, bool) {
	keyboard, ok := s.Seat.Keyboard()
	if !ok || keyboard.Focus() == nil {
		return nil, false
	}
	return s.Space.FindWindow(keyboard.Focus().TargetID())
}
