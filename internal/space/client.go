package space

import (
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
)

// EchoClient is a cooperative client that acknowledges and commits every configure straight
// away, taking the proposed size as is.
type EchoClient struct {
	Space *Space
	// OnClose is called when the compositor asks a window to close.
	OnClose func(w *Window)
}

func (c EchoClient) Configure(w *Window, s serial.Serial, state ToplevelState) {
	if err := w.AckConfigure(s); err != nil {
		slog.Error("Failed to ack configure", "window", w.ID(), "serial", s, "error", err)
		return
	}

	var size geom.Size
	if state.Size != nil {
		size = *state.Size
	}
	if err := c.Space.Commit(w, size); err != nil {
		slog.Debug("Commit skipped", "window", w.ID(), "error", err)
	}
}

func (c EchoClient) Close(w *Window) {
	if c.OnClose != nil {
		c.OnClose(w)
	}
}
