// Package x11 runs the compositor nested in a window of an X server. The window is the output
// and X input on it becomes compositor input.
package x11

import (
	"context"
	"log/slog"

	"github.com/ItsNotGoodName/corrosion/internal/backend"
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/thejerf/suture/v4"
)

const OutputName = "x11-0"

type Backend struct {
	eventC chan<- any
	title  string
}

func New(eventC chan<- any, title string) Backend {
	return Backend{
		eventC: eventC,
		title:  title,
	}
}

func (Backend) String() string {
	return "x11.Backend"
}

// Serve ends the supervisor tree when the host window goes away.
func (b Backend) Serve(ctx context.Context) error {
	// X11 connection
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	window, err := CreateWindow(conn, b.title)
	if err != nil {
		return err
	}
	slog := slog.With("wid", window.WID)

	t := Translator{
		Output: OutputName,
		Size:   geom.Size{W: int(window.Width), H: int(window.Height)},
	}
	if !backend.Send(ctx, b.eventC, backend.OutputEvent{Name: t.Output, Size: t.Size}) {
		return ctx.Err()
	}

	xEventC := make(chan xgb.Event)
	go ReceiveEvents(ctx, conn, xEventC)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-xEventC:
			if !ok {
				slog.Debug("exit: event channel closed")
				return suture.ErrTerminateSupervisorTree
			}

			if ev, ok := ev.(xproto.DestroyNotifyEvent); ok && ev.Window == window.WID {
				slog.Debug("exit: destroy notify event")
				return suture.ErrTerminateSupervisorTree
			}

			for _, out := range t.Translate(ev) {
				if !backend.Send(ctx, b.eventC, out) {
					return ctx.Err()
				}
			}
		}
	}
}

type Window struct {
	WID    xproto.Window
	Width  uint16
	Height uint16
}

// CreateWindow creates and maps the host window over the default screen.
func CreateWindow(conn *xgb.Conn, title string) (Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	cursor, err := CreateCursor(conn, CursorLeftPtr)
	if err != nil {
		return Window{}, err
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return Window{}, err
	}

	if err := xproto.CreateWindowChecked(conn, screen.RootDepth,
		wid, screen.Root,
		0, 0, screen.WidthInPixels, screen.HeightInPixels, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3
		[]uint32{
			0, // 1
			xproto.EventMaskStructureNotify |
				xproto.EventMaskKeyPress |
				xproto.EventMaskKeyRelease |
				xproto.EventMaskButtonPress |
				xproto.EventMaskButtonRelease |
				xproto.EventMaskPointerMotion, // 2
			uint32(cursor), // 3
		}).Check(); err != nil {
		return Window{}, err
	}

	if title != "" {
		if err := xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
			xproto.AtomWmName, xproto.AtomString, 8,
			uint32(len(title)), []byte(title)).Check(); err != nil {
			return Window{}, err
		}
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		return Window{}, err
	}

	return Window{
		WID:    wid,
		Width:  screen.WidthInPixels,
		Height: screen.HeightInPixels,
	}, nil
}

func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- xgb.Event) {
	defer close(eventC)
	slog := slog.With("func", "x11.ReceiveEvents")

	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		if err != nil {
			slog.Error("failed to read event", "error", err)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- ev:
		}
	}
}
