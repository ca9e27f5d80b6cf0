package space

import (
	"errors"
	"fmt"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
	"github.com/google/uuid"
)

var ErrUnknownConfigure = errors.New("unknown configure serial")

// ToplevelState is the state a configure proposes to the client.
type ToplevelState struct {
	// Size is the proposed size. A nil Size lets the client pick.
	Size      *geom.Size
	Activated bool
	Resizing  bool
}

type configure struct {
	serial serial.Serial
	state  ToplevelState
}

// ResizePhase tracks an interactive resize across configures and commits.
type ResizePhase uint8

const (
	ResizeIdle ResizePhase = iota
	ResizeActive
	// ResizeWaitingForLastCommit means the grab ended and the client has yet to commit the
	// final configure.
	ResizeWaitingForLastCommit
)

// ResizeState is kept on the window so commits can re-anchor the window while the left or top
// edge is being dragged.
type ResizeState struct {
	Phase       ResizePhase
	Edges       Edges
	InitialRect geom.Rect
	// FinalSerial is the configure that ends the resize.
	FinalSerial serial.Serial
}

// Client is the client side of a window. It is told about every configure sent.
type Client interface {
	Configure(w *Window, s serial.Serial, state ToplevelState)
	Close(w *Window)
}

// Window is a toplevel surface placed in a Space.
type Window struct {
	id      string
	Title   string
	client  Client
	serials *serial.Counter

	size    geom.Size
	minSize geom.Size
	maxSize geom.Size

	pending    ToplevelState
	current    ToplevelState
	acked      *configure
	committed  serial.Serial
	configures []configure

	resize ResizeState
}

// NewWindow creates a window of size whose configures are minted from serials.
func NewWindow(title string, size geom.Size, serials *serial.Counter, client Client) *Window {
	return &Window{
		id:      uuid.NewString(),
		Title:   title,
		client:  client,
		serials: serials,
		size:    size,
		minSize: geom.Size{W: 1, H: 1},
	}
}

func (w *Window) ID() string {
	return w.id
}

// TargetID makes the window's surface a seat focus target.
func (w *Window) TargetID() string {
	return w.id
}

func (w *Window) String() string {
	return fmt.Sprintf("space.Window(id=%s, title=%q)", w.id, w.Title)
}

// Size is the size of the last committed buffer.
func (w *Window) Size() geom.Size {
	return w.size
}

// Geometry is the window geometry relative to its own location.
func (w *Window) Geometry() geom.Rect {
	return geom.Rect{Size: w.size}
}

// SetSizeHints sets the client's min and max size. A zero max axis is unbounded.
func (w *Window) SetSizeHints(min, max geom.Size) {
	w.minSize, w.maxSize = min, max
}

func (w *Window) SizeHints() (min, max geom.Size) {
	return w.minSize, w.maxSize
}

// Activated reports the activation state last committed by the client.
func (w *Window) Activated() bool {
	return w.current.Activated
}

// SetActivated changes the pending activation state and reports whether it changed.
func (w *Window) SetActivated(activated bool) bool {
	if w.pending.Activated == activated {
		return false
	}
	w.pending.Activated = activated
	return true
}

// Pending returns the state the next configure will carry.
func (w *Window) Pending() ToplevelState {
	return w.pending
}

func (w *Window) WithPendingState(fn func(state *ToplevelState)) {
	fn(&w.pending)
}

func (w *Window) ResizeState() ResizeState {
	return w.resize
}

func (w *Window) SetResizeState(state ResizeState) {
	w.resize = state
}

// SendConfigure sends the pending state to the client and returns the configure serial.
func (w *Window) SendConfigure() serial.Serial {
	state := w.pending
	if state.Size != nil {
		size := *state.Size
		state.Size = &size
	}

	s := w.serials.Next()
	w.configures = append(w.configures, configure{serial: s, state: state})
	if w.client != nil {
		w.client.Configure(w, s, state)
	}
	return s
}

// HasPendingConfigure reports whether a sent configure has not been acknowledged.
func (w *Window) HasPendingConfigure() bool {
	return len(w.configures) > 0
}

// LastConfigure returns the serial of the last configure sent, acknowledged or not.
func (w *Window) LastConfigure() (serial.Serial, bool) {
	if len(w.configures) > 0 {
		return w.configures[len(w.configures)-1].serial, true
	}
	if w.acked != nil {
		return w.acked.serial, true
	}
	return 0, false
}

// AckConfigure records the client acknowledging configure s. Older configures are dropped.
func (w *Window) AckConfigure(s serial.Serial) error {
	for i, c := range w.configures {
		if c.serial == s {
			ack := c
			w.acked = &ack
			w.configures = w.configures[i+1:]
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownConfigure, s)
}

// commit applies the acknowledged state with a buffer of size. It returns the serial of the
// acknowledged configure, if any.
func (w *Window) commit(size geom.Size) (serial.Serial, bool) {
	if !size.IsEmpty() {
		w.size = size
	}
	if w.acked == nil {
		return 0, false
	}
	w.current = w.acked.state
	w.committed = w.acked.serial
	return w.acked.serial, true
}

// Committed returns the serial of the configure the last commit applied, or zero.
func (w *Window) Committed() serial.Serial {
	return w.committed
}

// Close asks the client to close the window.
func (w *Window) Close() {
	if w.client != nil {
		w.client.Close(w)
	}
}
