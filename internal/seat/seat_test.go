package seat

import (
	"fmt"
	"testing"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
	"github.com/ItsNotGoodName/corrosion/internal/xkb"
)

type target string

func (t target) TargetID() string { return string(t) }

type recorder struct {
	LogHandler
	calls []string
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) KeyboardEnter(t Target, s serial.Serial, pressed []uint32) {
	r.record("kb-enter %s", t.TargetID())
}

func (r *recorder) KeyboardLeave(t Target, s serial.Serial) {
	r.record("kb-leave %s", t.TargetID())
}

func (r *recorder) KeyboardKey(t Target, s serial.Serial, time uint32, code uint32, state input.KeyState) {
	r.record("key %s %d %s", t.TargetID(), code, state)
}

func (r *recorder) PointerEnter(t Target, s serial.Serial, local geom.Point) {
	r.record("ptr-enter %s %v", t.TargetID(), local)
}

func (r *recorder) PointerLeave(t Target, s serial.Serial) {
	r.record("ptr-leave %s", t.TargetID())
}

func (r *recorder) PointerButton(t Target, s serial.Serial, time uint32, button uint32, state input.ButtonState) {
	r.record("button %s %#x %s", t.TargetID(), button, state)
}

func (r *recorder) PointerAxis(t Target, frame AxisFrame) {
	r.record("axis %s", t.TargetID())
}

func (r *recorder) take() []string {
	calls := r.calls
	r.calls = nil
	return calls
}

func expectCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("calls = %q, want %q", got, want)
		}
	}
}

func intercept(code uint32) KeyFilter {
	return func(mods xkb.ModifiersState, handle KeysymHandle) FilterResult {
		if handle.Code == code {
			return FilterIntercept
		}
		return FilterForward
	}
}

func TestKeyboardFocus(t *testing.T) {
	rec := &recorder{}
	kb := New("seat0", rec).AddKeyboard()

	kb.SetFocus(target("a"), 1)
	kb.SetFocus(target("a"), 2)
	kb.SetFocus(target("b"), 3)
	kb.SetFocus(nil, 4)
	expectCalls(t, rec.take(), "kb-enter a", "kb-leave a", "kb-enter b", "kb-leave b")
	if kb.Focus() != nil {
		t.Errorf("Focus() = %v, want nil", kb.Focus())
	}
}

func TestKeyboardInputIntercept(t *testing.T) {
	rec := &recorder{}
	kb := New("seat0", rec).AddKeyboard()
	kb.SetFocus(target("a"), 1)
	rec.take()

	if kb.Input(30, input.KeyPressed, 2, 0, intercept(16)) {
		t.Error("forwarded key reported as intercepted")
	}
	if !kb.Input(16, input.KeyPressed, 3, 0, intercept(16)) {
		t.Error("intercepted key reported as forwarded")
	}
	kb.Input(16, input.KeyReleased, 4, 0, intercept(16))
	kb.Input(30, input.KeyReleased, 5, 0, intercept(16))

	expectCalls(t, rec.take(), "key a 30 pressed", "key a 30 released")
}

func TestKeyboardReleaseFollowsPress(t *testing.T) {
	rec := &recorder{}
	kb := New("seat0", rec).AddKeyboard()
	kb.SetFocus(target("a"), 1)
	rec.take()

	// Forwarded press, intercepted release: the client still gets the release.
	kb.Input(30, input.KeyPressed, 2, 0, nil)
	kb.Input(30, input.KeyReleased, 3, 0, intercept(30))
	expectCalls(t, rec.take(), "key a 30 pressed", "key a 30 released")
}

func TestKeyboardFilterSeesModifiers(t *testing.T) {
	kb := New("seat0", &recorder{}).AddKeyboard()

	kb.Input(125, input.KeyPressed, 1, 0, nil)
	var got KeysymHandle
	var gotMods xkb.ModifiersState
	kb.Input(16, input.KeyPressed, 2, 0, func(mods xkb.ModifiersState, handle KeysymHandle) FilterResult {
		got, gotMods = handle, mods
		return FilterForward
	})
	if !gotMods.Logo {
		t.Error("filter did not see logo held")
	}
	if got.ModifiedSym != xkb.Keyq || got.RawSym != xkb.Keyq || got.Code != 16 {
		t.Errorf("handle = %+v", got)
	}
}

func TestKeyboardInputReentryPanics(t *testing.T) {
	kb := New("seat0", &recorder{}).AddKeyboard()
	defer func() {
		if recover() == nil {
			t.Error("re-entered Input did not panic")
		}
	}()
	kb.Input(30, input.KeyPressed, 1, 0, func(xkb.ModifiersState, KeysymHandle) FilterResult {
		kb.Input(31, input.KeyPressed, 2, 0, nil)
		return FilterForward
	})
}

func TestPointerFocus(t *testing.T) {
	rec := &recorder{}
	p := New("seat0", rec).AddPointer()

	a := &PointerFocus{Target: target("a"), Location: geom.Point{X: 10, Y: 10}}
	p.Motion(a, MotionEvent{Location: geom.Point{X: 15, Y: 20}, Serial: 1})
	p.Motion(a, MotionEvent{Location: geom.Point{X: 16, Y: 20}, Serial: 2})
	p.Motion(nil, MotionEvent{Location: geom.Point{X: 500, Y: 500}, Serial: 3})

	expectCalls(t, rec.take(), "ptr-enter a (5.00, 10.00)", "ptr-leave a")
	if p.CurrentLocation() != (geom.Point{X: 500, Y: 500}) {
		t.Errorf("CurrentLocation() = %v", p.CurrentLocation())
	}
}

func TestPointerButtonPressedSet(t *testing.T) {
	p := New("seat0", &recorder{}).AddPointer()

	p.Button(ButtonEvent{Button: input.BtnLeft, State: input.ButtonPressed})
	p.Button(ButtonEvent{Button: input.BtnLeft, State: input.ButtonPressed})
	if !p.IsPressed(input.BtnLeft) {
		t.Error("left not pressed")
	}
	p.Button(ButtonEvent{Button: input.BtnLeft, State: input.ButtonReleased})
	if p.IsPressed(input.BtnLeft) {
		t.Error("left pressed after one release")
	}
}

// testGrab forwards everything and ends on any release.
type testGrab struct {
	unsets int
	motion int
}

func (g *testGrab) Motion(h *GrabHandle, focus *PointerFocus, ev MotionEvent) {
	g.motion++
	h.Motion(nil, ev)
}

func (g *testGrab) Button(h *GrabHandle, ev ButtonEvent) {
	h.Button(ev)
	if ev.State == input.ButtonReleased {
		h.UnsetGrab()
	}
}

func (g *testGrab) Axis(h *GrabHandle, frame AxisFrame) { h.Axis(frame) }
func (g *testGrab) StartData() GrabStartData            { return GrabStartData{} }
func (g *testGrab) Target() Target                      { return target("a") }
func (g *testGrab) Unset()                              { g.unsets++ }

func TestPointerGrab(t *testing.T) {
	rec := &recorder{}
	p := New("seat0", rec).AddPointer()
	p.Motion(&PointerFocus{Target: target("a")}, MotionEvent{Location: geom.Point{X: 1, Y: 1}, Serial: 1})
	rec.take()

	g := &testGrab{}
	p.SetGrab(g, 2, FocusClear)
	expectCalls(t, rec.take(), "ptr-leave a")
	if p.Grab() != g || !p.IsGrabbed() {
		t.Fatal("grab not installed")
	}

	p.Motion(&PointerFocus{Target: target("b")}, MotionEvent{Location: geom.Point{X: 2, Y: 2}, Serial: 3})
	if g.motion != 1 {
		t.Errorf("grab saw %d motions, want 1", g.motion)
	}
	if p.Focus() != nil {
		t.Errorf("focus = %v, want nil while the grab passes no focus", p.Focus())
	}

	p.Button(ButtonEvent{Button: input.BtnLeft, State: input.ButtonReleased, Serial: 4})
	if p.IsGrabbed() {
		t.Error("grab still set after release")
	}
	if g.unsets != 1 {
		t.Errorf("Unset called %d times, want 1", g.unsets)
	}

	p.UnsetGrab()
	if g.unsets != 1 {
		t.Errorf("Unset called %d times after second UnsetGrab, want 1", g.unsets)
	}
}

func TestSetGrabReplacesGrab(t *testing.T) {
	p := New("seat0", &recorder{}).AddPointer()
	first, second := &testGrab{}, &testGrab{}

	p.SetGrab(first, 1, FocusKeep)
	p.SetGrab(second, 2, FocusKeep)
	if first.unsets != 1 || second.unsets != 0 {
		t.Errorf("unsets = %d, %d, want 1, 0", first.unsets, second.unsets)
	}
}

func TestAxisFrameString(t *testing.T) {
	f := NewAxisFrame(7).
		WithSource(input.AxisSourceWheel).
		Value(input.AxisVertical, 15).
		Discrete(input.AxisVertical, 1).
		Stop(input.AxisHorizontal)
	if got, want := f.String(), "time=7 source=wheel horizontal=stop vertical=15.00(1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
