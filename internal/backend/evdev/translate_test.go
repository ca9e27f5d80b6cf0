package evdev

import (
	"syscall"
	"testing"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	evdev "github.com/gvalkov/golang-evdev"
)

func syn() evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
}

func TestFeedKeys(t *testing.T) {
	var tr Translator

	tests := []struct {
		ev   evdev.InputEvent
		want []input.Event
	}{
		{
			evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 1},
			[]input.Event{input.KeyboardKeyEvent{KeyCode: evdev.KEY_A, State: input.KeyPressed}},
		},
		{
			evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 2},
			nil,
		},
		{
			evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 0},
			[]input.Event{input.KeyboardKeyEvent{KeyCode: evdev.KEY_A, State: input.KeyReleased}},
		},
		{
			evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.BTN_RIGHT, Value: 1},
			[]input.Event{input.PointerButtonEvent{Button: input.BtnRight, State: input.ButtonPressed}},
		},
		{
			evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.BTN_TOUCH, Value: 1},
			nil,
		},
	}
	for _, tt := range tests {
		got := tr.Feed(tt.ev)
		if len(got) != len(tt.want) {
			t.Errorf("Feed(%+v) = %v, want %v", tt.ev, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Feed(%+v)[%d] = %v, want %v", tt.ev, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFeedBatchesRelativeMotion(t *testing.T) {
	var tr Translator

	for _, ev := range []evdev.InputEvent{
		{Type: evdev.EV_REL, Code: evdev.REL_X, Value: 3},
		{Type: evdev.EV_REL, Code: evdev.REL_Y, Value: -2},
		{Type: evdev.EV_REL, Code: evdev.REL_X, Value: 1},
	} {
		if got := tr.Feed(ev); len(got) != 0 {
			t.Fatalf("Feed before SYN_REPORT = %v, want nothing", got)
		}
	}

	got := tr.Feed(syn())
	want := input.PointerMotionEvent{Delta: geom.Point{X: 4, Y: -2}}
	if len(got) != 1 || got[0] != want {
		t.Errorf("SYN_REPORT = %v, want %v", got, want)
	}

	if got := tr.Feed(syn()); len(got) != 0 {
		t.Errorf("empty SYN_REPORT = %v, want nothing", got)
	}
}

func TestFeedWheel(t *testing.T) {
	var tr Translator
	tr.Feed(evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_WHEEL, Value: 1})
	tr.Feed(evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_HWHEEL, Value: 2})

	got := tr.Feed(syn())
	if len(got) != 1 {
		t.Fatalf("SYN_REPORT = %v, want one axis event", got)
	}
	ev, ok := got[0].(input.PointerAxisEvent)
	if !ok {
		t.Fatalf("SYN_REPORT = %T, want input.PointerAxisEvent", got[0])
	}
	if d, _ := ev.AmountDiscrete(input.AxisVertical); d != -1 {
		t.Errorf("vertical discrete = %v, want -1", d)
	}
	if d, _ := ev.AmountDiscrete(input.AxisHorizontal); d != 2 {
		t.Errorf("horizontal discrete = %v, want 2", d)
	}
	if ev.Source != input.AxisSourceWheel {
		t.Errorf("source = %v, want wheel", ev.Source)
	}
}

func TestFeedAbsolute(t *testing.T) {
	tr := Translator{
		AbsX: AbsRange{Min: 0, Max: 4000},
		AbsY: AbsRange{Min: 1000, Max: 2000},
	}
	tr.Feed(evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_X, Value: 1000})
	tr.Feed(evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_Y, Value: 1500})

	got := tr.Feed(syn())
	want := input.PointerMotionAbsoluteEvent{X: 0.25, Y: 0.5}
	if len(got) != 1 || got[0] != want {
		t.Errorf("SYN_REPORT = %v, want %v", got, want)
	}

	// Only X moved, Y keeps its last value.
	tr.Feed(evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_X, Value: 9000})
	got = tr.Feed(syn())
	want = input.PointerMotionAbsoluteEvent{X: 1, Y: 0.5}
	if len(got) != 1 || got[0] != want {
		t.Errorf("SYN_REPORT = %v, want %v", got, want)
	}
}

func TestTimestamp(t *testing.T) {
	ev := evdev.InputEvent{Time: syscall.Timeval{Sec: 12, Usec: 345678}}
	if got := timestamp(ev); got != 12345 {
		t.Errorf("timestamp = %d, want 12345", got)
	}
}
