package evdev

import (
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	evdev "github.com/gvalkov/golang-evdev"
)

const keyRepeat = 2

// AbsRange is the value range of an absolute axis.
type AbsRange struct {
	Min int32
	Max int32
}

func (r AbsRange) normalize(v int32) float64 {
	if r.Max <= r.Min {
		return 0
	}
	n := float64(v-r.Min) / float64(r.Max-r.Min)
	return min(max(n, 0), 1)
}

// Translator batches the events of one device between SYN_REPORTs into compositor events.
type Translator struct {
	AbsX AbsRange
	AbsY AbsRange

	rel      geom.Point
	hasRel   bool
	abs      [2]int32
	hasAbs   bool
	wheel    [2]int32
	hasWheel bool
	time     uint32
}

// Feed consumes one kernel event and returns the compositor events it completes.
func (t *Translator) Feed(ev evdev.InputEvent) []input.Event {
	t.time = timestamp(ev)

	switch ev.Type {
	case evdev.EV_KEY:
		return t.key(ev)
	case evdev.EV_REL:
		switch ev.Code {
		case evdev.REL_X:
			t.rel.X += float64(ev.Value)
			t.hasRel = true
		case evdev.REL_Y:
			t.rel.Y += float64(ev.Value)
			t.hasRel = true
		case evdev.REL_HWHEEL:
			t.wheel[input.AxisHorizontal] += ev.Value
			t.hasWheel = true
		case evdev.REL_WHEEL:
			// The kernel counts up as positive, the compositor scrolls down for positive values.
			t.wheel[input.AxisVertical] -= ev.Value
			t.hasWheel = true
		}
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_X:
			t.abs[0] = ev.Value
			t.hasAbs = true
		case evdev.ABS_Y:
			t.abs[1] = ev.Value
			t.hasAbs = true
		}
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			return t.flush()
		}
	}
	return nil
}

func (t *Translator) key(ev evdev.InputEvent) []input.Event {
	if ev.Value == keyRepeat {
		return nil
	}

	switch {
	case ev.Code >= evdev.BTN_LEFT && ev.Code <= evdev.BTN_TASK:
		state := input.ButtonReleased
		if ev.Value != 0 {
			state = input.ButtonPressed
		}
		return []input.Event{input.PointerButtonEvent{
			Timestamp: t.time,
			Button:    uint32(ev.Code),
			State:     state,
		}}
	case ev.Code < evdev.BTN_MISC:
		state := input.KeyReleased
		if ev.Value != 0 {
			state = input.KeyPressed
		}
		return []input.Event{input.KeyboardKeyEvent{
			Timestamp: t.time,
			KeyCode:   uint32(ev.Code),
			State:     state,
		}}
	default:
		return nil
	}
}

func (t *Translator) flush() []input.Event {
	var out []input.Event

	if t.hasRel {
		out = append(out, input.PointerMotionEvent{Timestamp: t.time, Delta: t.rel})
	}
	if t.hasAbs {
		out = append(out, input.PointerMotionAbsoluteEvent{
			Timestamp: t.time,
			X:         t.AbsX.normalize(t.abs[0]),
			Y:         t.AbsY.normalize(t.abs[1]),
		})
	}
	if t.hasWheel {
		ev := input.PointerAxisEvent{Timestamp: t.time, Source: input.AxisSourceWheel}
		if v := t.wheel[input.AxisHorizontal]; v != 0 {
			ev.Horizontal.Discrete = input.Float(float64(v))
		}
		if v := t.wheel[input.AxisVertical]; v != 0 {
			ev.Vertical.Discrete = input.Float(float64(v))
		}
		out = append(out, ev)
	}

	t.rel, t.hasRel = geom.Point{}, false
	t.hasAbs = false
	t.wheel, t.hasWheel = [2]int32{}, false
	return out
}

// timestamp converts the kernel event time to milliseconds.
func timestamp(ev evdev.InputEvent) uint32 {
	return uint32(int64(ev.Time.Sec)*1000 + int64(ev.Time.Usec)/1000)
}
