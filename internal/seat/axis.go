package seat

import (
	"fmt"
	"strings"

	"github.com/ItsNotGoodName/corrosion/internal/input"
)

// AxisFrame groups the scroll information of one pointer axis event across both axes.
type AxisFrame struct {
	Time      uint32
	Source    input.AxisSource
	HasSource bool
	Values    [2]float64
	HasValue  [2]bool
	Discretes [2]int32
	Stops     [2]bool
}

func NewAxisFrame(time uint32) AxisFrame {
	return AxisFrame{Time: time}
}

func (f AxisFrame) WithSource(source input.AxisSource) AxisFrame {
	f.Source = source
	f.HasSource = true
	return f
}

func (f AxisFrame) Value(axis input.Axis, value float64) AxisFrame {
	f.Values[axis] = value
	f.HasValue[axis] = true
	return f
}

func (f AxisFrame) Discrete(axis input.Axis, steps int32) AxisFrame {
	f.Discretes[axis] = steps
	return f
}

// Stop marks the end of scrolling on axis, e.g. a finger lifted from a touchpad.
func (f AxisFrame) Stop(axis input.Axis) AxisFrame {
	f.Stops[axis] = true
	return f
}

func (f AxisFrame) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "time=%d", f.Time)
	if f.HasSource {
		fmt.Fprintf(&b, " source=%s", f.Source)
	}
	for _, axis := range []input.Axis{input.AxisHorizontal, input.AxisVertical} {
		if f.HasValue[axis] {
			fmt.Fprintf(&b, " %s=%.2f", axis, f.Values[axis])
			if f.Discretes[axis] != 0 {
				fmt.Fprintf(&b, "(%d)", f.Discretes[axis])
			}
		}
		if f.Stops[axis] {
			fmt.Fprintf(&b, " %s=stop", axis)
		}
	}
	return b.String()
}
