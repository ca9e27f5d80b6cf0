package space

import (
	"testing"

	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
)

func newTestSpace() (*Space, *serial.Counter) {
	sp := New()
	sp.MapOutput(Output{Name: "test", Geometry: geom.NewRect(0, 0, 1920, 1080)})
	return sp, serial.NewCounter()
}

func TestElementUnderTopmost(t *testing.T) {
	sp, serials := newTestSpace()
	bottom := NewWindow("bottom", geom.Size{W: 300, H: 300}, serials, nil)
	top := NewWindow("top", geom.Size{W: 100, H: 100}, serials, nil)
	sp.MapElement(bottom, geom.Loc{X: 0, Y: 0}, false)
	sp.MapElement(top, geom.Loc{X: 50, Y: 50}, false)

	tests := []struct {
		p    geom.Point
		want *Window
		loc  geom.Loc
	}{
		{geom.Point{X: 60, Y: 60}, top, geom.Loc{X: 50, Y: 50}},
		{geom.Point{X: 10, Y: 10}, bottom, geom.Loc{}},
		{geom.Point{X: 150, Y: 150}, bottom, geom.Loc{}},
		{geom.Point{X: 299.5, Y: 10}, bottom, geom.Loc{}},
		{geom.Point{X: 300, Y: 10}, nil, geom.Loc{}},
	}
	for _, tt := range tests {
		w, loc, ok := sp.ElementUnder(tt.p)
		if tt.want == nil {
			if ok {
				t.Errorf("ElementUnder(%v) = %v, want miss", tt.p, w)
			}
			continue
		}
		if !ok || w != tt.want || loc != tt.loc {
			t.Errorf("ElementUnder(%v) = %v, %v, %v, want %v, %v", tt.p, w, loc, ok, tt.want, tt.loc)
		}
	}
}

func TestRaiseElementActivatesOnlyOne(t *testing.T) {
	sp, serials := newTestSpace()
	a := NewWindow("a", geom.Size{W: 100, H: 100}, serials, nil)
	b := NewWindow("b", geom.Size{W: 100, H: 100}, serials, nil)
	sp.MapElement(a, geom.Loc{}, true)
	sp.MapElement(b, geom.Loc{}, true)

	if a.Pending().Activated || !b.Pending().Activated {
		t.Fatalf("after mapping b: a=%v b=%v, want a=false b=true", a.Pending().Activated, b.Pending().Activated)
	}

	sp.RaiseElement(a, true)
	if !a.Pending().Activated || b.Pending().Activated {
		t.Errorf("after raising a: a=%v b=%v, want a=true b=false", a.Pending().Activated, b.Pending().Activated)
	}
	if got := sp.Elements(); got[len(got)-1] != a {
		t.Errorf("top = %v, want %v", got[len(got)-1], a)
	}
	if w, _, _ := sp.ElementUnder(geom.Point{X: 1, Y: 1}); w != a {
		t.Errorf("ElementUnder = %v, want %v", w, a)
	}
}

func TestMapElementKeepsStacking(t *testing.T) {
	sp, serials := newTestSpace()
	a := NewWindow("a", geom.Size{W: 10, H: 10}, serials, nil)
	b := NewWindow("b", geom.Size{W: 10, H: 10}, serials, nil)
	sp.MapElement(a, geom.Loc{}, false)
	sp.MapElement(b, geom.Loc{}, false)

	sp.MapElement(a, geom.Loc{X: 5, Y: 5}, false)
	if got := sp.Elements(); got[0] != a || got[1] != b {
		t.Errorf("Elements = %v, want [a b]", got)
	}
	if loc, _ := sp.ElementLocation(a); loc != (geom.Loc{X: 5, Y: 5}) {
		t.Errorf("ElementLocation = %v, want (5,5)", loc)
	}

	sp.UnmapElement(a)
	if _, ok := sp.ElementLocation(a); ok {
		t.Error("ElementLocation after unmap: ok = true, want false")
	}
}

func TestOutputs(t *testing.T) {
	sp := New()
	sp.MapOutput(Output{Name: "a", Geometry: geom.NewRect(0, 0, 100, 100)})
	sp.MapOutput(Output{Name: "b", Geometry: geom.NewRect(100, 0, 50, 200)})
	sp.MapOutput(Output{Name: "a", Geometry: geom.NewRect(0, 0, 80, 80)})

	if n := len(sp.Outputs()); n != 2 {
		t.Fatalf("len(Outputs) = %d, want 2", n)
	}
	if r, _ := sp.OutputGeometry("a"); r != geom.NewRect(0, 0, 80, 80) {
		t.Errorf("OutputGeometry(a) = %v, want 80x80+0+0", r)
	}
	if r := sp.OutputsBounds(); r != geom.NewRect(0, 0, 150, 200) {
		t.Errorf("OutputsBounds = %v, want 150x200+0+0", r)
	}

	sp.UnmapOutput("a")
	if _, ok := sp.OutputGeometry("a"); ok {
		t.Error("OutputGeometry(a) after unmap: ok = true, want false")
	}
}

func TestConfigureAckCommit(t *testing.T) {
	sp, serials := newTestSpace()
	w := NewWindow("w", geom.Size{W: 100, H: 100}, serials, nil)
	sp.MapElement(w, geom.Loc{}, true)

	s1 := w.SendConfigure()
	w.WithPendingState(func(state *ToplevelState) {
		state.Size = &geom.Size{W: 200, H: 150}
	})
	s2 := w.SendConfigure()
	if s2 <= s1 {
		t.Fatalf("serials not increasing: %d then %d", s1, s2)
	}

	if err := w.AckConfigure(s2); err != nil {
		t.Fatalf("AckConfigure: %v", err)
	}
	if w.HasPendingConfigure() {
		t.Error("HasPendingConfigure = true after acking the latest, want false")
	}
	if err := w.AckConfigure(s1); err == nil {
		t.Error("AckConfigure(older) = nil, want error")
	}

	if err := sp.Commit(w, geom.Size{W: 200, H: 150}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !w.Activated() {
		t.Error("Activated = false after commit, want true")
	}
	if w.Size() != (geom.Size{W: 200, H: 150}) {
		t.Errorf("Size = %v, want 200x150", w.Size())
	}
}

func TestCommitReanchorsLeftTopResize(t *testing.T) {
	sp, serials := newTestSpace()
	w := NewWindow("w", geom.Size{W: 200, H: 200}, serials, nil)
	sp.MapElement(w, geom.Loc{X: 100, Y: 100}, false)
	w.SetResizeState(ResizeState{
		Phase:       ResizeActive,
		Edges:       EdgeLeft | EdgeTop,
		InitialRect: geom.NewRect(100, 100, 200, 200),
	})

	w.WithPendingState(func(state *ToplevelState) { state.Size = &geom.Size{W: 250, H: 180} })
	s := w.SendConfigure()
	if err := w.AckConfigure(s); err != nil {
		t.Fatal(err)
	}
	if err := sp.Commit(w, geom.Size{W: 250, H: 180}); err != nil {
		t.Fatal(err)
	}

	if loc, _ := sp.ElementLocation(w); loc != (geom.Loc{X: 50, Y: 120}) {
		t.Errorf("ElementLocation = %v, want (50,120)", loc)
	}
	if w.ResizeState().Phase != ResizeActive {
		t.Errorf("Phase = %v, want ResizeActive", w.ResizeState().Phase)
	}
}

func TestCommitEndsResizeOnFinalSerial(t *testing.T) {
	sp, serials := newTestSpace()
	w := NewWindow("w", geom.Size{W: 200, H: 200}, serials, nil)
	sp.MapElement(w, geom.Loc{}, false)

	early := w.SendConfigure()
	final := w.SendConfigure()
	w.SetResizeState(ResizeState{
		Phase:       ResizeWaitingForLastCommit,
		Edges:       EdgeRight,
		InitialRect: geom.NewRect(0, 0, 200, 200),
		FinalSerial: final,
	})

	if err := w.AckConfigure(early); err != nil {
		t.Fatal(err)
	}
	_ = sp.Commit(w, geom.Size{})
	if w.ResizeState().Phase != ResizeWaitingForLastCommit {
		t.Fatalf("Phase = %v after early commit, want ResizeWaitingForLastCommit", w.ResizeState().Phase)
	}

	if err := w.AckConfigure(final); err != nil {
		t.Fatal(err)
	}
	_ = sp.Commit(w, geom.Size{})
	if w.ResizeState().Phase != ResizeIdle {
		t.Errorf("Phase = %v after final commit, want ResizeIdle", w.ResizeState().Phase)
	}
}

func TestEchoClient(t *testing.T) {
	sp, serials := newTestSpace()
	var closed *Window
	client := EchoClient{Space: sp, OnClose: func(w *Window) { closed = w }}
	w := NewWindow("w", geom.Size{W: 100, H: 100}, serials, client)
	sp.MapElement(w, geom.Loc{}, true)

	w.WithPendingState(func(state *ToplevelState) { state.Size = &geom.Size{W: 64, H: 48} })
	w.SendConfigure()

	if w.HasPendingConfigure() {
		t.Error("HasPendingConfigure = true, want false")
	}
	if w.Size() != (geom.Size{W: 64, H: 48}) {
		t.Errorf("Size = %v, want 64x48", w.Size())
	}
	if !w.Activated() {
		t.Error("Activated = false, want true")
	}

	w.Close()
	if closed != w {
		t.Errorf("OnClose got %v, want %v", closed, w)
	}
}

func TestLayoutGrid(t *testing.T) {
	tests := []struct {
		count   int
		columns int
		rows    int
	}{
		{0, 1, 1},
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 3, 2},
		{7, 3, 3},
	}
	for _, tt := range tests {
		l := NewLayoutGrid(geom.NewRect(0, 0, 1200, 600), tt.count)
		if l.columns != tt.columns || l.rows != tt.rows {
			t.Errorf("NewLayoutGrid(%d) = %dx%d, want %dx%d", tt.count, l.columns, l.rows, tt.columns, tt.rows)
		}
	}

	l := NewLayoutGrid(geom.NewRect(10, 20, 1200, 600), 4)
	if got, want := l.Pane(3), geom.NewRect(610, 320, 600, 300); got != want {
		t.Errorf("Pane(3) = %v, want %v", got, want)
	}
}

func TestEdgesString(t *testing.T) {
	if got := EdgeAll.String(); got != "top|bottom|left|right" {
		t.Errorf("EdgeAll.String() = %q", got)
	}
	if got := (EdgeLeft | EdgeBottom).String(); got != "bottom|left" {
		t.Errorf("String() = %q, want bottom|left", got)
	}
}
