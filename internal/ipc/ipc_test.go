package ipc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ItsNotGoodName/corrosion/internal/compositor"
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	"github.com/ItsNotGoodName/corrosion/internal/seat"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
	"github.com/ItsNotGoodName/corrosion/internal/space"
)

// direct runs requests on the calling goroutine.
type direct struct {
	state *compositor.State
}

func (d direct) Do(ctx context.Context, fn func(*compositor.State) error) error {
	return fn(d.state)
}

type nopSpawner struct{}

func (nopSpawner) Spawn(string) error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *compositor.State) {
	t.Helper()
	sp := space.New()
	sp.MapOutput(space.Output{Name: "test", Geometry: geom.NewRect(0, 0, 1000, 1000)})
	st := seat.New("seat0", seat.LogHandler{})
	st.AddKeyboard()
	st.AddPointer()
	state := compositor.NewState(serial.NewCounter(), st, sp, nopSpawner{}, compositor.DefaultSettings())

	srv := httptest.NewServer(NewHandler(direct{state: state}))
	t.Cleanup(srv.Close)
	return srv, state
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if out != nil && res.StatusCode < 300 {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return res.StatusCode
}

func TestGetState(t *testing.T) {
	srv, _ := newTestServer(t)

	var snap compositor.Snapshot
	if code := do(t, srv, http.MethodGet, "/api/state", "", &snap); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(snap.Outputs) != 1 || snap.Outputs[0].Name != "test" || snap.Outputs[0].Width != 1000 {
		t.Errorf("outputs = %+v, want one 1000 wide output named test", snap.Outputs)
	}
}

func TestGetVersion(t *testing.T) {
	srv, _ := newTestServer(t)

	var v map[string]any
	if code := do(t, srv, http.MethodGet, "/api/version", "", &v); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if v["version"] == "" {
		t.Errorf("version = %v, want non-empty", v)
	}
}

func TestCreateWindow(t *testing.T) {
	srv, _ := newTestServer(t)

	var w compositor.WindowSnapshot
	code := do(t, srv, http.MethodPost, "/api/windows", `{"title":"term","x":10,"y":20,"width":300,"height":200}`, &w)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}
	if w.Title != "term" || w.X != 10 || w.Y != 20 || w.Width != 300 || w.Height != 200 || !w.Activated {
		t.Errorf("window = %+v", w)
	}

	// Without a size the window goes into the grid.
	code = do(t, srv, http.MethodPost, "/api/windows", `{"title":"grid"}`, &w)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}
	if w.Width == 0 || w.Height == 0 {
		t.Errorf("grid window = %+v, want a size", w)
	}
}

func TestCreateWindowInvalid(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{
		`{"title":"a","width":100}`,
		`{"title":""}`,
		`{"title":"a","width":0,"height":10}`,
	} {
		if code := do(t, srv, http.MethodPost, "/api/windows", body, nil); code != http.StatusUnprocessableEntity {
			t.Errorf("POST %s: status = %d, want 422", body, code)
		}
	}
}

func TestPostEventsStartsMoveGrab(t *testing.T) {
	srv, _ := newTestServer(t)

	var w compositor.WindowSnapshot
	do(t, srv, http.MethodPost, "/api/windows", `{"title":"a","x":0,"y":0,"width":200,"height":200}`, &w)

	body := `{"events":[
		{"type":"motion_absolute","x":0.05,"y":0.05},
		{"type":"key","code":125,"pressed":true},
		{"type":"button","code":272,"pressed":true}
	]}`
	var snap compositor.Snapshot
	if code := do(t, srv, http.MethodPost, "/api/events", body, &snap); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if snap.Pointer.Grab != "move" || snap.Pointer.GrabWindow != w.ID {
		t.Errorf("pointer = %+v, want move grab on %s", snap.Pointer, w.ID)
	}
	if snap.Focus != w.ID {
		t.Errorf("focus = %q, want %s", snap.Focus, w.ID)
	}

	body = `{"events":[{"type":"motion","x":30,"y":40}]}`
	do(t, srv, http.MethodPost, "/api/events", body, &snap)
	if snap.Windows[0].X != 30 || snap.Windows[0].Y != 40 {
		t.Errorf("window at (%d, %d), want (30, 40)", snap.Windows[0].X, snap.Windows[0].Y)
	}
}

func TestPostEventsInvalid(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{
		`{"events":[]}`,
		`{"events":[{"type":"teleport"}]}`,
		`{"events":[{"type":"motion_absolute","x":2,"y":0}]}`,
	} {
		if code := do(t, srv, http.MethodPost, "/api/events", body, nil); code != http.StatusUnprocessableEntity {
			t.Errorf("POST %s: status = %d, want 422", body, code)
		}
	}
}

func TestDeleteWindow(t *testing.T) {
	srv, state := newTestServer(t)

	var w compositor.WindowSnapshot
	do(t, srv, http.MethodPost, "/api/windows", `{"title":"a"}`, &w)

	if code := do(t, srv, http.MethodDelete, "/api/windows/"+w.ID, "", nil); code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", code)
	}
	if n := len(state.Space.Elements()); n != 0 {
		t.Errorf("%d windows mapped, want 0", n)
	}
	if code := do(t, srv, http.MethodDelete, "/api/windows/"+w.ID, "", nil); code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", code)
	}
}

func TestEventInput(t *testing.T) {
	ev, err := Event{Type: "axis", Source: "finger", Vertical: &AxisValue{Amount: input.Float(2.5)}}.Input()
	if err != nil {
		t.Fatal(err)
	}
	axis, ok := ev.(input.PointerAxisEvent)
	if !ok {
		t.Fatalf("Input() = %T, want input.PointerAxisEvent", ev)
	}
	if axis.Source != input.AxisSourceFinger {
		t.Errorf("source = %v, want finger", axis.Source)
	}
	if v, ok := axis.Amount(input.AxisVertical); !ok || v != 2.5 {
		t.Errorf("vertical amount = %v, %v, want 2.5", v, ok)
	}
	if _, ok := axis.Amount(input.AxisHorizontal); ok {
		t.Error("horizontal amount present, want absent")
	}

	ev, err = Event{Type: "button", Code: input.BtnRight}.Input()
	if err != nil {
		t.Fatal(err)
	}
	if ev != (input.PointerButtonEvent{Button: input.BtnRight, State: input.ButtonReleased}) {
		t.Errorf("Input() = %+v", ev)
	}
}
