// Package ipc serves a small HTTP API for inspecting the compositor and injecting input.
package ipc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ItsNotGoodName/corrosion/internal/build"
	"github.com/ItsNotGoodName/corrosion/internal/compositor"
	"github.com/ItsNotGoodName/corrosion/internal/core"
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Executor runs fn against the compositor state on its own goroutine.
type Executor interface {
	Do(ctx context.Context, fn func(*compositor.State) error) error
}

var errWindowNotFound = errors.New("window not found")

type StateOutput struct {
	Body compositor.Snapshot
}

type VersionOutput struct {
	Body build.Build
}

type EventsInput struct {
	Body struct {
		Events []Event `json:"events" minItems:"1" doc:"Events processed in order"`
	}
}

type CreateWindowInput struct {
	Body struct {
		Title  string `json:"title" minLength:"1"`
		X      *int   `json:"x,omitempty"`
		Y      *int   `json:"y,omitempty"`
		Width  *int   `json:"width,omitempty" minimum:"1" doc:"Omit width and height to place the window in the grid"`
		Height *int   `json:"height,omitempty" minimum:"1"`
	}
}

type WindowOutput struct {
	Body compositor.WindowSnapshot
}

type DeleteWindowInput struct {
	ID string `path:"id"`
}

// NewHandler builds the API router.
func NewHandler(exec Executor) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	api := humachi.New(r, huma.DefaultConfig("Corrosion", build.Current.Version))
	Register(api, exec)

	return r
}

// Register adds the API operations to api.
func Register(api huma.API, exec Executor) {
	huma.Register(api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Get build information",
	}, func(ctx context.Context, input *struct{}) (*VersionOutput, error) {
		return &VersionOutput{Body: build.Current}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/state",
		Summary:     "Get compositor state",
	}, func(ctx context.Context, input *struct{}) (*StateOutput, error) {
		var snap compositor.Snapshot
		err := exec.Do(ctx, func(s *compositor.State) error {
			snap = s.Snapshot()
			return nil
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to read state", err)
		}
		return &StateOutput{Body: snap}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "post-events",
		Method:      http.MethodPost,
		Path:        "/api/events",
		Summary:     "Inject input events",
	}, func(ctx context.Context, input *EventsInput) (*StateOutput, error) {
		var snap compositor.Snapshot
		err := exec.Do(ctx, func(s *compositor.State) error {
			for i, ev := range input.Body.Events {
				inputEvent, err := ev.Input()
				if err != nil {
					return huma.Error422UnprocessableEntity("Invalid event", &huma.ErrorDetail{
						Location: "body.events[" + strconv.Itoa(i) + "]",
						Message:  err.Error(),
					})
				}
				if err := s.ProcessInputEvent(inputEvent); err != nil {
					return huma.Error409Conflict("Failed to process event "+strconv.Itoa(i), err)
				}
			}
			snap = s.Snapshot()
			return nil
		})
		if err != nil {
			return nil, statusError(err)
		}
		return &StateOutput{Body: snap}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-window",
		Method:        http.MethodPost,
		Path:          "/api/windows",
		Summary:       "Map a window",
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateWindowInput) (*WindowOutput, error) {
		body := input.Body

		var rect *geom.Rect
		if body.Width != nil || body.Height != nil {
			if body.Width == nil || body.Height == nil {
				return nil, huma.Error422UnprocessableEntity("width and height must be given together")
			}
			r := geom.NewRect(core.Optional(body.X, 0), core.Optional(body.Y, 0), *body.Width, *body.Height)
			rect = &r
		}

		var out compositor.WindowSnapshot
		err := exec.Do(ctx, func(s *compositor.State) error {
			w, err := s.AddWindow(body.Title, rect)
			if err != nil {
				return huma.Error409Conflict("Failed to map window", err)
			}
			for _, ws := range s.Snapshot().Windows {
				if ws.ID == w.ID() {
					out = ws
				}
			}
			return nil
		})
		if err != nil {
			return nil, statusError(err)
		}
		return &WindowOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-window",
		Method:      http.MethodDelete,
		Path:        "/api/windows/{id}",
		Summary:     "Close a window",
	}, func(ctx context.Context, input *DeleteWindowInput) (*struct{}, error) {
		err := exec.Do(ctx, func(s *compositor.State) error {
			w, ok := s.Space.FindWindow(input.ID)
			if !ok {
				return errWindowNotFound
			}
			w.Close()
			return nil
		})
		if err != nil {
			return nil, statusError(err)
		}
		return nil, nil
	})
}

func statusError(err error) error {
	var se huma.StatusError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, errWindowNotFound) {
		return huma.Error404NotFound(err.Error())
	}
	return huma.Error500InternalServerError("Failed to run request", err)
}

// Server serves the API until its context is done.
type Server struct {
	addr    string
	handler http.Handler
}

func NewServer(addr string, exec Executor) Server {
	return Server{
		addr:    addr,
		handler: NewHandler(exec),
	}
}

func (Server) String() string {
	return "ipc.Server"
}

func (s Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() { errC <- server.ListenAndServe() }()

	host, port := core.SplitAddress(s.addr)
	slog.Info("Listening", "host", host, "port", port)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown server", "error", err)
		}
		return ctx.Err()
	case err := <-errC:
		return err
	}
}
