package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/corrosion/internal/backend"
	"github.com/ItsNotGoodName/corrosion/internal/backend/evdev"
	"github.com/ItsNotGoodName/corrosion/internal/backend/x11"
	"github.com/ItsNotGoodName/corrosion/internal/build"
	"github.com/ItsNotGoodName/corrosion/internal/bus"
	"github.com/ItsNotGoodName/corrosion/internal/compositor"
	"github.com/ItsNotGoodName/corrosion/internal/config"
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/ipc"
	"github.com/ItsNotGoodName/corrosion/internal/seat"
	"github.com/ItsNotGoodName/corrosion/internal/serial"
	"github.com/ItsNotGoodName/corrosion/internal/space"
	"github.com/ItsNotGoodName/corrosion/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/thejerf/suture/v4"
)

type Options struct {
	Debug   bool   `doc:"enable debug"`
	Config  string `doc:"config file (.toml, .yaml or .json)" default:"corrosion.toml"`
	Backend string `doc:"override the config backend: x11, evdev or headless"`
	Listen  string `doc:"override the config IPC address"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			configFilePath, err := filepath.Abs(options.Config)
			if err != nil {
				return err
			}

			provider, err := config.NewProvider(configFilePath)
			if err != nil {
				return err
			}

			cfg, err := provider.GetConfig()
			if err != nil {
				return err
			}
			if options.Backend != "" {
				cfg.Backend = options.Backend
			}
			if options.Listen != "" {
				cfg.Listen = options.Listen
			}
			if options.Debug {
				pp.Fprintln(os.Stderr, cfg)
			}

			settings, err := cfg.Settings()
			if err != nil {
				return err
			}

			serials := serial.NewCounter()
			st := seat.New("seat0", seat.LogHandler{})
			st.AddKeyboard()
			st.AddPointer()
			state := compositor.NewState(serials, st, space.New(), compositor.ShellSpawner{}, settings)
			loop := compositor.NewLoop(state)

			be, err := newBackend(cfg, loop.Events())
			if err != nil {
				return err
			}

			hub := bus.NewHub[config.Config]()

			super := sutureext.NewSimple("root")
			sutureext.Add(super, loop)
			sutureext.Add(super, be)
			sutureext.Add(super, config.NewWatcher(provider, configFilePath, hub))
			sutureext.Add(super, sutureext.NewServiceFunc("settings.Reloader", func(ctx context.Context) error {
				return reloadSettings(ctx, hub, loop)
			}))
			sutureext.Add(super, sutureext.NewServiceFunc("windows.Seeder", func(ctx context.Context) error {
				return seedWindows(ctx, loop, cfg.Windows)
			}))
			if cfg.Listen != "" {
				sutureext.Add(super, ipc.NewServer(cfg.Listen, loop))
			}

			err = super.Serve(ctx)
			if errors.Is(err, suture.ErrTerminateSupervisorTree) {
				return nil
			}
			return err
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func newBackend(cfg config.Config, eventC chan<- any) (backend.Backend, error) {
	var outputs []backend.OutputEvent
	for _, o := range cfg.Outputs {
		outputs = append(outputs, backend.OutputEvent{Name: o.Name, Size: geom.Size{W: o.Width, H: o.Height}})
	}

	switch cfg.Backend {
	case "x11":
		return x11.New(eventC, "corrosion"), nil
	case "evdev":
		size := geom.Size{W: 1920, H: 1080}
		if len(outputs) > 0 {
			size = outputs[0].Size
		}
		return evdev.New(eventC, evdev.Options{
			Paths:      cfg.Devices,
			Grab:       cfg.GrabDevices,
			OutputSize: size,
		}), nil
	case "headless":
		return backend.NewHeadless(eventC, outputs...), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// reloadSettings applies every config the watcher broadcasts.
func reloadSettings(ctx context.Context, hub *bus.Hub[config.Config], loop *compositor.Loop) error {
	configC, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cfg := <-configC:
			settings, err := cfg.Settings()
			if err != nil {
				slog.Error("Failed to apply config", "error", err)
				continue
			}
			if err := loop.UpdateSettings(ctx, settings); err != nil {
				return err
			}
		}
	}
}

// seedWindows maps the configured windows once the backend announced an output.
func seedWindows(ctx context.Context, loop *compositor.Loop, windows []config.Window) error {
	if len(windows) == 0 {
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		var ready bool
		err := loop.Do(ctx, func(s *compositor.State) error {
			if len(s.Space.Outputs()) == 0 {
				return nil
			}
			ready = true
			for _, w := range windows {
				var rect *geom.Rect
				if w.Width > 0 && w.Height > 0 {
					r := geom.NewRect(w.X, w.Y, w.Width, w.Height)
					rect = &r
				}
				if _, err := s.AddWindow(w.Title, rect); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		if ready {
			return suture.ErrDoNotRestart
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
