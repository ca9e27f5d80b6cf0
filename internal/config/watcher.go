package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ItsNotGoodName/corrosion/internal/bus"
	"github.com/fsnotify/fsnotify"
)

// Watcher rereads the config file when it changes and broadcasts the result.
type Watcher struct {
	store    Store
	filePath string
	hub      *bus.Hub[Config]
}

func NewWatcher(store Store, filePath string, hub *bus.Hub[Config]) Watcher {
	return Watcher{
		store:    store,
		filePath: filePath,
		hub:      hub,
	}
}

func (Watcher) String() string {
	return "config.Watcher"
}

func (w Watcher) Serve(ctx context.Context) error {
	filePath, err := filepath.Abs(w.filePath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors and Store.UpdateConfig replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := w.store.GetConfig()
			if err != nil {
				slog.Error("Failed to read config", "path", filePath, "error", err)
				continue
			}

			slog.Info("Config reloaded", "path", filePath)
			if err := w.hub.Broadcast(ctx, cfg); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Failed to watch config", "path", filePath, "error", err)
		}
	}
}
