// Package evdev reads input straight from Linux event devices.
package evdev

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/ItsNotGoodName/corrosion/internal/backend"
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/input"
	evdev "github.com/gvalkov/golang-evdev"
)

const OutputName = "evdev-0"

var ErrNoDevices = errors.New("no input devices")

type Options struct {
	// Paths are the devices to read. Empty means every /dev/input/event* device.
	Paths []string
	// Grab takes the devices exclusively so no other program sees their input.
	Grab bool
	// OutputSize is the size of the single output absolute devices map onto.
	OutputSize geom.Size
}

type Backend struct {
	eventC chan<- any
	opts   Options
}

func New(eventC chan<- any, opts Options) Backend {
	return Backend{
		eventC: eventC,
		opts:   opts,
	}
}

func (Backend) String() string {
	return "evdev.Backend"
}

func (b Backend) Serve(ctx context.Context) error {
	paths := b.opts.Paths
	if len(paths) == 0 {
		var err error
		paths, err = filepath.Glob("/dev/input/event*")
		if err != nil {
			return err
		}
	}

	var devices []*Device
	for _, path := range paths {
		device, err := Open(path, b.opts.Grab)
		if err != nil {
			slog.Warn("Failed to open device", "path", path, "error", err)
			continue
		}
		devices = append(devices, device)
	}
	if len(devices) == 0 {
		return ErrNoDevices
	}

	if !backend.Send(ctx, b.eventC, backend.OutputEvent{Name: OutputName, Size: b.opts.OutputSize}) {
		closeDevices(devices)
		return ctx.Err()
	}

	var wg sync.WaitGroup
	for _, device := range devices {
		wg.Add(1)
		go func(device *Device) {
			defer wg.Done()
			device.Run(ctx, b.eventC)
		}(device)
	}

	doneC := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneC)
	}()

	select {
	case <-ctx.Done():
		// Closing unblocks the readers.
		closeDevices(devices)
		<-doneC
		return ctx.Err()
	case <-doneC:
		closeDevices(devices)
		return ErrNoDevices
	}
}

func closeDevices(devices []*Device) {
	for _, d := range devices {
		if err := d.Close(); err != nil {
			slog.Debug("Failed to close device", "path", d.Path, "error", err)
		}
	}
}

// Device is an opened event device.
type Device struct {
	Path    string
	Name    string
	dev     *evdev.InputDevice
	grabbed bool
	closeMu sync.Mutex
	closed  bool
	t       Translator
}

// Open opens the device at path and reads its absolute axis ranges.
func Open(path string, grab bool) (*Device, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %s: %w", path, err)
	}

	d := &Device{
		Path: path,
		Name: dev.Name,
		dev:  dev,
	}

	if hasAbs(dev) {
		fd := dev.File.Fd()
		if r, err := absRange(fd, evdev.ABS_X); err == nil {
			d.t.AbsX = r
		}
		if r, err := absRange(fd, evdev.ABS_Y); err == nil {
			d.t.AbsY = r
		}
	}

	if grab {
		if err := dev.Grab(); err != nil {
			dev.File.Close()
			return nil, fmt.Errorf("failed to grab device %s: %w", path, err)
		}
		d.grabbed = true
	}

	return d, nil
}

func hasAbs(dev *evdev.InputDevice) bool {
	for typ := range dev.Capabilities {
		if typ.Type == evdev.EV_ABS {
			return true
		}
	}
	return false
}

// Run reads the device until it fails or is closed, sending translated events to eventC.
func (d *Device) Run(ctx context.Context, eventC chan<- any) {
	slog := slog.With("device", d.Name, "path", d.Path)

	if !backend.Send(ctx, eventC, input.DeviceAddedEvent{Name: d.Name}) {
		return
	}
	defer backend.Send(ctx, eventC, input.DeviceRemovedEvent{Name: d.Name})

	for {
		events, err := d.dev.Read()
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("Failed to read events", "error", err)
			}
			return
		}

		for _, ev := range events {
			for _, out := range d.t.Feed(ev) {
				if !backend.Send(ctx, eventC, out) {
					return
				}
			}
		}
	}
}

func (d *Device) Close() error {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	if d.grabbed {
		_ = d.dev.Release()
	}
	return d.dev.File.Close()
}
