// Package config stores the user's compositor configuration in a YAML, JSON or TOML file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ItsNotGoodName/corrosion/internal/compositor"
	"github.com/ItsNotGoodName/corrosion/internal/geom"
	"github.com/ItsNotGoodName/corrosion/internal/keybind"
	"github.com/ItsNotGoodName/corrosion/internal/xkb"
)

type Driver interface {
	Exists() (bool, error)
	Write(config Config) error
	Read() (Config, error)
}

// NewDriver picks the driver for filePath by its extension.
func NewDriver(filePath string) (Driver, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return NewYAML(filePath), nil
	case ".json":
		return NewJSON(filePath), nil
	case ".toml":
		return NewTOML(filePath), nil
	default:
		return nil, fmt.Errorf("unsupported config file extension: %q", filepath.Ext(filePath))
	}
}

// NewProvider opens the store for the config file at filePath.
func NewProvider(filePath string) (Store, error) {
	driver, err := NewDriver(filePath)
	if err != nil {
		return Store{}, err
	}
	return NewStore(driver)
}

func NewStore(driver Driver) (Store, error) {
	exists, err := driver.Exists()
	if err != nil {
		return Store{}, err
	}
	if !exists {
		if err := driver.Write(DefaultConfig()); err != nil {
			return Store{}, err
		}
	}

	return Store{
		driver: driver,
	}, nil
}

type Store struct {
	driver Driver
}

func (p *Store) GetConfig() (Config, error) {
	return p.driver.Read()
}

func (p *Store) UpdateConfig(fn func(cfg Config) (Config, error)) error {
	cfg, err := p.driver.Read()
	if err != nil {
		return err
	}

	cfg, err = fn(cfg)
	if err != nil {
		return err
	}

	return p.driver.Write(cfg)
}

// Settings converts the dispatcher part of cfg.
func (cfg Config) Settings() (compositor.Settings, error) {
	leader, err := xkb.ParseModifier(cfg.ModKey)
	if err != nil {
		return compositor.Settings{}, fmt.Errorf("mod_key: %w", err)
	}
	grabMod, err := xkb.ParseModifier(cfg.GrabModKey)
	if err != nil {
		return compositor.Settings{}, fmt.Errorf("grab_mod_key: %w", err)
	}

	bindings := keybind.DefaultBindings(cfg.Launcher, cfg.Terminal)
	for i, kb := range cfg.Keybindings {
		sym, err := xkb.KeysymFromName(kb.Key)
		if err != nil {
			return compositor.Settings{}, fmt.Errorf("keybindings[%d]: %w", i, err)
		}
		action, err := keybind.ParseAction(kb.Action, kb.Command)
		if err != nil {
			return compositor.Settings{}, fmt.Errorf("keybindings[%d]: %w", i, err)
		}
		bindings = append(bindings, keybind.Binding{Sym: sym, Action: action})
	}

	return compositor.Settings{
		Leader:       leader,
		GrabModifier: grabMod,
		Bindings:     bindings,
		ResizeMin:    geom.Size{W: cfg.ResizeMin.Width, H: cfg.ResizeMin.Height},
	}, nil
}
