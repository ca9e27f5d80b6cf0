package config

// DefaultConfig is written when the config file does not exist. Missing fields of a read config
// keep these values.
func DefaultConfig() Config {
	return Config{
		ModKey:      "logo",
		GrabModKey:  "logo",
		Launcher:    "wofi --show drun",
		Terminal:    "alacritty",
		Backend:     "x11",
		Devices:     []string{},
		Outputs:     []Output{{Name: "headless-0", Width: 1920, Height: 1080}},
		Windows:     []Window{},
		Keybindings: []Keybinding{},
		ResizeMin:   Size{Width: 1, Height: 1},
		Listen:      "127.0.0.1:8420",
	}
}

type Config struct {
	ModKey     string `json:"mod_key" yaml:"mod_key" toml:"mod_key"`
	GrabModKey string `json:"grab_mod_key" yaml:"grab_mod_key" toml:"grab_mod_key"`
	Launcher   string `json:"launcher" yaml:"launcher" toml:"launcher"`
	Terminal   string `json:"terminal" yaml:"terminal" toml:"terminal"`
	// Backend is one of x11, evdev or headless.
	Backend     string       `json:"backend" yaml:"backend" toml:"backend"`
	Devices     []string     `json:"devices" yaml:"devices" toml:"devices"`
	GrabDevices bool         `json:"grab_devices" yaml:"grab_devices" toml:"grab_devices"`
	Outputs     []Output     `json:"outputs" yaml:"outputs" toml:"outputs"`
	Windows     []Window     `json:"windows" yaml:"windows" toml:"windows"`
	Keybindings []Keybinding `json:"keybindings" yaml:"keybindings" toml:"keybindings"`
	ResizeMin   Size         `json:"resize_min" yaml:"resize_min" toml:"resize_min"`
	// Listen is the IPC address. Empty disables IPC.
	Listen string `json:"listen" yaml:"listen" toml:"listen"`
}

type Output struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Width  int    `json:"width" yaml:"width" toml:"width"`
	Height int    `json:"height" yaml:"height" toml:"height"`
}

// Window is a window mapped at startup. A zero size places it in the grid.
type Window struct {
	Title  string `json:"title" yaml:"title" toml:"title"`
	X      int    `json:"x" yaml:"x" toml:"x"`
	Y      int    `json:"y" yaml:"y" toml:"y"`
	Width  int    `json:"width" yaml:"width" toml:"width"`
	Height int    `json:"height" yaml:"height" toml:"height"`
}

type Keybinding struct {
	Key     string `json:"key" yaml:"key" toml:"key"`
	Action  string `json:"action" yaml:"action" toml:"action"`
	Command string `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
}

type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}
