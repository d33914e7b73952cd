// Package config collects the runtime settings of the clearloop command.
//
// Settings are resolved in three layers: Default, then environment
// variables (FromEnv), then command-line flags (RegisterFlags). Validate
// checks the result and the typed accessors convert it into options for
// the backend, surface and driver packages.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/clearloop"
	"github.com/gogpu/clearloop/backend"
	"github.com/gogpu/clearloop/driver"
	"github.com/gogpu/clearloop/surface"
)

// ErrInvalid is wrapped by every validation and parse error.
var ErrInvalid = errors.New("config: invalid value")

// Environment variable names.
const (
	EnvTitle         = "CLEARLOOP_TITLE"
	EnvWidth         = "CLEARLOOP_WIDTH"
	EnvHeight        = "CLEARLOOP_HEIGHT"
	EnvBackend       = "CLEARLOOP_BACKEND"
	EnvPower         = "CLEARLOOP_POWER"
	EnvPresent       = "CLEARLOOP_PRESENT"
	EnvRedraw        = "CLEARLOOP_REDRAW"
	EnvForceFallback = "CLEARLOOP_FORCE_FALLBACK"
	EnvLogLevel      = "CLEARLOOP_LOG_LEVEL"

	// EnvLog holds a full log filter spec, for example
	// "debug,backend=warn". It overrides EnvLogLevel.
	EnvLog = "CLEARLOOP_LOG"
)

// Config holds the command settings.
type Config struct {
	Title  string
	Width  int
	Height int

	// Backend is a registered backend name; empty picks the default.
	Backend         string
	PowerPreference string
	PresentMode     string
	Redraw          string
	ForceFallback   bool

	// LogLevel is the default level used when LogFilter is empty.
	LogLevel string
	// LogFilter is a complete filter spec and wins over LogLevel.
	LogFilter string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Title:           "tutorial2-surface",
		Width:           800,
		Height:          600,
		PowerPreference: backend.PowerDefault.String(),
		PresentMode:     backend.PresentModeFifo.String(),
		Redraw:          driver.RedrawContinuous.String(),
		LogLevel:        "info",
	}
}

// FromEnv returns Default overlaid with the environment variables found by
// lookup (normally os.LookupEnv).
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if err := c.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyEnv overlays the environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err)
		}
		*dst = n
		return nil
	}

	str(EnvTitle, &c.Title)
	if err := num(EnvWidth, &c.Width); err != nil {
		return err
	}
	if err := num(EnvHeight, &c.Height); err != nil {
		return err
	}
	str(EnvBackend, &c.Backend)
	str(EnvPower, &c.PowerPreference)
	str(EnvPresent, &c.PresentMode)
	str(EnvRedraw, &c.Redraw)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLog, &c.LogFilter)
	if v, ok := lookup(EnvForceFallback); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvForceFallback, v, err)
		}
		c.ForceFallback = b
	}
	return nil
}

// RegisterFlags binds the settings to fs. Current values become the flag
// defaults, so call it after ApplyEnv.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Title, "title", c.Title, "window title")
	fs.IntVar(&c.Width, "width", c.Width, "initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height")
	fs.StringVar(&c.Backend, "backend", c.Backend,
		"graphics backend ("+strings.Join(backend.Available(), ", ")+"); empty picks the default")
	fs.StringVar(&c.PowerPreference, "power", c.PowerPreference, "adapter power preference: default, low-power, high-performance")
	fs.StringVar(&c.PresentMode, "present", c.PresentMode, "present mode: fifo, fifo-relaxed, immediate, mailbox")
	fs.StringVar(&c.Redraw, "redraw", c.Redraw, "redraw mode: continuous, on-demand")
	fs.BoolVar(&c.ForceFallback, "force-fallback", c.ForceFallback, "only use software adapters")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "default log level: debug, info, warn, error, off")
	fs.StringVar(&c.LogFilter, "log-filter", c.LogFilter, "log filter spec, e.g. debug,backend=warn (overrides -log-level)")
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Backend != "" && !backend.IsRegistered(c.Backend) {
		return fmt.Errorf("%w: backend %q (available: %s)", ErrInvalid, c.Backend, strings.Join(backend.Available(), ", "))
	}
	if _, err := backend.ParsePowerPreference(c.PowerPreference); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := backend.ParsePresentMode(c.PresentMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := driver.ParseRedrawMode(c.Redraw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := clearloop.ParseFilterSpec(c.LogSpec()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// LogSpec returns the log filter spec: LogFilter when set, otherwise
// LogLevel with graphics backend logs held at warn.
func (c Config) LogSpec() string {
	if c.LogFilter != "" {
		return c.LogFilter
	}
	level := c.LogLevel
	if level == "" {
		level = "info"
	}
	return level + ",backend=warn"
}

// BackendOptions converts the settings into backend.Create options.
func (c Config) BackendOptions() ([]backend.Option, error) {
	power, err := backend.ParsePowerPreference(c.PowerPreference)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return []backend.Option{
		backend.WithBackend(c.Backend),
		backend.WithPowerPreference(power),
		backend.WithForceFallback(c.ForceFallback),
	}, nil
}

// SurfaceOptions converts the settings into surface.New options.
func (c Config) SurfaceOptions() ([]surface.Option, error) {
	mode, err := backend.ParsePresentMode(c.PresentMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return []surface.Option{
		surface.WithPresentMode(mode),
		surface.WithMaxFrameLatency(surface.DefaultMaxFrameLatency),
	}, nil
}

// DriverOptions converts the settings into driver options.
func (c Config) DriverOptions() (driver.Options, error) {
	redraw, err := driver.ParseRedrawMode(c.Redraw)
	if err != nil {
		return driver.Options{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	bopts, err := c.BackendOptions()
	if err != nil {
		return driver.Options{}, err
	}
	sopts, err := c.SurfaceOptions()
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Redraw:         redraw,
		BackendOptions: bopts,
		SurfaceOptions: sopts,
	}, nil
}
