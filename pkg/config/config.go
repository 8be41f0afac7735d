// Package config loads forcefield configuration files.
//
// Configuration is TOML. Every field is optional; absent values fall back
// to the built-in defaults, so a config file only states what it changes.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/physics"
	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

// Render holds output settings.
type Render struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Theme     string  `toml:"theme"`
	Format    string  `toml:"format"`
	Settle    int     `toml:"settle"`
	Zoom      float64 `toml:"zoom"`
	Particles bool    `toml:"particles"`
}

// Physics holds simulation overrides.
type Physics struct {
	Charge   float64 `toml:"charge"`
	Spring   float64 `toml:"spring"`
	MaxForce float64 `toml:"max_force"`
	Speed    float64 `toml:"speed"`
	Damping  float64 `toml:"damping"`
}

// Serve holds HTTP server settings.
type Serve struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
}

// Cache holds frame cache settings.
type Cache struct {
	Dir     string `toml:"dir"`
	Enabled bool   `toml:"enabled"`
}

// Config is the root configuration.
type Config struct {
	Render  Render  `toml:"render"`
	Physics Physics `toml:"physics"`
	Serve   Serve   `toml:"serve"`
	Cache   Cache   `toml:"cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := physics.DefaultParams()
	return Config{
		Render: Render{
			Width:  1920,
			Height: 1080,
			Theme:  "default",
			Format: "png",
			Settle: 300,
			Zoom:   1.0,
		},
		Physics: Physics{
			Charge:   p.Charge,
			Spring:   p.Spring,
			MaxForce: p.MaxForce,
			Speed:    p.Speed,
			Damping:  p.Damping,
		},
		Serve: Serve{Addr: ":8080"},
	}
}

// Load reads a TOML file and merges it over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges after a merge.
func (c Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render dimensions must be positive")
	}
	if c.Render.Format != "png" && c.Render.Format != "svg" {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", c.Render.Format)
	}
	if _, ok := forcegraph.ThemeByName(c.Render.Theme); !ok {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", c.Render.Theme)
	}
	if c.Render.Zoom < 0.1 || c.Render.Zoom > 10 {
		return errors.New(errors.ErrCodeInvalidConfig, "zoom %g outside [0.1, 10]", c.Render.Zoom)
	}
	if c.Render.Settle < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "settle steps must not be negative")
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "damping %g outside (0, 1]", c.Physics.Damping)
	}
	return nil
}

// Params converts the physics section to simulation parameters.
func (c Config) Params() physics.Params {
	return physics.Params{
		Charge:   c.Physics.Charge,
		Spring:   c.Physics.Spring,
		MaxForce: c.Physics.MaxForce,
		Speed:    c.Physics.Speed,
		Damping:  c.Physics.Damping,
	}
}

// Theme resolves the configured theme, with the particle field toggled on
// when requested.
func (c Config) Theme() (forcegraph.Theme, error) {
	th, ok := forcegraph.ThemeByName(c.Render.Theme)
	if !ok {
		return forcegraph.Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", c.Render.Theme)
	}
	if c.Render.Particles && !th.Particles.Enabled {
		th.Particles = forcegraph.ParticleStyle{
			Enabled: true,
			Count:   60,
			Color:   forcegraph.RGB(200, 205, 220),
			SizeMin: 0.5,
			SizeMax: 1.8,
			Speed:   0.15,
			Opacity: 0.35,
		}
	}
	return th, nil
}
