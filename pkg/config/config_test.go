package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/forcefield/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forcefield.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != 1920 || cfg.Render.Theme != "default" {
		t.Errorf("defaults = %+v", cfg.Render)
	}
	if cfg.Physics.Charge != 150 || cfg.Physics.Damping != 0.9 {
		t.Errorf("physics defaults = %+v", cfg.Physics)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[render]
theme = "midnight"
width = 800

[physics]
charge = 200.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Theme != "midnight" || cfg.Render.Width != 800 {
		t.Errorf("overrides not applied: %+v", cfg.Render)
	}
	// Untouched fields keep their defaults.
	if cfg.Render.Height != 1080 || cfg.Render.Format != "png" {
		t.Errorf("defaults lost: %+v", cfg.Render)
	}
	if cfg.Physics.Charge != 200 {
		t.Errorf("physics override lost: %+v", cfg.Physics)
	}
	if cfg.Physics.Spring != 0.05 {
		t.Errorf("physics default lost: %+v", cfg.Physics)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, errors.ErrCodeInvalidConfig},
		{"bad format", func(c *Config) { c.Render.Format = "gif" }, errors.ErrCodeInvalidFormat},
		{"bad theme", func(c *Config) { c.Render.Theme = "neon" }, errors.ErrCodeInvalidTheme},
		{"zoom too small", func(c *Config) { c.Render.Zoom = 0.01 }, errors.ErrCodeInvalidConfig},
		{"negative settle", func(c *Config) { c.Render.Settle = -1 }, errors.ErrCodeInvalidConfig},
		{"bad damping", func(c *Config) { c.Physics.Damping = 1.5 }, errors.ErrCodeInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tc.code) {
				t.Errorf("err = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestThemeParticlesToggle(t *testing.T) {
	cfg := Default()
	cfg.Render.Particles = true
	th, err := cfg.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if !th.Particles.Enabled || th.Particles.Count == 0 {
		t.Errorf("particles not enabled: %+v", th.Particles)
	}

	cfg.Render.Particles = false
	th, err = cfg.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if th.Particles.Enabled {
		t.Error("particles enabled without the toggle")
	}
}

func TestParamsRoundTrip(t *testing.T) {
	cfg := Default()
	p := cfg.Params()
	if p.Charge != 150 || p.Spring != 0.05 || p.MaxForce != 100 || p.Speed != 3000 || p.Damping != 0.9 {
		t.Errorf("params = %+v", p)
	}
}
