// Package config loads sheet presets from a YAML file so demo runs can
// switch between sheet configurations without rebuilding.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marcus/sheet/pkg/sheet"
	"github.com/marcus/sheet/pkg/sheet/snap"
)

// Preset is one named sheet configuration. Pointer fields distinguish
// "unset" from an explicit false so unset fields keep the sheet's
// defaults.
type Preset struct {
	SnapPoints       []string `yaml:"snap_points"`
	FadeFrom         *int     `yaml:"fade_from"`
	DefaultSnapPoint int      `yaml:"default_snap_point"`
	Height           string   `yaml:"height"`
	CloseThreshold   float64  `yaml:"close_threshold"`
	Modal            *bool    `yaml:"modal"`
	Dismissible      *bool    `yaml:"dismissible"`
	ScaleBackground  *bool    `yaml:"scale_background"`
	Fixed            bool     `yaml:"fixed"`
}

// Config is the demo's preset catalogue.
type Config struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Default returns the built-in presets used when no config file exists.
func Default() *Config {
	no := false
	fadeFrom := 2
	return &Config{
		Presets: map[string]Preset{
			"default": {
				Height: "50%",
			},
			"snap": {
				SnapPoints: []string{"20%", "50%", "100%"},
				FadeFrom:   &fadeFrom,
			},
			"pinned": {
				Height:      "40%",
				Dismissible: &no,
			},
		},
	}
}

// Load reads presets from path. A missing file yields the defaults;
// loaded presets are merged over them, with the file winning on name
// collisions.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for name, p := range loaded.Presets {
		cfg.Presets[name] = p
	}
	return cfg, nil
}

// Preset looks up a preset by name.
func (c *Config) Preset(name string) (Preset, bool) {
	p, ok := c.Presets[name]
	return p, ok
}

// Names returns the preset names in no particular order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	return names
}

// ParsePoint parses a snap point or height: "50%" is a fraction of the
// viewport, "320u" (or a bare number) an absolute height in units.
func ParsePoint(s string) (snap.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return snap.Point{}, fmt.Errorf("empty snap point")
	}
	if frac, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(frac, 64)
		if err != nil || v < 0 || v > 100 {
			return snap.Point{}, fmt.Errorf("invalid percentage %q", s)
		}
		return snap.Fraction(v / 100), nil
	}
	units := strings.TrimSuffix(s, "u")
	v, err := strconv.ParseFloat(units, 64)
	if err != nil || v < 0 {
		return snap.Point{}, fmt.Errorf("invalid snap point %q", s)
	}
	return snap.Absolute(v), nil
}

// Options converts the preset into sheet options.
func (p Preset) Options() ([]sheet.Option, error) {
	var opts []sheet.Option

	if len(p.SnapPoints) > 0 {
		points := make([]snap.Point, 0, len(p.SnapPoints))
		for _, s := range p.SnapPoints {
			pt, err := ParsePoint(s)
			if err != nil {
				return nil, err
			}
			points = append(points, pt)
		}
		opts = append(opts, sheet.WithSnapPoints(points...))
		opts = append(opts, sheet.WithDefaultSnapPoint(p.DefaultSnapPoint))
	}
	if p.FadeFrom != nil {
		opts = append(opts, sheet.WithFadeFromIndex(*p.FadeFrom))
	}
	if p.Height != "" {
		h, err := ParsePoint(p.Height)
		if err != nil {
			return nil, fmt.Errorf("height: %w", err)
		}
		opts = append(opts, sheet.WithHeight(h))
	}
	if p.CloseThreshold > 0 {
		opts = append(opts, sheet.WithCloseThreshold(p.CloseThreshold))
	}
	if p.Modal != nil {
		opts = append(opts, sheet.WithModal(*p.Modal))
	}
	if p.Dismissible != nil {
		opts = append(opts, sheet.WithDismissible(*p.Dismissible))
	}
	if p.ScaleBackground != nil {
		opts = append(opts, sheet.WithScaleBackground(*p.ScaleBackground))
	}
	if p.Fixed {
		opts = append(opts, sheet.WithFixed(true))
	}
	return opts, nil
}
