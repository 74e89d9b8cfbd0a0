// Package config loads the YAML settings document.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termdeck/engine"
	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/terminal"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Backends
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

type Config struct {
	FPS      float64        `yaml:"fps"`
	Pacer    PacerConfig    `yaml:"pacer"`
	Render   RenderConfig   `yaml:"render"`
	Terminal TerminalConfig `yaml:"terminal"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type PacerConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	SpinReserve  time.Duration `yaml:"spin_reserve"`
}

type RenderConfig struct {
	Blend          string  `yaml:"blend"`
	ClearEachFrame bool    `yaml:"clear_each_frame"`
	Background     string  `yaml:"background"`
	Gamma          float64 `yaml:"gamma"`
	Vignette       float64 `yaml:"vignette"`
}

type TerminalConfig struct {
	Backend   string `yaml:"backend"`
	ColorMode string `yaml:"color_mode"`
}

type LogConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Dir       string `yaml:"dir"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		FPS: 60,
		Pacer: PacerConfig{
			PollInterval: engine.DefaultPollInterval,
			SpinReserve:  engine.DefaultSpinReserve,
		},
		Render: RenderConfig{
			Blend:      render.BlendSourceOver.String(),
			Background: "#1a1b26",
			Gamma:      1,
		},
		Terminal: TerminalConfig{
			Backend:   BackendANSI,
			ColorMode: "auto",
		},
		Log: LogConfig{
			Dir:       "logs",
			File:      "termdeck.log",
			MaxSizeMB: 10,
		},
	}
}

// Load reads path over the defaults; an empty or missing path yields defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown names and nonsensical durations. Negative fps means uncapped
func (c *Config) Validate() error {
	var errs []error

	if _, err := render.ParseBlendMode(c.Render.Blend); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseHex(c.Render.Background); err != nil {
		errs = append(errs, err)
	}
	if c.Render.Gamma < 0 {
		errs = append(errs, fmt.Errorf("gamma %v is negative", c.Render.Gamma))
	}
	if c.Render.Vignette < 0 || c.Render.Vignette > 1 {
		errs = append(errs, fmt.Errorf("vignette %v outside [0,1]", c.Render.Vignette))
	}
	switch strings.ToLower(c.Terminal.Backend) {
	case BackendANSI, BackendTcell:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Terminal.Backend))
	}
	if c.Terminal.ColorMode != "auto" {
		if _, err := terminal.ParseColorMode(c.Terminal.ColorMode); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Pacer.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %v", c.Pacer.PollInterval))
	}
	if c.Pacer.SpinReserve < 0 {
		errs = append(errs, fmt.Errorf("spin_reserve must not be negative, got %v", c.Pacer.SpinReserve))
	}
	if c.Log.Enabled && c.Log.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("log max_size_mb must be positive, got %d", c.Log.MaxSizeMB))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// BlendMode resolves the configured blend name
func (c *Config) BlendMode() render.BlendMode {
	m, _ := render.ParseBlendMode(c.Render.Blend)
	return m
}

// Background resolves the configured clear color, falling back to the default
func (c *Config) Background() render.Color {
	bg, err := render.ParseHex(c.Render.Background)
	if err != nil {
		return render.DefaultBg
	}
	return bg
}

// Filters builds the configured post-process chain
func (c *Config) Filters() []render.Filter {
	var out []render.Filter
	if c.Render.Gamma > 0 && c.Render.Gamma != 1 {
		out = append(out, render.NewGammaFilter(c.Render.Gamma))
	}
	if c.Render.Vignette > 0 {
		out = append(out, &render.VignetteFilter{Strength: c.Render.Vignette, Start: 0.35})
	}
	return out
}

// Engine builds the frame loop config for a cols x rows screen
func (c *Config) Engine(cols, rows int) engine.Config {
	return engine.Config{
		Cols:           cols,
		Rows:           rows,
		FPS:            c.FPS,
		PollInterval:   c.Pacer.PollInterval,
		SpinReserve:    c.Pacer.SpinReserve,
		Blend:          c.BlendMode(),
		ClearEachFrame: c.Render.ClearEachFrame,
		Background:     c.Background(),
	}
}
