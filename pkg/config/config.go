// Package config handles loading and saving glossgraph configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/glossgraph/config.yaml
//   - Data:    ~/.local/share/glossgraph/ (exported snapshots)
//   - State:   ~/.local/state/glossgraph/ (session.db, debug logs)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/glossgraph/pkg/physics"
	"github.com/vanderheijden86/glossgraph/pkg/render"
	"github.com/vanderheijden86/glossgraph/pkg/viewport"
)

const appName = "glossgraph"

// View names accepted by ui.default_view.
const (
	ViewGraph = "graph"
	ViewList  = "list"
)

// RenderConfig holds drawing and hit-test settings.
type RenderConfig struct {
	NodeRadius         float64 `yaml:"node_radius,omitempty"`
	HitMultiplier      float64 `yaml:"hit_multiplier,omitempty"`
	SpawnJitter        float64 `yaml:"spawn_jitter,omitempty"`
	LabelZoomThreshold float64 `yaml:"label_zoom_threshold,omitempty"`
	ShowAllLabels      bool    `yaml:"show_all_labels,omitempty"`
	FPS                int     `yaml:"fps,omitempty"`
}

// LabelMode maps ShowAllLabels onto the renderer's label policy.
func (r RenderConfig) LabelMode() render.LabelMode {
	if r.ShowAllLabels {
		return render.LabelsAll
	}
	return render.LabelsUntilSelection
}

// ShuffleConfig controls starting-term rerolls.
type ShuffleConfig struct {
	MinConnections int    `yaml:"min_connections,omitempty"`
	DefaultStart   string `yaml:"default_start,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultView string `yaml:"default_view,omitempty"` // graph, list
	SidebarOpen *bool  `yaml:"sidebar_open,omitempty"`
}

// Sidebar reports whether the info panel starts open.
func (u UIConfig) Sidebar() bool {
	return u.SidebarOpen == nil || *u.SidebarOpen
}

// GlossaryConfig locates the term files.
type GlossaryConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Config is the top-level configuration for glossgraph.
type Config struct {
	Physics  physics.Config  `yaml:"physics"`
	Viewport viewport.Limits `yaml:"viewport"`
	Render   RenderConfig    `yaml:"render"`
	Shuffle  ShuffleConfig   `yaml:"shuffle"`
	UI       UIConfig        `yaml:"ui,omitempty"`
	Glossary GlossaryConfig  `yaml:"glossary,omitempty"`
}

// DefaultConfig returns a Config with the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Physics:  physics.DefaultConfig(),
		Viewport: viewport.DefaultLimits(),
		Render: RenderConfig{
			NodeRadius:         8,
			HitMultiplier:      2,
			SpawnJitter:        400,
			LabelZoomThreshold: render.DefaultLabelZoom,
			FPS:                60,
		},
		Shuffle: ShuffleConfig{
			MinConnections: 2,
			DefaultStart:   "last-hit",
		},
		UI: UIConfig{
			DefaultView: ViewGraph,
		},
	}
}

// Validate reports settings the program cannot run with. Physics constants
// outside their safe ranges are returned too, wrapped in
// physics.ErrOutOfRange, so callers can warn instead of failing.
func (c Config) Validate() error {
	var errs []error
	if c.Viewport.MinZoom <= 0 || c.Viewport.MaxZoom < c.Viewport.MinZoom {
		errs = append(errs, fmt.Errorf("viewport: zoom range [%g, %g] is empty", c.Viewport.MinZoom, c.Viewport.MaxZoom))
	}
	if c.Render.FPS < 1 || c.Render.FPS > 240 {
		errs = append(errs, fmt.Errorf("render: fps %d not in [1, 240]", c.Render.FPS))
	}
	switch c.UI.DefaultView {
	case ViewGraph, ViewList:
	default:
		errs = append(errs, fmt.Errorf("ui: unknown default_view %q", c.UI.DefaultView))
	}
	if err := c.Physics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the XDG config directory for glossgraph.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for glossgraph.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns the XDG state directory for glossgraph.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist. Keys absent from the file
// keep their defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Physics = cfg.Physics.Merge()
	cfg.Glossary.Dir = expandHome(cfg.Glossary.Dir)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
