// Package config provides configuration loading and access for the explorer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/voronoi/field"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Points    PointsConfig    `yaml:"points"`
	UI        UIConfig        `yaml:"ui"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// Backend names for FieldConfig.Backend.
const (
	BackendGPU = "gpu"
	BackendCPU = "cpu"
)

// FieldConfig holds the metric and evaluator settings.
type FieldConfig struct {
	P           float64    `yaml:"p"`             // Lp exponent, clamped to [0.5, 10]
	Mode        field.Mode `yaml:"mode"`          // nearest | farthest
	Backend     string     `yaml:"backend"`       // gpu | cpu
	Workers     int        `yaml:"workers"`       // CPU evaluator workers, 0 = GOMAXPROCS
	MaxGPUSeeds int        `yaml:"max_gpu_seeds"` // above this the CPU evaluator takes over
}

// PointsConfig holds startup point set settings.
type PointsConfig struct {
	DefaultFile  string  `yaml:"default_file"`  // optional override for the bundled set
	RandomCount  int     `yaml:"random_count"`  // fallback seed count
	MarkerRadius float32 `yaml:"marker_radius"` // seed marker radius in pixels, 0 hides markers
}

// UIConfig holds control panel layout.
type UIConfig struct {
	PanelWidth  int `yaml:"panel_width"`
	VisibleRows int `yaml:"visible_rows"` // point rows shown before scrolling
}

// TelemetryConfig holds perf collection parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // frames in the rolling window
	LogInterval float64 `yaml:"log_interval"` // seconds between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Settings field.Settings // Field.P and Field.Mode with p clamped
	PClamped bool           // Field.P was outside [0.5, 10]
	UseGPU   bool           // Backend == gpu
	GPUError string         // why the shader backend was abandoned, if it was
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded defaults.
func Defaults() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse merges user YAML over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Field.Backend = strings.ToLower(strings.TrimSpace(c.Field.Backend))
	switch c.Field.Backend {
	case "":
		c.Field.Backend = BackendGPU
	case BackendGPU, BackendCPU:
	default:
		return fmt.Errorf("unknown field backend %q", c.Field.Backend)
	}

	c.Derived.PClamped = c.Derived.Settings.SetP(c.Field.P)
	c.Field.P = c.Derived.Settings.P()
	c.Derived.Settings.Mode = c.Field.Mode
	c.Derived.UseGPU = c.Field.Backend == BackendGPU

	if c.Field.Workers < 0 {
		c.Field.Workers = 0
	}
	if c.Points.RandomCount <= 0 {
		c.Points.RandomCount = 5
	}
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 120
	}
	return nil
}

// FallbackToCPU switches the field backend to the CPU evaluator after the
// shader backend failed to load. The reason is kept for logging.
func (c *Config) FallbackToCPU(reason error) {
	c.Field.Backend = BackendCPU
	c.Derived.UseGPU = false
	if reason != nil {
		c.Derived.GPUError = reason.Error()
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
