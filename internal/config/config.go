package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/san-kum/suspsim/internal/suspension"
)

// EnvPrefix marks environment overrides: SUSPSIM_VEHICLE__TRACK_WIDTH=1.3
// sets vehicle.track_width.
const EnvPrefix = "SUSPSIM_"

const (
	DefaultSpeedMin  = 10.0
	DefaultSpeedMax  = 20.0
	DefaultRadiusMin = 1.0
	DefaultRadiusMax = 10.0
	DefaultAddr      = ":8080"
	DefaultHistory   = 8
)

type Config struct {
	Preset    string                          `yaml:"preset"`
	Vehicle   suspension.VehicleConfiguration `yaml:"vehicle"`
	State     suspension.DynamicState         `yaml:"state"`
	Sweep     SweepConfig                     `yaml:"sweep"`
	Log       LogConfig                       `yaml:"log"`
	Server    ServerConfig                    `yaml:"server"`
	Dashboard DashboardConfig                 `yaml:"dashboard"`
}

type SweepConfig struct {
	Steps  int              `yaml:"steps"`
	Speeds suspension.Range `yaml:"speeds"`
	Radii  suspension.Range `yaml:"radii"`
}

type LogConfig struct {
	// Level is a zerolog level name.
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
	// File receives log output; empty means stderr.
	File string `yaml:"file"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DashboardConfig struct {
	Theme string `yaml:"theme"`
	// History is how many result rows the table shows.
	History int `yaml:"history"`
	// MaxRows bounds the session results log; 0 keeps everything.
	MaxRows int `yaml:"max_rows"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:  "fss",
		Vehicle: suspension.DefaultVehicle(),
		State:   suspension.DefaultState(),
		Sweep: SweepConfig{
			Steps:  suspension.DefaultSweepSteps,
			Speeds: suspension.Range{Min: DefaultSpeedMin, Max: DefaultSpeedMax},
			Radii:  suspension.Range{Min: DefaultRadiusMin, Max: DefaultRadiusMax},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Dashboard: DashboardConfig{
			Theme:   "cyberpunk",
			History: DefaultHistory,
		},
	}
}

// Load layers the YAML file at path and then SUSPSIM_ environment variables
// over DefaultConfig. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if p := k.String("preset"); p != "" && p != cfg.Preset {
		if err := cfg.ApplyPreset(p); err != nil {
			return nil, err
		}
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyPreset replaces the vehicle and state with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Preset = name
	c.Vehicle = p.Vehicle
	c.State = p.State
	return nil
}

// Validate checks the non-physics settings. Vehicle and state are checked by
// suspension.Evaluate so an out-of-range slider reaches the user as a readout
// error rather than a startup failure; only hard structural problems fail here.
func (c *Config) Validate() error {
	if c.Sweep.Steps < 1 {
		return fmt.Errorf("sweep.steps must be >= 1, got %d", c.Sweep.Steps)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %s", c.Log.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Dashboard.History < 0 {
		return fmt.Errorf("dashboard.history must be >= 0, got %d", c.Dashboard.History)
	}
	if c.Dashboard.MaxRows < 0 {
		return fmt.Errorf("dashboard.max_rows must be >= 0, got %d", c.Dashboard.MaxRows)
	}
	return nil
}
