package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/suspsim/internal/suspension"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, suspension.DefaultVehicle(), cfg.Vehicle)
	assert.Equal(t, suspension.DefaultState(), cfg.State)
	assert.Equal(t, 100, cfg.Sweep.Steps)
	assert.Equal(t, suspension.Range{Min: 10, Max: 20}, cfg.Sweep.Speeds)
	assert.Equal(t, suspension.Range{Min: 1, Max: 10}, cfg.Sweep.Radii)
	require.NoError(t, cfg.Vehicle.Validate())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suspsim.yaml")
	data := `vehicle:
  track_width: 1.3
  weight: 420
state:
  speed: 15.5
sweep:
  steps: 25
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"track_width", cfg.Vehicle.TrackWidth, 1.3},
		{"weight", cfg.Vehicle.Weight, 420.0},
		{"wheel_base default kept", cfg.Vehicle.WheelBase, suspension.DefaultWheelBase},
		{"speed", cfg.State.Speed, 15.5},
		{"radius default kept", cfg.State.Radius, suspension.DefaultRadius},
		{"steps", cfg.Sweep.Steps, 25},
		{"speeds default kept", cfg.Sweep.Speeds.Max, DefaultSpeedMax},
		{"log.level", cfg.Log.Level, "debug"},
		{"log.format", cfg.Log.Format, "console"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadPresetThenOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suspsim.yml")
	data := `preset: heavy
vehicle:
  track_width: 1.25
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "heavy", cfg.Preset)
	assert.Equal(t, 650.0, cfg.Vehicle.Weight)
	assert.Equal(t, 1.25, cfg.Vehicle.TrackWidth)
	assert.Equal(t, 8.0, cfg.State.Radius)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SUSPSIM_VEHICLE__TRACK_WIDTH", "1.5")
	t.Setenv("SUSPSIM_STATE__RADIUS", "4.2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, cfg.Vehicle.TrackWidth, 1e-12)
	assert.InDelta(t, 4.2, cfg.State.Radius, 1e-12)
}

func TestLoadEnvOverridesFileAndPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suspsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vehicle:\n  weight: 420\n"), 0o644))
	t.Setenv("SUSPSIM_VEHICLE__WEIGHT", "500")
	t.Setenv("SUSPSIM_PRESET", "hairpin")
	t.Setenv("SUSPSIM_LOG__LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Vehicle.Weight)
	assert.Equal(t, "hairpin", cfg.Preset)
	assert.Equal(t, 2.5, cfg.State.Radius)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "config.toml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sweep:\n  steps: 0\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "sweep.steps")

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("preset: rally\n"), 0o644))
	_, err = Load(unknown)
	assert.ErrorContains(t, err, "unknown preset")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Vehicle.Weight = 510
	cfg.Server.Addr = ":9191"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"history", func(c *Config) { c.Dashboard.History = -1 }},
		{"max rows", func(c *Config) { c.Dashboard.MaxRows = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"fss", "hairpin", "heavy", "wide_track"}, ListPresets())
	assert.Nil(t, GetPreset("nonexistent"))

	for _, name := range ListPresets() {
		p := GetPreset(name)
		require.NotNil(t, p, name)
		_, err := suspension.Evaluate(p.Vehicle, p.State)
		assert.NoError(t, err, name)
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyPreset("hairpin"))
	assert.Equal(t, 2.5, cfg.State.Radius)
	assert.Error(t, cfg.ApplyPreset("rally"))
}
