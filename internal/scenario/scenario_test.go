package scenario

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/suspsim/internal/suspension"
)

func TestLoadAndRun(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "skidpad.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "skidpad", sc.Name)
	require.Len(t, sc.Cases, 4)

	out, err := Run(context.Background(), sc, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, 1, Failed(out))

	ref, err := suspension.Evaluate(suspension.DefaultVehicle(), suspension.DefaultState())
	require.NoError(t, err)
	assert.Equal(t, ref, out[0].Metrics)

	assert.Equal(t, 4.5, out[1].Metrics.State.Radius)
	assert.Equal(t, suspension.DefaultSpeed, out[1].Metrics.State.Speed)

	assert.Equal(t, 1.4, out[2].Metrics.Vehicle.TrackWidth)
	assert.Equal(t, 650.0, out[2].Metrics.Vehicle.Weight)

	assert.Equal(t, "broken", out[3].Case)
	assert.True(t, errors.Is(out[3].Err, suspension.ErrInvalidInput))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("name: empty\ncases: []\n"))
	assert.ErrorContains(t, err, "no cases")

	_, err = Parse([]byte("cases: [\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestUnknownPreset(t *testing.T) {
	sc, err := Parse([]byte("cases:\n  - preset: rally\n"))
	require.NoError(t, err)
	assert.Equal(t, "case-1", sc.Cases[0].Name)

	out, err := Run(context.Background(), sc, zerolog.Nop())
	require.NoError(t, err)
	assert.ErrorContains(t, out[0].Err, "unknown preset")
}

func TestRunCanceled(t *testing.T) {
	sc, err := Parse([]byte("cases:\n  - name: a\n  - name: b\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Run(ctx, sc, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out)
}
