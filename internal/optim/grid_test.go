package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/suspension"
)

func TestNewGridSearchErrors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"empty", nil},
		{"unknown", []string{"camber"}},
		{"fixed", []string{config.SliderWheelBase}},
		{"duplicate", []string{config.SliderWeight, config.SliderWeight}},
		{"coupled", []string{config.SliderFrontRatio, config.SliderRearRatio}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGridSearch(tt.names)
			assert.Error(t, err)
		})
	}
}

func TestGridSearchFindsWidestLightest(t *testing.T) {
	g, err := NewGridSearch([]string{config.SliderTrackWidth, config.SliderWeight})
	require.NoError(t, err)
	assert.Equal(t, 16*91, g.Size())

	obj, err := ObjectiveByName("total_shift")
	require.NoError(t, err)

	res, err := g.Search(context.Background(), suspension.DefaultVehicle(), suspension.DefaultState(), obj)
	require.NoError(t, err)
	assert.Equal(t, g.Size(), res.Evaluated)
	assert.Zero(t, res.Rejected)
	assert.InDelta(t, 2.0, res.Params[config.SliderTrackWidth], 1e-9)
	assert.InDelta(t, 100, res.Params[config.SliderWeight], 1e-9)
	assert.InDelta(t, res.Metrics.FrontShift+res.Metrics.RearShift, res.Score, 1e-9)
}

func TestGridSearchCouplesRatios(t *testing.T) {
	g, err := NewGridSearch([]string{config.SliderFrontRatio})
	require.NoError(t, err)

	obj, err := ObjectiveByName("front_shift")
	require.NoError(t, err)

	res, err := g.Search(context.Background(), suspension.DefaultVehicle(), suspension.DefaultState(), obj)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, res.Metrics.Vehicle.FrontRatio, 1e-9)
	assert.InDelta(t, 0.9, res.Metrics.Vehicle.RearRatio, 1e-9)
}

func TestGridSearchNoValidPoint(t *testing.T) {
	g, err := NewGridSearch([]string{config.SliderTrackWidth})
	require.NoError(t, err)

	st := suspension.DefaultState()
	st.Radius = 0
	obj, _ := ObjectiveByName("total_shift")
	res, err := g.Search(context.Background(), suspension.DefaultVehicle(), st, obj)
	assert.Error(t, err)
	assert.Equal(t, 16, res.Rejected)
}

func TestGridSearchCanceled(t *testing.T) {
	g, err := NewGridSearch([]string{config.SliderWeight})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	obj, _ := ObjectiveByName("slip_angle")
	_, err = g.Search(ctx, suspension.DefaultVehicle(), suspension.DefaultState(), obj)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectiveByNameUnknown(t *testing.T) {
	_, err := ObjectiveByName("downforce")
	assert.Error(t, err)
	for _, name := range ObjectiveNames() {
		_, err := ObjectiveByName(name)
		assert.NoError(t, err, name)
	}
}
