package config

import (
	"math"

	"github.com/san-kum/suspsim/internal/suspension"
)

// Slider describes one adjustable dashboard parameter.
type Slider struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

const (
	SliderSpeed        = "speed"
	SliderRadius       = "radius"
	SliderTrackWidth   = "track_width"
	SliderRollDistance = "roll_distance"
	SliderWeight       = "weight"
	SliderFrontRatio   = "front_ratio"
	SliderRearRatio    = "rear_ratio"
	SliderWheelBase    = "wheel_base"
)

// Sliders returns the dashboard parameters in display order. Wheel base is
// fixed: Min == Max and Step is zero.
func Sliders() []Slider {
	return []Slider{
		{SliderSpeed, "Cornering Speed", "m/s", 10.0, 20.0, 0.1, suspension.DefaultSpeed},
		{SliderRadius, "Turn Radius", "m", 1.0, 10.0, 0.1, suspension.DefaultRadius},
		{SliderTrackWidth, "Track Width", "m", 0.5, 2.0, 0.1, suspension.DefaultTrackWidth},
		{SliderRollDistance, "Roll Distance", "m", 0.05, 0.5, 0.01, suspension.DefaultRollDistance},
		{SliderWeight, "Weight", "N", 100, 1000, 10, suspension.DefaultWeight},
		{SliderFrontRatio, "Front Weight Ratio", "", 0.1, 1.0, 0.1, suspension.DefaultFrontRatio},
		{SliderRearRatio, "Rear Weight Ratio", "", 0.1, 1.0, 0.1, suspension.DefaultRearRatio},
		{SliderWheelBase, "Wheel Base", "m", suspension.DefaultWheelBase, suspension.DefaultWheelBase, 0, suspension.DefaultWheelBase},
	}
}

func SliderByName(name string) (Slider, bool) {
	for _, s := range Sliders() {
		if s.Name == name {
			return s, true
		}
	}
	return Slider{}, false
}

func (s Slider) Fixed() bool { return s.Step == 0 }

func (s Slider) Clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Nudge moves v by n steps and clamps. The result is rounded to the step
// grid's precision so repeated nudges do not accumulate float noise.
func (s Slider) Nudge(v float64, n int) float64 {
	if s.Fixed() {
		return v
	}
	out := s.Clamp(v + float64(n)*s.Step)
	const scale = 1e6
	return math.Round(out*scale) / scale
}

// Value reads the slider's parameter from a vehicle and state.
func (s Slider) Value(v suspension.VehicleConfiguration, st suspension.DynamicState) float64 {
	switch s.Name {
	case SliderSpeed:
		return st.Speed
	case SliderRadius:
		return st.Radius
	case SliderTrackWidth:
		return v.TrackWidth
	case SliderRollDistance:
		return v.RollDistance
	case SliderWeight:
		return v.Weight
	case SliderFrontRatio:
		return v.FrontRatio
	case SliderRearRatio:
		return v.RearRatio
	case SliderWheelBase:
		return v.WheelBase
	}
	return 0
}

// Set returns copies of v and st with the slider's parameter replaced. The
// front and rear ratios are coupled so they keep summing to one.
func (s Slider) Set(v suspension.VehicleConfiguration, st suspension.DynamicState, val float64) (suspension.VehicleConfiguration, suspension.DynamicState) {
	switch s.Name {
	case SliderSpeed:
		st.Speed = val
	case SliderRadius:
		st.Radius = val
	case SliderTrackWidth:
		v.TrackWidth = val
	case SliderRollDistance:
		v.RollDistance = val
	case SliderWeight:
		v.Weight = val
	case SliderFrontRatio:
		v.FrontRatio = val
		v.RearRatio = roundRatio(1 - val)
	case SliderRearRatio:
		v.RearRatio = val
		v.FrontRatio = roundRatio(1 - val)
	case SliderWheelBase:
		v.WheelBase = val
	}
	return v, st
}

func roundRatio(r float64) float64 {
	return math.Round(r*1e6) / 1e6
}
