package config

import (
	"sort"

	"github.com/san-kum/suspsim/internal/suspension"
)

type Preset struct {
	Description string                          `json:"description"`
	Vehicle     suspension.VehicleConfiguration `json:"vehicle"`
	State       suspension.DynamicState         `json:"state"`
}

func vehicle(mut func(*suspension.VehicleConfiguration)) suspension.VehicleConfiguration {
	v := suspension.DefaultVehicle()
	mut(&v)
	return v
}

var Presets = map[string]*Preset{
	"fss": {
		Description: "reference car",
		Vehicle:     suspension.DefaultVehicle(),
		State:       suspension.DefaultState(),
	},
	"wide_track": {
		Description: "1.4 m track, same mass",
		Vehicle: vehicle(func(v *suspension.VehicleConfiguration) {
			v.TrackWidth = 1.4
		}),
		State: suspension.DefaultState(),
	},
	"heavy": {
		Description: "ballasted, rear biased",
		Vehicle: vehicle(func(v *suspension.VehicleConfiguration) {
			v.Weight = 650
			v.FrontRatio = 0.4
			v.RearRatio = 0.6
		}),
		State: suspension.DynamicState{Speed: 12.0, Radius: 8.0},
	},
	"hairpin": {
		Description: "tight hairpin at speed",
		Vehicle:     suspension.DefaultVehicle(),
		State:       suspension.DynamicState{Speed: 15.0, Radius: 2.5},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
