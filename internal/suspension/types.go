package suspension

import "math"

const (
	DefaultTrackWidth       = 1.168
	DefaultWheelBase        = 1.72
	DefaultJounce           = 0.05
	DefaultRollCenterHeight = 0.127
	DefaultCGHeight         = 0.325
	DefaultRollDistance     = 0.198
	DefaultFrontRatio       = 0.45
	DefaultRearRatio        = 0.55
	DefaultWeight           = 380.0
	DefaultRollStiffness    = 38.608
	DefaultCGRearFactor     = 0.72
	DefaultGravity          = 9.8

	DefaultSpeed  = 13.88
	DefaultRadius = 6.0

	// ratioTolerance bounds |front+rear-1|.
	ratioTolerance = 1e-6
)

// VehicleConfiguration is a snapshot of the static vehicle parameters.
// It is passed by value and never mutated by this package.
type VehicleConfiguration struct {
	TrackWidth       float64 `json:"track_width" yaml:"track_width"`
	WheelBase        float64 `json:"wheel_base" yaml:"wheel_base"`
	RollDistance     float64 `json:"roll_distance" yaml:"roll_distance"`
	Weight           float64 `json:"weight" yaml:"weight"`
	FrontRatio       float64 `json:"front_ratio" yaml:"front_ratio"`
	RearRatio        float64 `json:"rear_ratio" yaml:"rear_ratio"`
	RollStiffness    float64 `json:"roll_stiffness" yaml:"roll_stiffness"`
	CGRearFactor     float64 `json:"cg_rear_factor" yaml:"cg_rear_factor"`
	RollCenterHeight float64 `json:"roll_center_height" yaml:"roll_center_height"`
	CGHeight         float64 `json:"cg_height" yaml:"cg_height"`
	Jounce           float64 `json:"jounce" yaml:"jounce"`
	Gravity          float64 `json:"gravity" yaml:"gravity"`
}

// DynamicState holds the two interaction-driven inputs.
type DynamicState struct {
	Speed  float64 `json:"speed" yaml:"speed"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// DerivedMetrics is the full result of one evaluation.
type DerivedMetrics struct {
	Vehicle           VehicleConfiguration `json:"vehicle"`
	State             DynamicState         `json:"state"`
	Acceleration      float64              `json:"acceleration"`
	FrontShift        float64              `json:"front_shift"`
	RearShift         float64              `json:"rear_shift"`
	LateralForce      float64              `json:"lateral_force"`
	LongitudinalForce float64              `json:"longitudinal_force"`
	SlipAngle         float64              `json:"slip_angle"`
}

// Range is an inclusive sampling interval. Min may exceed Max.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Point is one chart sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func DefaultVehicle() VehicleConfiguration {
	return VehicleConfiguration{
		TrackWidth:       DefaultTrackWidth,
		WheelBase:        DefaultWheelBase,
		RollDistance:     DefaultRollDistance,
		Weight:           DefaultWeight,
		FrontRatio:       DefaultFrontRatio,
		RearRatio:        DefaultRearRatio,
		RollStiffness:    DefaultRollStiffness,
		CGRearFactor:     DefaultCGRearFactor,
		RollCenterHeight: DefaultRollCenterHeight,
		CGHeight:         DefaultCGHeight,
		Jounce:           DefaultJounce,
		Gravity:          DefaultGravity,
	}
}

func DefaultState() DynamicState {
	return DynamicState{Speed: DefaultSpeed, Radius: DefaultRadius}
}

// StiffnessDenominator returns Kt + cgRear·rollHeight.
func (c VehicleConfiguration) StiffnessDenominator() float64 {
	return c.RollStiffness + c.CGRearFactor*c.RollCenterHeight
}

// Validate checks every precondition of Evaluate.
func (c VehicleConfiguration) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"track_width", c.TrackWidth},
		{"wheel_base", c.WheelBase},
		{"roll_distance", c.RollDistance},
		{"weight", c.Weight},
		{"front_ratio", c.FrontRatio},
		{"rear_ratio", c.RearRatio},
		{"roll_stiffness", c.RollStiffness},
		{"cg_rear_factor", c.CGRearFactor},
		{"roll_center_height", c.RollCenterHeight},
		{"cg_height", c.CGHeight},
		{"jounce", c.Jounce},
		{"gravity", c.Gravity},
	}
	for _, f := range fields {
		if !finite(f.v) {
			return invalid(f.name, f.v, "must be finite")
		}
	}

	switch {
	case c.TrackWidth <= 0:
		return invalid("track_width", c.TrackWidth, "must be > 0")
	case c.Weight <= 0:
		return invalid("weight", c.Weight, "must be > 0")
	case c.Gravity <= 0:
		return invalid("gravity", c.Gravity, "must be > 0")
	case c.WheelBase < 0:
		return invalid("wheel_base", c.WheelBase, "must be >= 0")
	case c.FrontRatio < 0 || c.FrontRatio > 1:
		return invalid("front_ratio", c.FrontRatio, "must be within [0, 1]")
	case c.RearRatio < 0 || c.RearRatio > 1:
		return invalid("rear_ratio", c.RearRatio, "must be within [0, 1]")
	case math.Abs(c.FrontRatio+c.RearRatio-1) > ratioTolerance:
		return invalid("front_ratio+rear_ratio", c.FrontRatio+c.RearRatio, "must sum to 1")
	case c.StiffnessDenominator() == 0:
		return invalid("roll_stiffness+cg_rear_factor*roll_center_height", 0, "must be non-zero")
	}
	return nil
}

// Validate rejects a non-positive radius and non-finite values.
func (s DynamicState) Validate() error {
	if !finite(s.Speed) {
		return invalid("speed", s.Speed, "must be finite")
	}
	if !finite(s.Radius) {
		return invalid("radius", s.Radius, "must be finite")
	}
	if s.Radius <= 0 {
		return invalid("radius", s.Radius, "must be > 0")
	}
	return nil
}

func (r Range) validate(name string) error {
	if !finite(r.Min) {
		return invalid(name+".min", r.Min, "must be finite")
	}
	if !finite(r.Max) {
		return invalid(name+".max", r.Max, "must be finite")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
