package suspension

import "math"

// CentripetalAcceleration returns speed² / (radius·g), in units of g.
func CentripetalAcceleration(speed, radius, g float64) (float64, error) {
	if !finite(speed) {
		return 0, invalid("speed", speed, "must be finite")
	}
	if !finite(radius) || radius <= 0 {
		return 0, invalid("radius", radius, "must be > 0")
	}
	if !finite(g) || g <= 0 {
		return 0, invalid("gravity", g, "must be > 0")
	}
	a := speed * speed / (radius * g)
	if !finite(a) {
		return 0, invalid("centripetal_acceleration", a, "overflows for this speed and radius")
	}
	return a, nil
}

// WeightShift returns the front and rear roll load transfer while cornering
// at speed on a turn of the given radius.
func WeightShift(cfg VehicleConfiguration, speed, radius float64) (front, rear float64, err error) {
	if !finite(cfg.TrackWidth) || cfg.TrackWidth <= 0 {
		return 0, 0, invalid("track_width", cfg.TrackWidth, "must be > 0")
	}
	if !finite(cfg.Weight) || cfg.Weight <= 0 {
		return 0, 0, invalid("weight", cfg.Weight, "must be > 0")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"roll_distance", cfg.RollDistance},
		{"front_ratio", cfg.FrontRatio},
		{"rear_ratio", cfg.RearRatio},
		{"roll_stiffness", cfg.RollStiffness},
		{"cg_rear_factor", cfg.CGRearFactor},
		{"roll_center_height", cfg.RollCenterHeight},
	} {
		if !finite(f.v) {
			return 0, 0, invalid(f.name, f.v, "must be finite")
		}
	}
	denom := cfg.StiffnessDenominator()
	if denom == 0 {
		return 0, 0, invalid("roll_stiffness+cg_rear_factor*roll_center_height", denom, "must be non-zero")
	}

	a, err := CentripetalAcceleration(speed, radius, cfg.Gravity)
	if err != nil {
		return 0, 0, err
	}

	kf := cfg.FrontRatio * cfg.RollStiffness
	kr := cfg.RearRatio * cfg.RollStiffness
	perTrack := a * (cfg.Weight / cfg.TrackWidth)

	front = perTrack * (cfg.RollDistance * kf) / denom
	rear = perTrack * (cfg.RollDistance * kr) / denom
	if !finite(front) {
		return 0, 0, invalid("front_shift", front, "overflows")
	}
	if !finite(rear) {
		return 0, 0, invalid("rear_shift", rear, "overflows")
	}
	return front, rear, nil
}

// LateralForce returns weight · a.
func LateralForce(weight, a float64) float64 {
	return weight * a
}

// LongitudinalForce returns weight · a. It shares the lateral formula; the
// dashboard has no separate longitudinal acceleration input.
func LongitudinalForce(weight, a float64) float64 {
	return weight * a
}

// TireSlipAngleDegrees returns atan(wheelBase/radius) in degrees. Speed does
// not enter the kinematic approximation.
func TireSlipAngleDegrees(speed, radius, wheelBase float64) (float64, error) {
	if !finite(speed) {
		return 0, invalid("speed", speed, "must be finite")
	}
	if !finite(radius) || radius <= 0 {
		return 0, invalid("radius", radius, "must be > 0")
	}
	if !finite(wheelBase) {
		return 0, invalid("wheel_base", wheelBase, "must be finite")
	}
	return math.Atan(wheelBase/radius) * (180 / math.Pi), nil
}

// Evaluate validates cfg and st, then computes every derived metric once.
func Evaluate(cfg VehicleConfiguration, st DynamicState) (DerivedMetrics, error) {
	if err := cfg.Validate(); err != nil {
		return DerivedMetrics{}, err
	}
	if err := st.Validate(); err != nil {
		return DerivedMetrics{}, err
	}

	a, err := CentripetalAcceleration(st.Speed, st.Radius, cfg.Gravity)
	if err != nil {
		return DerivedMetrics{}, err
	}
	front, rear, err := WeightShift(cfg, st.Speed, st.Radius)
	if err != nil {
		return DerivedMetrics{}, err
	}
	slip, err := TireSlipAngleDegrees(st.Speed, st.Radius, cfg.WheelBase)
	if err != nil {
		return DerivedMetrics{}, err
	}

	lat := LateralForce(cfg.Weight, a)
	if !finite(lat) {
		return DerivedMetrics{}, invalid("lateral_force", lat, "overflows")
	}
	lon := LongitudinalForce(cfg.Weight, a)
	if !finite(lon) {
		return DerivedMetrics{}, invalid("longitudinal_force", lon, "overflows")
	}

	return DerivedMetrics{
		Vehicle:           cfg,
		State:             st,
		Acceleration:      a,
		FrontShift:        front,
		RearShift:         rear,
		LateralForce:      lat,
		LongitudinalForce: lon,
		SlipAngle:         slip,
	}, nil
}
