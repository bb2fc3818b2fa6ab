package suspension

import "gonum.org/v1/gonum/floats"

// DefaultSweepSteps matches the sample count of the dashboard chart.
const DefaultSweepSteps = 100

// SweepSample is one row of a weight-shift sweep.
type SweepSample struct {
	Speed      float64 `json:"speed"`
	Radius     float64 `json:"radius"`
	FrontShift float64 `json:"front_shift"`
	RearShift  float64 `json:"rear_shift"`
}

// Linspace returns n evenly spaced values from r.Min to r.Max inclusive.
// A single sample is r.Min.
func Linspace(r Range, n int) ([]float64, error) {
	if n < 1 {
		return nil, invalid("steps", float64(n), "must be >= 1")
	}
	if err := r.validate("range"); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = r.Min
		return out, nil
	}
	return floats.Span(out, r.Min, r.Max), nil
}

// SweepWeightShift pairs the i-th speed of speeds with the i-th radius of
// radii. The shift of every row is taken at current, not at the swept pair,
// so all rows carry the same front and rear values; only the Speed and
// Radius columns vary.
func SweepWeightShift(cfg VehicleConfiguration, current DynamicState, speeds, radii Range, steps int) ([]SweepSample, error) {
	if err := speeds.validate("speeds"); err != nil {
		return nil, err
	}
	if err := radii.validate("radii"); err != nil {
		return nil, err
	}
	sp, err := Linspace(speeds, steps)
	if err != nil {
		return nil, err
	}
	rd, err := Linspace(radii, steps)
	if err != nil {
		return nil, err
	}

	front, rear, err := WeightShift(cfg, current.Speed, current.Radius)
	if err != nil {
		return nil, err
	}

	out := make([]SweepSample, steps)
	for i := range out {
		out[i] = SweepSample{
			Speed:      sp[i],
			Radius:     rd[i],
			FrontShift: front,
			RearShift:  rear,
		}
	}
	return out, nil
}

// AccelerationSeries samples CentripetalAcceleration across speeds at a
// fixed radius.
func AccelerationSeries(speeds Range, radius, g float64, steps int) ([]Point, error) {
	sp, err := Linspace(speeds, steps)
	if err != nil {
		return nil, err
	}
	out := make([]Point, len(sp))
	for i, v := range sp {
		a, err := CentripetalAcceleration(v, radius, g)
		if err != nil {
			return nil, err
		}
		out[i] = Point{X: v, Y: a}
	}
	return out, nil
}

// LateralForceSeries samples LateralForce across speeds at a fixed radius.
func LateralForceSeries(speeds Range, radius, g, weight float64, steps int) ([]Point, error) {
	acc, err := AccelerationSeries(speeds, radius, g, steps)
	if err != nil {
		return nil, err
	}
	if !finite(weight) || weight <= 0 {
		return nil, invalid("weight", weight, "must be > 0")
	}
	for i := range acc {
		acc[i].Y = LateralForce(weight, acc[i].Y)
		if !finite(acc[i].Y) {
			return nil, invalid("lateral_force", acc[i].Y, "overflows")
		}
	}
	return acc, nil
}
