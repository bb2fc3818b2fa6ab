// Package suspension computes cornering load-transfer quantities for a
// formula-student style vehicle.
//
// Everything in the package is a pure function of its arguments:
//
//   - [CentripetalAcceleration]: A = v² / (r·g)
//   - [WeightShift]: front/rear roll load transfer
//   - [LateralForce], [LongitudinalForce]: weight · A
//   - [TireSlipAngleDegrees]: atan(wheelBase / r) in degrees
//   - [SweepWeightShift]: evenly spaced weight-shift samples
//   - [Evaluate]: validates a [VehicleConfiguration] and [DynamicState] and
//     returns every [DerivedMetrics] value in one call
//
// # Example
//
//	cfg := suspension.DefaultVehicle()
//	st := suspension.DynamicState{Speed: 13.88, Radius: 6.0}
//	m, err := suspension.Evaluate(cfg, st)
//
// # Errors
//
// Every precondition failure wraps [ErrInvalidInput]. Inputs are checked
// before any arithmetic and results are checked for overflow, so NaN and Inf
// never leave the package.
//
// # Thread Safety
//
// The package holds no state and all functions are safe for concurrent use.
package suspension
