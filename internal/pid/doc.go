// Package pid implements a generic discrete-time PID feedback controller.
//
// The controller is assembled from three independent terms, each a small
// pure state machine driven once per sample period:
//
//   - [Proportional]: stateless scaling of the instantaneous error
//   - [Integrator]: trapezoidal error accumulation with anti-windup clamping
//   - [Differentiator]: low-pass-filtered derivative of the measurement
//
// All three terms and the [Controller] that composes them are generic over
// [Float], so a control loop can be instantiated at float32 or float64
// precision without mixing widths.
//
// # Usage
//
//	p := pid.NewProportional(2.0)
//	i := pid.NewIntegrator(0.5, pid.Range[float64]{Start: -10, End: 10})
//	d := pid.NewDifferentiator(0.1, 0.02)
//	c := pid.New(pid.Range[float64]{Start: -10, End: 10}, 10*time.Millisecond, p, i, d)
//
//	// once per sample period:
//	u := c.Update(setpoint, measurement)
//
// The caller owns timing: Update assumes the configured sample time has
// elapsed since the previous call. The controller never reads a clock.
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. Each instance mutates its
// internal state on Update without locking; distinct instances are
// independent and may be used from different goroutines.
package pid
