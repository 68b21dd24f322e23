package pid

import (
	"fmt"
	"time"
)

// Controller composes a proportional, an integral and a derivative term
// into a single bounded control loop. It owns its three terms by value;
// terms are never shared between controllers.
//
// The integrator clamps to its own Limit, which may differ from the
// controller's Limit. That allows a tighter windup bound on the integral
// term than on the combined output; the controller applies its own clamp
// to the P+I+D sum regardless.
type Controller[T Float] struct {
	Limit Range[T]

	sampleTime time.Duration
	p          Proportional[T]
	i          Integrator[T]
	d          Differentiator[T]
	out        T
}

// New assembles a controller from pre-built terms. No validation is
// performed: an inverted Limit or non-positive sampleTime is accepted and
// produces the degenerate numeric behavior documented on each term.
func New[T Float](limit Range[T], sampleTime time.Duration, p Proportional[T], i Integrator[T], d Differentiator[T]) *Controller[T] {
	return &Controller[T]{
		Limit:      limit,
		sampleTime: sampleTime,
		p:          p,
		i:          i,
		d:          d,
	}
}

// Init clears all dynamic state (integrator accumulator, derivative filter
// history, last output) while keeping gains, limits and the sample time.
// Call it before re-enabling a loop that has been disabled for a while, so
// stale history cannot cause windup or derivative kick.
func (c *Controller[T]) Init() {
	c.p.Init()
	c.i.Init()
	c.d.Init()
	c.out = 0
}

// Update advances the loop by one fixed sample period and returns the new
// control output. All three terms see the same setpoint/measurement pair;
// their sum is clamped into Limit before it is stored and returned.
func (c *Controller[T]) Update(setpoint, measurement T) T {
	p := c.p.Update(setpoint, measurement, c.sampleTime)
	i := c.i.Update(setpoint, measurement, c.sampleTime)
	d := c.d.Update(setpoint, measurement, c.sampleTime)

	c.out = c.Limit.Clamp(p + i + d)
	return c.out
}

// Output returns the most recently computed control output.
func (c *Controller[T]) Output() T {
	return c.out
}

// SampleTime returns the fixed sample period the controller was built with.
func (c *Controller[T]) SampleTime() time.Duration {
	return c.sampleTime
}

// GetParams returns tunable parameters for live adjustment.
func (c *Controller[T]) GetParams() map[string]float64 {
	return map[string]float64{
		"kp": float64(c.p.Gain),
		"ki": float64(c.i.Gain),
		"kd": float64(c.d.Gain),
		"tf": float64(c.d.TimeConstant),
	}
}

// SetParam adjusts a controller gain or the derivative filter constant.
func (c *Controller[T]) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		c.p.Gain = T(value)
	case "ki":
		c.i.Gain = T(value)
	case "kd":
		c.d.Gain = T(value)
	case "tf":
		c.d.TimeConstant = T(value)
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
