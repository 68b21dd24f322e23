package pid

import "time"

// Integrator accumulates scaled error over time using trapezoidal
// integration. The accumulator is clamped into Limit after every step
// (anti-windup), so the integral term can never grow unbounded while the
// actuator is saturated.
type Integrator[T Float] struct {
	Gain  T
	Limit Range[T]

	value   T
	prevErr T
}

func NewIntegrator[T Float](gain T, limit Range[T]) Integrator[T] {
	return Integrator[T]{Gain: gain, Limit: limit}
}

// Init zeroes the accumulator and the stored previous error. Gain and
// Limit are untouched.
func (i *Integrator[T]) Init() {
	i.value = 0
	i.prevErr = 0
}

func (i *Integrator[T]) Update(setpoint, measurement T, sampleTime time.Duration) T {
	err := setpoint - measurement
	i.value += 0.5 * i.Gain * seconds[T](sampleTime) * (err + i.prevErr)
	i.value = i.Limit.Clamp(i.value)
	i.prevErr = err
	return i.value
}
