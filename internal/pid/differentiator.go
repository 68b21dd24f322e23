package pid

import "time"

// Differentiator computes a low-pass-filtered rate of change of the
// measurement. Differentiating the measurement instead of the error keeps
// a setpoint step from producing an output spike (derivative kick); the
// filter is the bilinear-transform discretization of a first-order
// low-pass applied to the raw derivative, with cutoff set by TimeConstant.
//
// Precondition: TimeConstant >= 0 and sampleTime > 0. If
// 2*TimeConstant + sampleTime is zero the update divides by zero and the
// result follows IEEE-754 semantics (Inf or NaN); this is not guarded.
type Differentiator[T Float] struct {
	Gain         T
	TimeConstant T

	value    T
	prevMeas T
}

func NewDifferentiator[T Float](gain, timeConstant T) Differentiator[T] {
	return Differentiator[T]{Gain: gain, TimeConstant: timeConstant}
}

// Init zeroes the filter state and the stored previous measurement.
func (d *Differentiator[T]) Init() {
	d.value = 0
	d.prevMeas = 0
}

func (d *Differentiator[T]) Update(_, measurement T, sampleTime time.Duration) T {
	dt := seconds[T](sampleTime)
	delta := measurement - d.prevMeas

	numerator := -(2*d.Gain*delta + (2*d.TimeConstant-dt)*d.value)
	denominator := 2*d.TimeConstant + dt

	d.prevMeas = measurement
	d.value = numerator / denominator

	return d.value
}
