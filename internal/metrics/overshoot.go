package metrics

import "math"

// Overshoot reports how far the measurement travels past the setpoint,
// as a fraction of the initial step size. 0 means the response never
// crossed the setpoint.
type Overshoot struct {
	name  string
	first bool
	start float64
	peak  float64
}

func NewOvershoot() *Overshoot {
	return &Overshoot{
		name:  "overshoot",
		first: true,
	}
}

func (o *Overshoot) Name() string {
	return o.name
}

func (o *Overshoot) Observe(setpoint, measurement, output, t float64) {
	if o.first {
		o.start = measurement
		o.first = false
	}

	step := setpoint - o.start
	if step == 0 {
		return
	}

	dir := 1.0
	if step < 0 {
		dir = -1.0
	}

	// Distance past the setpoint in the step direction, as a fraction
	// of the step size.
	past := (measurement - setpoint) * dir / math.Abs(step)
	if past > o.peak {
		o.peak = past
	}
}

func (o *Overshoot) Value() float64 {
	return o.peak
}

func (o *Overshoot) Reset() {
	o.first = true
	o.start = 0
	o.peak = 0
}
