package pid

import "time"

// Proportional scales the instantaneous error by a fixed gain. It carries
// no dynamic state.
type Proportional[T Float] struct {
	Gain T
}

func NewProportional[T Float](gain T) Proportional[T] {
	return Proportional[T]{Gain: gain}
}

func (p *Proportional[T]) Init() {}

func (p *Proportional[T]) Update(setpoint, measurement T, _ time.Duration) T {
	return p.Gain * (setpoint - measurement)
}
