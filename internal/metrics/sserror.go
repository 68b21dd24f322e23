package metrics

import "math"

// SteadyStateError reports the absolute tracking error of the final
// observed sample.
type SteadyStateError struct {
	name string
	last float64
}

func NewSteadyStateError() *SteadyStateError {
	return &SteadyStateError{
		name: "steady_state_error",
	}
}

func (s *SteadyStateError) Name() string {
	return s.name
}

func (s *SteadyStateError) Observe(setpoint, measurement, output, t float64) {
	s.last = math.Abs(setpoint - measurement)
}

func (s *SteadyStateError) Value() float64 {
	return s.last
}

func (s *SteadyStateError) Reset() {
	s.last = 0
}
