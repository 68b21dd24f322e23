package metrics

import "math"

// SettlingTime reports the last time the measurement sat outside a band
// around the setpoint, the band being a fraction of the initial step size.
type SettlingTime struct {
	name    string
	band    float64
	first   bool
	start   float64
	lastOut float64
}

// NewSettlingTime builds the metric with the given band fraction
// (0.02 for the usual 2% criterion).
func NewSettlingTime(band float64) *SettlingTime {
	return &SettlingTime{
		name:  "settling_time",
		band:  band,
		first: true,
	}
}

func (s *SettlingTime) Name() string {
	return s.name
}

func (s *SettlingTime) Observe(setpoint, measurement, output, t float64) {
	if s.first {
		s.start = measurement
		s.first = false
	}

	tolerance := s.band * math.Abs(setpoint-s.start)
	if math.Abs(measurement-setpoint) > tolerance {
		s.lastOut = t
	}
}

// Value returns the settling time; for a response that never settled this
// is simply the time of the last out-of-band sample.
func (s *SettlingTime) Value() float64 {
	return s.lastOut
}

func (s *SettlingTime) Reset() {
	s.first = true
	s.start = 0
	s.lastOut = 0
}
