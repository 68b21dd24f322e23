package loop

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Plant is a single-input single-output process model. Derive returns
// dX/dt for the current state and actuator input; Output projects the
// state onto the measured process variable fed back to the controller.
type Plant interface {
	Derive(x State, u float64, t float64) State
	Output(x State) float64
	StateDim() int
}

// Stepper advances a plant ODE by one timestep.
type Stepper interface {
	Step(p Plant, x State, u float64, t, dt float64) State
}

// Metric observes every sample of a run and reduces it to one number.
type Metric interface {
	Name() string
	Observe(setpoint, measurement, output, t float64)
	Value() float64
	Reset()
}

// Config holds per-run settings. The sample period itself comes from the
// controller; Duration determines the number of samples.
type Config struct {
	Setpoint      float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Setpoint:      1.0,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Result collects the traces and metrics of a closed-loop run.
type Result struct {
	Times        []float64
	Setpoints    []float64
	Measurements []float64
	Outputs      []float64
	Metrics      map[string]float64
	StepsTaken   int
}
