package plant

import (
	"fmt"

	"github.com/san-kum/pidloop/internal/loop"
)

// Motor is a DC motor velocity model: J*w' = Kt*u - b*w - Load. State is
// [omega]; the measured output is the angular velocity.
type Motor struct {
	Inertia  float64
	Torque   float64
	Friction float64
	Load     float64
}

func NewMotor() *Motor {
	return &Motor{
		Inertia:  0.01,
		Torque:   0.05,
		Friction: 0.001,
	}
}

func (m *Motor) StateDim() int { return 1 }

func (m *Motor) Derive(x loop.State, u float64, t float64) loop.State {
	omega := x[0]
	return loop.State{(m.Torque*u - m.Friction*omega - m.Load) / m.Inertia}
}

func (m *Motor) Output(x loop.State) float64 { return x[0] }

func (m *Motor) GetParams() map[string]float64 {
	return map[string]float64{
		"inertia":  m.Inertia,
		"torque":   m.Torque,
		"friction": m.Friction,
		"load":     m.Load,
	}
}

func (m *Motor) SetParam(name string, value float64) error {
	switch name {
	case "inertia":
		m.Inertia = value
	case "torque":
		m.Torque = value
	case "friction":
		m.Friction = value
	case "load":
		m.Load = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
