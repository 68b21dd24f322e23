package plant

import (
	"fmt"

	"github.com/san-kum/pidloop/internal/loop"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
	DefaultDamping   = 0.5
)

// SpringMass is a forced mass-spring-damper: m*accel = u - c*vel - k*pos.
// State is [pos, vel]; the measured output is the position.
type SpringMass struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewSpringMass() *SpringMass {
	return &SpringMass{
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
	}
}

func (s *SpringMass) StateDim() int { return 2 }

func (s *SpringMass) Derive(x loop.State, u float64, t float64) loop.State {
	pos, vel := x[0], x[1]
	accel := (u - s.Damping*vel - s.Stiffness*pos) / s.Mass
	return loop.State{vel, accel}
}

func (s *SpringMass) Output(x loop.State) float64 { return x[0] }

func (s *SpringMass) Energy(x loop.State) float64 {
	ke := 0.5 * s.Mass * x[1] * x[1]
	pe := 0.5 * s.Stiffness * x[0] * x[0]
	return ke + pe
}

func (s *SpringMass) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      s.Mass,
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
	}
}

func (s *SpringMass) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		s.Mass = value
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
