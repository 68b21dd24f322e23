package plant

import (
	"fmt"

	"github.com/san-kum/pidloop/internal/loop"
)

// FirstOrder is a first-order lag: tau * dy/dt = K*u - y + Bias. It models
// a heater, a thermal mass or any process that approaches K*u
// exponentially. State is [y].
type FirstOrder struct {
	Gain         float64
	TimeConstant float64
	Bias         float64
}

func NewFirstOrder() *FirstOrder {
	return &FirstOrder{
		Gain:         1.0,
		TimeConstant: 2.0,
	}
}

func (f *FirstOrder) StateDim() int { return 1 }

func (f *FirstOrder) Derive(x loop.State, u float64, t float64) loop.State {
	return loop.State{(f.Gain*u - x[0] + f.Bias) / f.TimeConstant}
}

func (f *FirstOrder) Output(x loop.State) float64 { return x[0] }

func (f *FirstOrder) GetParams() map[string]float64 {
	return map[string]float64{
		"gain": f.Gain,
		"tau":  f.TimeConstant,
		"bias": f.Bias,
	}
}

func (f *FirstOrder) SetParam(name string, value float64) error {
	switch name {
	case "gain":
		f.Gain = value
	case "tau":
		f.TimeConstant = value
	case "bias":
		f.Bias = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
