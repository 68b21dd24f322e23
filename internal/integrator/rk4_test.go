package integrator

import (
	"math"
	"testing"

	"github.com/san-kum/pidloop/internal/loop"
)

// harmonic is an undamped unit oscillator (acceleration -x). Its exact
// solution from (1, 0) is (cos t, -sin t).
type harmonic struct{}

func (h *harmonic) Derive(x loop.State, u float64, t float64) loop.State {
	return loop.State{x[1], -x[0]}
}

func (h *harmonic) Output(x loop.State) float64 { return x[0] }
func (h *harmonic) StateDim() int               { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonic{}
	integ := NewRK4()

	x := loop.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, 0, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerConverges(t *testing.T) {
	dyn := &harmonic{}
	integ := NewEuler()

	x := loop.State{1.0, 0.0}
	dt := 0.0001
	steps := 10000

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, 0, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	if math.Abs(x[0]-expectedX) > 1e-2 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
}

func BenchmarkRK4Step(b *testing.B) {
	dyn := &harmonic{}
	integ := NewRK4()
	x := loop.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, 0, 0, 0.01)
	}
	_ = x
}
