package loop_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/pidloop/internal/integrator"
	"github.com/san-kum/pidloop/internal/loop"
	"github.com/san-kum/pidloop/internal/metrics"
	"github.com/san-kum/pidloop/internal/pid"
	"github.com/san-kum/pidloop/internal/plant"
)

func newTestController() *pid.Controller[float64] {
	return pid.New(
		pid.Range[float64]{Start: -20, End: 20},
		10*time.Millisecond,
		pid.NewProportional(2.0),
		pid.NewIntegrator(1.0, pid.Range[float64]{Start: -10, End: 10}),
		pid.NewDifferentiator(0.1, 0.05),
	)
}

func TestClosedLoopConvergence(t *testing.T) {
	r := loop.New(plant.NewFirstOrder(), integrator.NewRK4(), newTestController())
	r.AddMetric(metrics.NewSteadyStateError())

	cfg := loop.DefaultConfig()
	cfg.Setpoint = 1.0
	cfg.Duration = 10.0

	result, err := r.Run(context.Background(), loop.State{0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := result.Measurements[len(result.Measurements)-1]
	if math.Abs(final-cfg.Setpoint) > 0.05 {
		t.Errorf("loop did not converge: final measurement %f, setpoint %f", final, cfg.Setpoint)
	}

	if result.Metrics["steady_state_error"] > 0.05 {
		t.Errorf("steady-state error too large: %f", result.Metrics["steady_state_error"])
	}

	if result.StepsTaken != 1000 {
		t.Errorf("expected 1000 steps, got %d", result.StepsTaken)
	}
}

func TestOutputsStayWithinControllerLimit(t *testing.T) {
	r := loop.New(plant.NewSpringMass(), integrator.NewRK4(), newTestController())

	cfg := loop.DefaultConfig()
	cfg.Setpoint = 100.0
	cfg.Duration = 5.0

	result, err := r.Run(context.Background(), loop.State{0, 0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, u := range result.Outputs {
		if u > 20 || u < -20 {
			t.Fatalf("output %d outside limit: %f", i, u)
		}
	}
}

func TestRunDetectsDivergence(t *testing.T) {
	p := plant.NewFirstOrder()
	p.TimeConstant = -0.001 // unstable on purpose

	r := loop.New(p, integrator.NewRK4(), newTestController())

	cfg := loop.DefaultConfig()
	cfg.Duration = 10.0

	_, err := r.Run(context.Background(), loop.State{0.1}, cfg)
	if !errors.Is(err, loop.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	var stepErr *loop.StepError
	if !errors.As(err, &stepErr) {
		t.Error("expected a StepError wrapper")
	}
}

func TestRunHonorsContext(t *testing.T) {
	r := loop.New(plant.NewFirstOrder(), integrator.NewRK4(), newTestController())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, loop.State{0}, loop.DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	r := loop.New(plant.NewFirstOrder(), integrator.NewRK4(), newTestController())

	cfg := loop.DefaultConfig()
	cfg.Duration = -1

	if _, err := r.Run(context.Background(), loop.State{0}, cfg); !errors.Is(err, loop.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	r := loop.New(plant.NewFirstOrder(), integrator.NewRK4(), newTestController())

	samples := 0
	err := r.RunWithCallback(context.Background(), loop.State{0}, loop.DefaultConfig(), func(y, u, t float64) bool {
		samples++
		return samples < 10
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if samples != 10 {
		t.Errorf("expected 10 samples, got %d", samples)
	}
}
