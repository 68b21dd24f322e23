package loop

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pidloop/internal/pid"
)

// Runner steps a plant and a controller in lockstep at the controller's
// fixed sample period.
type Runner struct {
	plant   Plant
	stepper Stepper
	ctrl    *pid.Controller[float64]
	metrics []Metric
}

func New(plant Plant, stepper Stepper, ctrl *pid.Controller[float64]) *Runner {
	return &Runner{
		plant:   plant,
		stepper: stepper,
		ctrl:    ctrl,
		metrics: make([]Metric, 0),
	}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

// Run executes a closed-loop simulation from x0. The controller's history
// is cleared first, so every run starts from reset state.
func (r *Runner) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	h := r.ctrl.SampleTime().Seconds()
	steps := int(math.Round(cfg.Duration / h))

	result := &Result{
		Times:        make([]float64, 0, steps),
		Setpoints:    make([]float64, 0, steps),
		Measurements: make([]float64, 0, steps),
		Outputs:      make([]float64, 0, steps),
		Metrics:      make(map[string]float64),
	}

	r.ctrl.Init()
	for _, m := range r.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		y := r.plant.Output(x)
		u := r.ctrl.Update(cfg.Setpoint, y)

		for _, m := range r.metrics {
			m.Observe(cfg.Setpoint, y, u, t)
		}

		result.Times = append(result.Times, t)
		result.Setpoints = append(result.Setpoints, cfg.Setpoint)
		result.Measurements = append(result.Measurements, y)
		result.Outputs = append(result.Outputs, u)

		x = r.stepper.Step(r.plant, x, u, t, h)
		t += h
		result.StepsTaken++

		if cfg.ValidateState && !x.IsValid() {
			return result, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback executes a closed-loop simulation, handing every sample
// to callback instead of recording traces. Returning false stops the run.
func (r *Runner) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(y, u, t float64) bool) error {
	if err := r.validateConfig(cfg); err != nil {
		return err
	}

	h := r.ctrl.SampleTime().Seconds()

	r.ctrl.Init()

	x := x0.Clone()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		y := r.plant.Output(x)
		u := r.ctrl.Update(cfg.Setpoint, y)

		if !callback(y, u, t) {
			return nil
		}

		x = r.stepper.Step(r.plant, x, u, t, h)
		t += h

		if cfg.ValidateState && !x.IsValid() {
			return &StepError{Time: t, Wrapped: ErrInvalidState}
		}
	}

	return nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if r.ctrl.SampleTime() <= 0 {
		return fmt.Errorf("%w: sample time must be positive, got %v", ErrConfig, r.ctrl.SampleTime())
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrConfig, cfg.Duration)
	}
	return nil
}
